package domain

import "time"

type User struct {
	ID                 string
	FirstName          string
	LastName           string
	Phone              string
	Email              string
	DOB                string // ISO date string "2006-01-02"
	PasswordHash       string // argon2 encoded
	ArticlePreferences []string
	IsEmailVerified    bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Name returns the display name used in session claims.
func (u User) Name() string {
	return u.FirstName + " " + u.LastName
}
