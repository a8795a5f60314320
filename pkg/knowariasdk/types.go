package knowariasdk

import "time"

// User is the account shape returned by signup, login, /v1/me, and the
// profile endpoints. Password material never leaves the server.
type User struct {
	ID                 string    `json:"id"`
	FirstName          string    `json:"firstName"`
	LastName           string    `json:"lastName"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email"`
	DOB                string    `json:"dob"`
	ArticlePreferences []string  `json:"articlePreferences"`
	IsEmailVerified    bool      `json:"isEmailVerified"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Article carries reactions as arrays of user ids so clients can derive both
// counts and the viewer's own state from one payload.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
	Tags        []string  `json:"tags"`
	ReadTime    float64   `json:"readTime"`
	AuthorID    string    `json:"authorId"`
	Likes       []string  `json:"likes"`
	Dislikes    []string  `json:"dislikes"`
	BlockedBy   []string  `json:"blockedBy"`
	Views       []string  `json:"views"`
	PublishedAt time.Time `json:"publishedAt,omitzero"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ArticlePage is one page of a feed listing.
type ArticlePage struct {
	Articles   []Article `json:"articles"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalCount int       `json:"totalCount"`
	TotalPages int       `json:"totalPages"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

// SignupRequest completes registration. The email must already have passed
// verification via the /v1/verify endpoints.
type SignupRequest struct {
	FirstName          string   `json:"firstName" validate:"required"`
	LastName           string   `json:"lastName" validate:"required"`
	Phone              string   `json:"phone" validate:"required"`
	Email              string   `json:"email" validate:"required,email"`
	DOB                string   `json:"dob" validate:"required"`
	Password           string   `json:"password" validate:"required"`
	ArticlePreferences []string `json:"articlePreferences" validate:"required,min=1,max=3"`
}

// LoginRequest authenticates by email address or phone number.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type VerifyStartRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyConfirmRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=4,numeric"`
}

type VerifyResendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ArticleRequest struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Image    string   `json:"image,omitempty" validate:"omitempty,url"`
	Tags     []string `json:"tags" validate:"max=10"`
	Publish  bool     `json:"publish"`
}

type ProfileUpdateRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	DOB       string `json:"dob" validate:"required"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

type PreferencesRequest struct {
	ArticlePreferences []string `json:"articlePreferences" validate:"required,min=1,max=3"`
}
