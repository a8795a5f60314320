package knowariasdk

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to the Knowaria platform API. Authentication is cookie based:
// the server sets an HttpOnly session cookie on signup/login, and the
// client's cookie jar replays it on every later call, matching how browsers
// use the API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a platform client with a cookie jar and sane timeouts.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}
}
