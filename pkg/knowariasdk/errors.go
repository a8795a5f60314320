package knowariasdk

import (
	"fmt"
	"net/http"

	"github.com/knowaria/knowaria/pkg/httpx"
)

// APIError is a failed API call. It is used both by the server (to write
// failure envelopes) and by the SDK client (to represent decoded failures),
// so the two sides can never drift apart.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`

	// Message is the human-readable message from the failure envelope.
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// WriteError writes this error to an HTTP response as a failure envelope.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Message)
}

// Predefined errors for the failure modes handlers share.
var (
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "The request is malformed or missing required fields",
	}

	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "Authentication required",
	}

	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Message:    "Resource not found",
	}

	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Something went wrong",
	}
)
