package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate checks the struct tags on decoded request bodies. One instance,
// it caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate decodes a JSON body into dst and runs its validate tags.
// Returns false after writing a 400 envelope when either step fails.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeBadRequest(w, "Request body is not valid JSON")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeBadRequest(w, "The request is malformed or missing required fields")
		return false
	}
	return true
}
