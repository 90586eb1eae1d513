package usecases

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/matthiasBT/library/internal/server/entities"
)

const MinUsernameLength = 1
const MinPasswordLength = 1

// validateUserAuthReq only reads JSON bodies. Any other content type leaves
// both fields empty and is rejected like a request without credentials.
func validateUserAuthReq(w http.ResponseWriter, r *http.Request) *entities.UserAuthRequest {
	var userReq entities.UserAuthRequest
	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mediaType != "application/json" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Username and password are required"))
		return nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Failed to read request body"))
		return nil
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &userReq); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Failed to parse request body"))
			return nil
		}
	}
	if len(userReq.Username) < MinUsernameLength || len(userReq.Password) < MinPasswordLength {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Username and password are required"))
		return nil
	}
	return &userReq
}
