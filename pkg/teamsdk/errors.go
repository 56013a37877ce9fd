package teamsdk

import "fmt"

// Error codes used in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeForbidden      = "forbidden"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeConflict       = "conflict"
	ErrorCodeServerError    = "server_error"
)

// APIError is the client-side representation of an ErrorResponse, carrying
// the HTTP status it arrived with.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Description)
}
