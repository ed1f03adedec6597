package types

import (
	"net/http"

	appErr "github.com/thesislink/engine/pkg/errors"
)

// StatusOf maps stable error codes to HTTP statuses. Duplicate applications
// are a real 409 here, not a 400.
func StatusOf(err error) int {
	switch appErr.CodeOf(err) {
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.CodeForbidden:
		return http.StatusForbidden
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FromError builds the failure envelope for an error. Internal failures get a
// generic message so wrapped causes never leak to clients.
func FromError(err error) APIResponse {
	if StatusOf(err) == http.StatusInternalServerError {
		return Fail("internal server error")
	}
	return Fail(appErr.MessageOf(err))
}
