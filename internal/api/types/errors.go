package types

import (
	"errors"
	"net/http"

	appErr "github.com/atech/cms/pkg/errors"
)

// CodeSupabaseRequired tells the admin client that writes need the
// relational backend to be configured.
const CodeSupabaseRequired = "SUPABASE_REQUIRED"

// FromAppError maps an error to its HTTP status and body by error code.
func FromAppError(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusOK, ErrorResponse{}
	}
	msg := err.Error()
	var e *appErr.AppError
	if errors.As(err, &e) {
		msg = e.Message
	}
	switch appErr.CodeOf(err) {
	case appErr.CodeNotFound:
		return http.StatusNotFound, ErrorResponse{Error: msg}
	case appErr.CodeInvalid:
		return http.StatusBadRequest, ErrorResponse{Error: msg, Code: string(appErr.CodeInvalid)}
	case appErr.CodeConflict:
		return http.StatusConflict, ErrorResponse{Error: msg, Code: string(appErr.CodeConflict)}
	case appErr.CodeUnauthorized:
		return http.StatusUnauthorized, ErrorResponse{Error: msg}
	case appErr.CodeBackendNotConfigured:
		return http.StatusServiceUnavailable, ErrorResponse{Error: msg, Code: CodeSupabaseRequired}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "UNKNOWN_ERROR"}
	}
}
