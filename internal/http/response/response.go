package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Krishna1199000/propalai-backend/internal/pkg/errors"
)

var (
	errInternal = errors.New("internal server error")
	errTimedOut = errors.New("request timed out, please retry")
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondMapped translates sentinel errors to their HTTP status. Upstream
// detail never reaches the client; the full cause is attached to the gin
// context so the request logger records it server-side.
func RespondMapped(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, code, err)
	case errors.Is(err, apperrors.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, code, err)
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		RespondError(c, http.StatusBadRequest, code, apperrors.ErrDuplicateEmail)
	case errors.Is(err, apperrors.ErrNotFound):
		RespondError(c, http.StatusNotFound, code, err)
	case errors.Is(err, context.DeadlineExceeded):
		// A fired deadline is transient; tell the client to retry.
		_ = c.Error(err)
		RespondError(c, http.StatusServiceUnavailable, code, errTimedOut)
	default:
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, code, errInternal)
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
