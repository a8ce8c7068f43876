package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"romlerk-backend-go/internal/core"
)

// statusFor maps the core error kinds onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorBody builds the envelope for err. Unclassified errors keep their
// text out of the response.
func errorBody(err error) (int, string, interface{}) {
	status := statusFor(err)
	var ce *core.Error
	if errors.As(err, &ce) {
		return status, ce.Message, ce.Details
	}
	return status, "An unexpected internal server error occurred.", nil
}

func logFailure(c *gin.Context, logger *zap.Logger, status int, err error) {
	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
}

// respondError writes {success:false, error, details?}.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, msg, details := errorBody(err)
	logFailure(c, logger, status, err)
	c.JSON(status, ErrorResponse{Error: msg, Details: details})
}

// respondMessageError writes {success:false, message, details?}.
func respondMessageError(c *gin.Context, logger *zap.Logger, err error) {
	status, msg, details := errorBody(err)
	logFailure(c, logger, status, err)
	c.JSON(status, ErrorResponse{Message: msg, Details: details})
}

func badPayload(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
}

// currentUser returns the authenticated uid or answers 401.
func currentUser(c *gin.Context, uid string) bool {
	if uid == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Missing user UID"})
		return false
	}
	return true
}
