// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/model"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// MessageResponse type for swagger docs
type MessageResponse struct {
	Message string `json:"message"`
}

// ExtractUser extracts the user model from Gin context.
// It does not abort the request; it returns an authentication error when missing or invalid.
func ExtractUser(c *gin.Context) (model.User, error) {
	u, _ := c.Get("user")
	if u == nil {
		return model.User{}, apperror.Unauthenticated("User information not provided", nil)
	}

	user, ok := u.(model.User)
	if !ok {
		return model.User{}, apperror.Unauthenticated("Failed to assert type", nil)
	}
	return user, nil
}

// RespondError aborts the request with the status and body of err's kind.
// Errors without a kind are reported as internal errors. Causes of storage and internal
// errors are logged and never sent to the client.
func RespondError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.New(apperror.KindUnknown, "Internal server error", err)
	}

	switch appErr.Kind {
	case apperror.KindStorage, apperror.KindUnknown:
		log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg(appErr.Message)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.Kind.Status(), ErrorResponse{
		Message: appErr.Message,
		Code:    appErr.Kind.String(),
	})
}
