package middleware

import (
	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/utilities"
)

// CheckRole will protect endpoint from user that is not a specific roles.
// It must run after RequireAuth.
func CheckRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utilities.ExtractUser(ctx)
		if err != nil {
			utilities.RespondError(ctx, err)
			return
		}

		if !utilities.Contains(roles, user.Role) {
			utilities.RespondError(ctx, apperror.Forbidden("Access denied"))
			return
		}
		ctx.Next()
	}
}
