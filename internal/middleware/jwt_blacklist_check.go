package middleware

import (
	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/utilities"
)

// JwtBlacklistCheck is a middleware that rejects tokens revoked by logout
func JwtBlacklistCheck(bl auth.JwtBlacklistStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			utilities.RespondError(ctx, apperror.Unauthenticated("Please authenticate", err))
			return
		}

		isBlacklisted, err := bl.IsBlacklisted(tokenString)
		if err != nil {
			utilities.RespondError(ctx, apperror.Storage("Failed to validate token", err))
			return
		}

		if isBlacklisted {
			utilities.RespondError(ctx, apperror.Unauthenticated("Token has been revoked", nil))
			return
		}
		ctx.Next()
	}
}
