// Package middleware contain utilities middleware code
package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

// RequireAuth validates the Bearer token in the Authorization header, loads the user it was
// issued to, and puts the claims and the user on the context as "claims" and "user".
func RequireAuth(db *database.DBinstanceStruct) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			utilities.RespondError(ctx, apperror.Unauthenticated("Please authenticate", err))
			return
		}

		token, err := auth.ValidatedToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				utilities.RespondError(ctx, apperror.Unauthenticated("Access token expired", err))
				return
			}
			if errors.Is(err, auth.ErrMissingSecret) {
				utilities.RespondError(ctx, apperror.New(apperror.KindUnknown, "Failed to validate token", err))
				return
			}
			utilities.RespondError(ctx, apperror.Unauthenticated("Invalid access token", err))
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !token.Valid || !ok {
			utilities.RespondError(ctx, apperror.Unauthenticated("Invalid access token", nil))
			return
		}

		if claims.Issuer != auth.JwtIssuer {
			utilities.RespondError(ctx, apperror.Unauthenticated("Invalid token issuer", nil))
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			utilities.RespondError(ctx, apperror.Unauthenticated("Invalid access token", err))
			return
		}

		var foundUser model.User
		if err := db.WithContext(ctx.Request.Context()).First(&foundUser, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utilities.RespondError(ctx, apperror.Unauthenticated("User not exist", err))
				return
			}
			utilities.RespondError(ctx, apperror.Storage("Failed to retrieve user data", err))
			return
		}

		ctx.Set("claims", claims)
		ctx.Set("user", foundUser)
		ctx.Next()
	}
}
