package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

// JwtIssuer is the issuer of every token this service signs
const JwtIssuer = "JobBoard"

// TokenDuration is how long an access token stays valid
const TokenDuration = 7 * 24 * time.Hour

// ErrMissingSecret is returned when SECRET_KEY is not configured
var ErrMissingSecret = errors.New("SECRET_KEY is not set")

func secretKey() ([]byte, error) {
	key := os.Getenv("SECRET_KEY")
	if key == "" {
		return nil, ErrMissingSecret
	}
	return []byte(key), nil
}

// GenerateTokenWithDuration signs an HS256 token for the user id that expires after dur.
func GenerateTokenWithDuration(id uuid.UUID, dur time.Duration, issuer string) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   id.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(dur)),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("Failed to sign token: %w", err)
	}
	return signed, nil
}

// GenerateStandardToken signs an access token with the standard issuer and duration.
func GenerateStandardToken(id uuid.UUID) (string, error) {
	return GenerateTokenWithDuration(id, TokenDuration, JwtIssuer)
}

// ValidatedToken parses an encoded token, checking its HMAC signature and expiry.
// The claims of the returned token are *jwt.RegisteredClaims.
func ValidatedToken(encodeToken string) (*jwt.Token, error) {
	key, err := secretKey()
	if err != nil {
		return nil, err
	}
	return jwt.ParseWithClaims(encodeToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return key, nil
	})
}
