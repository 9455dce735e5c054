package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStandardToken(t *testing.T) {
	id := uuid.New()
	signed, err := GenerateStandardToken(id)
	require.NoError(t, err)

	claims := validClaims(t, signed)
	assert.Equal(t, id.String(), claims.Subject)
	assert.Equal(t, JwtIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidatedToken_expired(t *testing.T) {
	signed, err := GenerateTokenWithDuration(uuid.New(), -time.Minute, JwtIssuer)
	require.NoError(t, err)

	_, err = ValidatedToken(signed)
	require.Error(t, err)

	var verr *jwt.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Is(jwt.ErrTokenExpired))
}

func TestValidatedToken_wrongSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("someone-elses-secret"))
	require.NoError(t, err)

	_, err = ValidatedToken(signed)
	assert.Error(t, err)
}

func TestValidatedToken_rejectsNoneAlg(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: uuid.NewString()})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidatedToken(signed)
	assert.Error(t, err)
}

func TestSecretKeyRequired(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := GenerateStandardToken(uuid.New())
	assert.ErrorIs(t, err, ErrMissingSecret)
}
