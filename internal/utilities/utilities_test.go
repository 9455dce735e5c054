package utilities

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong-pass"))
	assert.False(t, VerifyPassword("not-a-hash", "s3cret-pass"))
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
		code    string
	}{
		{"validation", apperror.Validation("title is required", nil), http.StatusBadRequest, "title is required", "validation"},
		{"conflict", apperror.Conflict("You have already applied to this job", nil), http.StatusBadRequest, "You have already applied to this job", "conflict"},
		{"not found", apperror.NotFound("Job not found or unauthorized"), http.StatusNotFound, "Job not found or unauthorized", "not_found"},
		{"forbidden", apperror.Forbidden("Access denied"), http.StatusForbidden, "Access denied", "forbidden"},
		{"storage hides cause", apperror.Storage("Failed to fetch jobs", errors.New("connection refused")), http.StatusInternalServerError, "Failed to fetch jobs", "storage"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal server error", "internal"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp, err := SimulateAPICall(func(c *gin.Context) {
				RespondError(c, tc.err)
			}, "/", http.MethodGet, nil)
			require.NoError(t, err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.message, resp["message"])
			assert.Equal(t, tc.code, resp["code"])
		})
	}
}

func TestExtractUser(t *testing.T) {
	user := model.User{ID: uuid.New(), Name: "Alice", Role: model.RoleSeeker}

	_, resp, err := SimulateAPICall(func(c *gin.Context) {
		got, err := ExtractUser(c)
		if err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": got.ID.String()})
	}, "/", http.MethodGet, nil, func(c *gin.Context) {
		c.Set("user", user)
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), resp["id"])

	rec, resp, err := SimulateAPICall(func(c *gin.Context) {
		if _, err := ExtractUser(c); err != nil {
			RespondError(c, err)
		}
	}, "/", http.MethodGet, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthenticated", resp["code"])
}

func TestExtractBearerToken(t *testing.T) {
	cases := map[string]struct {
		header string
		token  string
		ok     bool
	}{
		"valid":        {"Bearer abc.def.ghi", "abc.def.ghi", true},
		"lowercase":    {"bearer abc", "abc", true},
		"missing":      {"", "", false},
		"scheme only":  {"Bearer ", "", false},
		"other scheme": {"Basic dXNlcjpwYXNz", "", false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, _ = SimulateAPICall(func(c *gin.Context) {
				token, err := ExtractBearerToken(c)
				if tc.ok {
					assert.NoError(t, err)
					assert.Equal(t, tc.token, token)
				} else {
					assert.ErrorIs(t, err, ErrInvalidAuthHeader)
				}
				c.Status(http.StatusNoContent)
			}, "/", http.MethodGet, nil, func(c *gin.Context) {
				c.Request.Header.Set("Authorization", tc.header)
			})
		})
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"user", "employer"}, "employer"))
	assert.False(t, Contains([]string{"user"}, "employer"))
	assert.False(t, Contains(nil, 1))
}

func TestParseID(t *testing.T) {
	cases := map[string]struct {
		value string
		id    uint
		ok    bool
	}{
		"valid":    {"42", 42, true},
		"zero":     {"0", 0, false},
		"negative": {"-1", 0, false},
		"word":     {"abc", 0, false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, _ = SimulateAPICall(func(c *gin.Context) {
				id, err := ParseID(c, "id", "job")
				if tc.ok {
					assert.NoError(t, err)
					assert.Equal(t, tc.id, id)
				} else {
					assert.True(t, apperror.Is(err, apperror.KindValidation))
					assert.Contains(t, err.Error(), "Invalid job id")
				}
				c.Status(http.StatusNoContent)
			}, "/", http.MethodGet, nil, func(c *gin.Context) {
				c.Params = gin.Params{{Key: "id", Value: tc.value}}
			})
		})
	}
}

