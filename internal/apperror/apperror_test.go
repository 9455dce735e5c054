package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	cases := []struct {
		kind   Kind
		status int
		code   string
	}{
		{KindValidation, http.StatusBadRequest, "validation"},
		{KindConflict, http.StatusBadRequest, "conflict"},
		{KindNotFound, http.StatusNotFound, "not_found"},
		{KindAuthentication, http.StatusUnauthorized, "unauthenticated"},
		{KindForbidden, http.StatusForbidden, "forbidden"},
		{KindStorage, http.StatusInternalServerError, "storage"},
		{KindUnknown, http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.kind.Status())
			assert.Equal(t, tc.code, tc.kind.String())
		})
	}
}

func TestKindOf_wrapped(t *testing.T) {
	cause := errors.New("duplicate key value")
	err := fmt.Errorf("create application: %w", Conflict("You have already applied to this job", cause))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, Is(err, KindConflict))
	assert.ErrorIs(t, err, cause)
}

func TestKindOf_plainError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Job not found", NotFound("Job not found").Error())
	assert.Equal(t, "Failed to fetch jobs: timeout", Storage("Failed to fetch jobs", errors.New("timeout")).Error())
}
