package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{BadRequest("x"), http.StatusBadRequest, "BAD_REQUEST"},
		{Unauthorized("x"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{Forbidden("x"), http.StatusForbidden, "FORBIDDEN"},
		{NotFound("x"), http.StatusNotFound, "NOT_FOUND"},
		{Conflict("x"), http.StatusConflict, "CONFLICT"},
		{New(KindRateLimited, "x"), http.StatusTooManyRequests, "RATE_LIMITED"},
		{Internal("x", errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{errors.New("plain"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		k := KindOf(tc.err)
		assert.Equal(t, tc.status, k.HTTPStatus(), tc.err.Error())
		assert.Equal(t, tc.code, k.Code(), tc.err.Error())
	}
}

func TestWrappedKindSurvives(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("listing: %w", Internal("failed to list", cause))
	assert.True(t, Is(err, KindInternal))
	assert.ErrorIs(t, err, cause)
	assert.False(t, Is(nil, KindInternal))

	v := Validation("invalid payload", map[string]string{"title": "is required"})
	assert.Equal(t, KindBadRequest, v.Kind)
	assert.Equal(t, "invalid payload", v.Error())
}
