package apperror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := map[*Error]int{
		BadRequest("X", "x"):   http.StatusBadRequest,
		Unauthorized("X", "x"): http.StatusUnauthorized,
		Forbidden("X", "x"):    http.StatusForbidden,
		NotFound("X", "x"):     http.StatusNotFound,
		Conflict("X", "x"):     http.StatusConflict,
		Unavailable("X", "x"):  http.StatusServiceUnavailable,
		{Code: "X"}:            http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, err.Status(), err.Code)
	}
}

func TestAsUnwraps(t *testing.T) {
	base := Conflict("USERNAME_TAKEN", "Username already registered")
	wrapped := fmt.Errorf("register: %w", base)

	got, ok := As(wrapped)
	assert.True(t, ok)
	assert.Same(t, base, got)
	assert.True(t, IsKind(wrapped, KindConflict))
	assert.False(t, IsKind(wrapped, KindNotFound))

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}
