package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Is(t *testing.T) {
	t.Run("matches sentinel of its kind", func(t *testing.T) {
		err := NotFound("ACCOUNT_NOT_FOUND", "account %s not found", "+919800000000")
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrConflict))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("join failed: %w", Capacity("DRAW_FULL", "draw is full"))
		assert.True(t, errors.Is(err, ErrCapacity))
		assert.Equal(t, KindCapacity, KindOf(err))
	})

	t.Run("unwraps internal cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := Wrap(KindInternal, "DB", "query failed", cause)
		assert.True(t, errors.Is(err, cause))
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", NotFound("X", "x"), http.StatusNotFound},
		{"duplicate", Duplicate("X", "x"), http.StatusConflict},
		{"capacity", Capacity("X", "x"), http.StatusConflict},
		{"conflict", Conflict("X", "x"), http.StatusConflict},
		{"funds", InsufficientFunds("X", "x"), http.StatusPaymentRequired},
		{"invalid", InvalidInput("X", "x"), http.StatusBadRequest},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "draw is full", PublicMessage(Capacity("DRAW_FULL", "draw is full")))
	assert.Equal(t, "internal server error", PublicMessage(errors.New("pq: relation does not exist")))
}
