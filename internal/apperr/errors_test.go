package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsSurviveWrapping(t *testing.T) {
	cases := []struct {
		err  error
		kind error
	}{
		{Validation("items: %s", "empty"), ErrValidation},
		{NotFound("order", "x"), ErrNotFound},
		{InvalidTransition("pending", "ready"), ErrInvalidTransition},
		{Conflict("x"), ErrConflict},
		{AlreadyNotified("x"), ErrAlreadyNotified},
	}
	for _, c := range cases {
		wrapped := fmt.Errorf("handler: %w", c.err)
		assert.ErrorIs(t, wrapped, c.kind)
	}
	assert.False(t, errors.Is(Conflict("x"), ErrNotFound))
	assert.Contains(t, InvalidTransition("pending", "ready").Error(), "pending -> ready")
}
