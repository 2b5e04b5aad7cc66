package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	assert.True(t, IsValidation(NewValidation("amount", "must be greater than 0")))
	assert.True(t, IsNotFound(NewNotFound("goal")))
	assert.True(t, IsConflict(NewConflict("goal is already completed")))
	assert.True(t, IsStorage(NewStorage("create goal", errors.New("boom"))))

	assert.False(t, IsValidation(NewNotFound("goal")))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestPredicates_Wrapped(t *testing.T) {
	err := fmt.Errorf("contribute: %w", NewConflict("goal is already completed"))
	assert.True(t, IsConflict(err))
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStorage("fetch goals", cause)
	assert.True(t, errors.Is(err, cause))
}
