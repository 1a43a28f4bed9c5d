package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomError_Message(t *testing.T) {
	err := NewCustomError(ErrInvalidPassword, "password must contain at least one digit")

	assert.Equal(t, "password must contain at least one digit", err.Error())
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestCustomError_FallsBackToWrappedMessage(t *testing.T) {
	err := &CustomError{Err: ErrPostNotFound}
	assert.Equal(t, "post not found", err.Error())
}

func TestCustomError_SurvivesWrapping(t *testing.T) {
	inner := NewBadRequestError("group 7 does not exist")
	wrapped := fmt.Errorf("error creating post: %w", inner)

	assert.ErrorIs(t, wrapped, ErrBadRequest)

	var custom *CustomError
	assert.True(t, errors.As(wrapped, &custom))
	assert.Equal(t, "group 7 does not exist", custom.Message)
}

func TestIs_MatchesAnySentinel(t *testing.T) {
	err := fmt.Errorf("token validation error: %w", ErrTokenRevoked)

	assert.True(t, Is(err, ErrTokenNotFound, ErrTokenExpired, ErrTokenRevoked))
	assert.True(t, Is(ErrTokenExpired, ErrTokenExpired))
	assert.False(t, Is(err, ErrTokenNotFound, ErrTokenExpired))
	assert.False(t, Is(nil, ErrTokenNotFound))
}
