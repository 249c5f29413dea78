package contio_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-contio"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
)

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "invalid credentials", err: contio.ErrInvalidCredentials, expected: true},
		{name: "user name too short", err: contio.ErrUserNameTooShort, expected: true},
		{name: "empty channel name", err: contio.ErrEmptyChannelName, expected: true},
		{name: "wrapped validation error", err: fmt.Errorf("form: %w", contio.ErrInvalidCredentials), expected: true},
		{name: "auth error", err: contio.ErrNotConnected, expected: false},
		{name: "conflict error", err: contio.ErrSubmissionInFlight, expected: false},
		{name: "plain error", err: errors.New("boom"), expected: false},
		{name: "nil error", err: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, contio.IsValidationError(tt.err))
		})
	}
}

func TestServiceErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil", err: nil, expected: "Unknown error"},
		{name: "structured", err: contio.ErrEmptyChannelName, expected: "Channel name can't be empty"},
		{
			name:     "wrapped structured",
			err:      goerrors.Wrap(errors.New("dial tcp"), goerrors.CategoryOperation, "connection lost"),
			expected: "connection lost",
		},
		{name: "plain", err: errors.New("timeout"), expected: "timeout"},
		{name: "blank plain", err: errors.New("  "), expected: "Unknown error"},
		{name: "blank structured", err: goerrors.New("", goerrors.CategoryInternal), expected: "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, contio.ServiceErrorMessage(tt.err))
		})
	}
}

func TestSentinelTextCodes(t *testing.T) {
	assert.Equal(t, contio.TextCodeInvalidCredentials, contio.ErrInvalidCredentials.TextCode)
	assert.Equal(t, contio.TextCodeSubmissionInFlight, contio.ErrSubmissionInFlight.TextCode)
	assert.Equal(t, goerrors.CategoryConflict, contio.ErrSubmissionInFlight.Category)
	assert.Equal(t, "Invalid user name or password, please try again!", contio.ErrInvalidCredentials.Message)
}
