package contio_test

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-contio"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   contio.LoginInput
		wantErr bool
	}{
		{name: "valid", input: contio.LoginInput{UserName: "alice", Token: "tok", MinLength: 3}},
		{name: "name at minimum", input: contio.LoginInput{UserName: "bob", Token: "tok", MinLength: 3}, wantErr: true},
		{name: "multibyte name", input: contio.LoginInput{UserName: "ñoño", Token: "tok", MinLength: 3}},
		{name: "missing token", input: contio.LoginInput{UserName: "alice", MinLength: 3}, wantErr: true},
		{name: "missing name", input: contio.LoginInput{Token: "tok", MinLength: 3}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUserName(t *testing.T) {
	assert.NoError(t, contio.ValidateUserName(" alice ", 3))
	assert.ErrorIs(t, contio.ValidateUserName(" bob ", 3), contio.ErrUserNameTooShort)
	assert.ErrorIs(t, contio.ValidateUserName("", 3), contio.ErrUserNameTooShort)
}

func TestValidateChannelName(t *testing.T) {
	name, err := contio.ValidateChannelName("  general ")
	require.NoError(t, err)
	assert.Equal(t, "general", name)

	_, err = contio.ValidateChannelName(" \t ")
	assert.ErrorIs(t, err, contio.ErrEmptyChannelName)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, contio.ValidatePassword("Strong1x"))

	err := contio.ValidatePassword("weak")
	require.Error(t, err)
	assert.True(t, contio.IsValidationError(err))

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, "WEAK_PASSWORD", richErr.TextCode)
	assert.Equal(t, "password must contain at least 8 characters, one capital letter, one digit", richErr.Message)
}

func TestPasswordPolicyRule(t *testing.T) {
	type signUp struct {
		Password string
	}

	strong := signUp{Password: "Strong1x"}
	assert.NoError(t, validation.ValidateStruct(&strong,
		validation.Field(&strong.Password, validation.Required, contio.PasswordPolicyRule),
	))

	weak := signUp{Password: "abcdefgh"}
	assert.Error(t, validation.ValidateStruct(&weak,
		validation.Field(&weak.Password, validation.Required, contio.PasswordPolicyRule),
	))
}
