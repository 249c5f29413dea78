package contio_test

import (
	"testing"

	"github.com/goliatone/go-contio"
	"github.com/stretchr/testify/assert"
)

func TestEvaluatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		expected []contio.PasswordRequirement
	}{
		{name: "empty", password: "", expected: []contio.PasswordRequirement{}},
		{name: "short lowercase", password: "abc", expected: []contio.PasswordRequirement{}},
		{name: "all requirements", password: "Abcdefg1", expected: contio.AllPasswordRequirements()},
		{name: "length only", password: "abcdefgh", expected: []contio.PasswordRequirement{contio.RequirementMinLength}},
		{name: "uppercase only", password: "A", expected: []contio.PasswordRequirement{contio.RequirementUppercase}},
		{name: "digit only", password: "1", expected: []contio.PasswordRequirement{contio.RequirementDigit}},
		{
			name:     "length and digit",
			password: "abcdefg1",
			expected: []contio.PasswordRequirement{contio.RequirementMinLength, contio.RequirementDigit},
		},
		{
			name:     "runes are counted not bytes",
			password: "ééééééé",
			expected: []contio.PasswordRequirement{},
		},
		{
			name:     "unicode uppercase",
			password: "Éabcdefg",
			expected: []contio.PasswordRequirement{contio.RequirementMinLength, contio.RequirementUppercase},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contio.EvaluatePassword(tt.password)
			assert.Equal(t, tt.expected, got.List())
			assert.Equal(t, len(tt.expected), got.Len())
		})
	}
}

func TestPasswordRequirementsSet(t *testing.T) {
	set := contio.NewPasswordRequirements(contio.RequirementUppercase, contio.RequirementDigit)

	assert.True(t, set.Has(contio.RequirementDigit))
	assert.False(t, set.Has(contio.RequirementMinLength))
	assert.False(t, set.Has(0))
	assert.True(t, set.ContainsAll(contio.RequirementUppercase, contio.RequirementDigit))
	assert.False(t, set.Complete())
	assert.Equal(t, []contio.PasswordRequirement{contio.RequirementMinLength}, set.Missing())
	assert.Equal(t, "{one capital letter, one digit}", set.String())

	assert.True(t, contio.NewPasswordRequirements(contio.AllPasswordRequirements()...).Complete())
	assert.Equal(t, "{}", contio.PasswordRequirements{}.String())
}

func TestAuthenticationModeToggle(t *testing.T) {
	assert.Equal(t, contio.ModeSignUp, contio.ModeSignIn.Toggle())
	assert.Equal(t, contio.ModeSignIn, contio.ModeSignUp.Toggle())
	assert.Equal(t, contio.ModeSignUp, contio.AuthenticationMode("").Toggle())
	assert.Equal(t, "sign_in", contio.AuthenticationMode("").String())
}

func TestFormStateIsFormValid(t *testing.T) {
	tests := []struct {
		name     string
		state    contio.FormState
		expected bool
	}{
		{
			name:     "sign in skips password policy",
			state:    formState(contio.ModeSignIn, "bob", "x"),
			expected: true,
		},
		{
			name:     "sign up rejects weak password",
			state:    formState(contio.ModeSignUp, "bob", "weak"),
			expected: false,
		},
		{
			name:     "sign up accepts strong password",
			state:    formState(contio.ModeSignUp, "bob", "Strong1x"),
			expected: true,
		},
		{
			name:     "empty user name",
			state:    formState(contio.ModeSignIn, "", "x"),
			expected: false,
		},
		{
			name:     "empty password",
			state:    formState(contio.ModeSignIn, "bob", ""),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.IsFormValid())
		})
	}
}

func TestFormStateSatisfiedIgnoresMode(t *testing.T) {
	assert.False(t, formState(contio.ModeSignIn, "bob", "x").Satisfied())
	assert.True(t, formState(contio.ModeSignIn, "bob", "Strong1x").Satisfied())
	assert.True(t, formState(contio.ModeSignUp, "bob", "Strong1x").Satisfied())
	assert.False(t, formState(contio.ModeSignUp, "", "Strong1x").Satisfied())
}

func TestFormStateSatisfiedRequiresNonEmptyUserName(t *testing.T) {
	assert.False(t, formState(contio.ModeSignIn, "", "Strong1x").Satisfied())
	assert.False(t, formState(contio.ModeSignIn, "", "").Satisfied())

	// Any non-empty name counts, whitespace is not trimmed.
	assert.True(t, formState(contio.ModeSignIn, " ", "Strong1x").Satisfied())
	assert.True(t, formState(contio.ModeSignUp, "b", "Strong1x").Satisfied())
	assert.False(t, formState(contio.ModeSignIn, " ", "weak").Satisfied())
}

func TestFormStateChatUser(t *testing.T) {
	user := formState(contio.ModeSignIn, "bob", "x").ChatUser()
	assert.Equal(t, contio.ChatUser{ID: "bob", Name: "bob"}, user)
}

func TestNewFormState(t *testing.T) {
	state := contio.NewFormState()
	assert.Equal(t, contio.ModeSignIn, state.Mode)
	assert.Empty(t, state.UserName)
	assert.Empty(t, state.Password)
	assert.Zero(t, state.Requirements.Len())
	assert.False(t, state.IsLoading)
	assert.Empty(t, state.Error)
}

func formState(mode contio.AuthenticationMode, userName, password string) contio.FormState {
	state := contio.NewFormState()
	state.Mode = mode
	state = contio.Reduce(state, contio.UserNameChanged{Name: userName})
	return contio.Reduce(state, contio.PasswordChanged{Password: password})
}
