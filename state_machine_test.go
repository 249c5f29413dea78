package contio_test

import (
	"testing"

	"github.com/goliatone/go-contio"
	"github.com/stretchr/testify/assert"
)

func TestReduceUserNameChangedOnlyTouchesUserName(t *testing.T) {
	before := formState(contio.ModeSignUp, "alice", "Strong1x")
	before.Error = "boom"

	after := contio.Reduce(before, contio.UserNameChanged{Name: "bob"})

	assert.Equal(t, "bob", after.UserName)
	before.UserName = "bob"
	assert.Equal(t, before, after)
}

func TestReducePasswordChangedRecomputesRequirements(t *testing.T) {
	state := contio.Reduce(contio.NewFormState(), contio.PasswordChanged{Password: "Abcdefg1"})
	assert.True(t, state.Requirements.Complete())

	state = contio.Reduce(state, contio.PasswordChanged{Password: "abc"})
	assert.Equal(t, "abc", state.Password)
	assert.Zero(t, state.Requirements.Len(), "requirements are not sticky")
}

func TestReduceToggleTwiceRestoresState(t *testing.T) {
	before := formState(contio.ModeSignIn, "bob", "x")

	once := contio.Reduce(before, contio.ToggleMode{})
	assert.Equal(t, contio.ModeSignUp, once.Mode)

	twice := contio.Reduce(once, &contio.ToggleMode{})
	assert.Equal(t, before, twice)
}

func TestReduceErrorDismissed(t *testing.T) {
	state := contio.NewFormState()
	state.Error = "Invalid user name or password, please try again!"

	state = contio.Reduce(state, contio.ErrorDismissed{})
	assert.Empty(t, state.Error)
}

func TestReducePointerEvents(t *testing.T) {
	state := contio.Reduce(contio.NewFormState(), &contio.UserNameChanged{Name: "bob"})
	state = contio.Reduce(state, &contio.PasswordChanged{Password: "Strong1x"})

	assert.Equal(t, "bob", state.UserName)
	assert.True(t, state.Requirements.Complete())

	var nilEvent *contio.UserNameChanged
	assert.Equal(t, state, contio.Reduce(state, nilEvent))
}

func TestReduceIgnoresSubmitEvents(t *testing.T) {
	state := formState(contio.ModeSignIn, "bob", "Strong1x")

	for _, event := range []contio.FormEvent{contio.SignIn{}, contio.SignUp{}, contio.Authenticate{}, nil} {
		assert.Equal(t, state, contio.Reduce(state, event))
	}
}

func TestIsSubmitEvent(t *testing.T) {
	assert.True(t, contio.IsSubmitEvent(contio.SignIn{}))
	assert.True(t, contio.IsSubmitEvent(&contio.SignUp{}))
	assert.True(t, contio.IsSubmitEvent(contio.Authenticate{}))
	assert.False(t, contio.IsSubmitEvent(contio.ToggleMode{}))
	assert.False(t, contio.IsSubmitEvent(contio.UserNameChanged{Name: "bob"}))
}
