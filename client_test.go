package contio_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-contio"
	"github.com/goliatone/go-contio/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresService(t *testing.T) {
	client, err := contio.NewClient(nil, nil)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, contio.ErrSessionServiceRequired)
}

func TestNewClientDefaultsConfig(t *testing.T) {
	client, err := contio.NewClient(&MockSessionService{}, nil)
	require.NoError(t, err)

	assert.Equal(t, contio.DefaultOptions(), client.Config())
	assert.NotNil(t, client.Authentication())
	assert.NotNil(t, client.Login())
	assert.NotNil(t, client.Channels())
	assert.NotNil(t, client.UserDetails())
}

func TestClientSignUpThenCreateChannel(t *testing.T) {
	secret := "s3cr3t"
	service := memory.NewSessionService(
		memory.WithTokenValidator(contio.NewHMACTokenValidator([]byte(secret))),
	)

	sink := &recordingSink{}
	client, err := contio.NewClient(service, contio.Options{TokenSecret: secret},
		contio.WithClientLogger(&captureLogger{}),
		contio.WithClientActivitySink(sink),
		contio.WithClientClock(fixedClock),
		contio.WithClientChannelIDs(contio.HashedChannelIDs),
	)
	require.NoError(t, err)

	form := client.Authentication()
	fillForm(t, form, "alice", "Strong1x")
	_, err = form.HandleEvent(context.Background(), contio.ToggleMode{})
	require.NoError(t, err)

	sub, err := form.HandleEvent(context.Background(), contio.Authenticate{})
	require.NoError(t, err)
	outcome := waitOutcome(t, sub)
	require.Equal(t, contio.OutcomeSignUpSucceeded, outcome.Kind, outcome.Reason)

	profile := client.UserDetails().Refresh()
	assert.Equal(t, "alice", profile.User.ID)

	event := waitChannel(t, client.Channels().CreateChannel(context.Background(), "general", ""))
	require.Equal(t, contio.ChannelCreated, event.Kind, event.Reason)
	assert.Equal(t, "messaging", event.Channel.Type)
	assert.Equal(t, "alice", event.Channel.CreatedBy)
	assert.Equal(t, contio.DefaultChannelImage, event.Channel.ExtraData["image"])

	expectedID, err := contio.HashedChannelIDs("general")
	require.NoError(t, err)
	assert.Equal(t, expectedID, event.Channel.ID)

	require.NoError(t, client.Channels().LogOut(context.Background()))
	assert.Equal(t, contio.LocalUser, client.UserDetails().Refresh().User)

	var types []contio.ActivityEventType
	for _, e := range sink.Events() {
		types = append(types, e.EventType)
	}
	assert.Equal(t, []contio.ActivityEventType{
		contio.ActivityEventSignUpSuccess,
		contio.ActivityEventChannelCreated,
		contio.ActivityEventLogout,
	}, types)
}

func TestClientUsesConfiguredMinUserNameLength(t *testing.T) {
	service := &MockSessionService{}
	client, err := contio.NewClient(service, contio.Options{MinUserNameLength: 5, UserToken: "tok"})
	require.NoError(t, err)

	future, err := client.Login().Login(context.Background(), "alice", "tok")
	require.NoError(t, err)

	event, done := future.Result()
	require.True(t, done)
	assert.Equal(t, contio.LoginErrorInputTooShort, event.Kind)
	service.AssertNotCalled(t, "ConnectUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestClientStaticUserToken(t *testing.T) {
	service := &MockSessionService{}
	service.On("ConnectUser", mock.Anything, contio.ChatUser{ID: "alice", Name: "alice"}, "static-token").
		Return(&contio.ConnectedSession{}, nil).Once()

	client, err := contio.NewClient(service, contio.Options{UserToken: "static-token"},
		contio.WithClientLogger(&captureLogger{}),
	)
	require.NoError(t, err)

	fillForm(t, client.Authentication(), "alice", "Strong1x")
	outcome := waitOutcome(t, mustSubmit(t, client.Authentication(), contio.ModeSignIn))
	assert.True(t, outcome.Succeeded())
	service.AssertExpectations(t)
}

func TestUserDetailsFallsBackToLocalUser(t *testing.T) {
	service := &MockSessionService{}
	service.On("CurrentUser").Return(nil).Once()
	service.On("CurrentUser").Return(&contio.ChatUser{ID: "alice", Name: "Alice"}).Once()

	c, err := contio.NewUserDetailsController(service)
	require.NoError(t, err)
	assert.Equal(t, contio.LocalUser, c.State().User)

	assert.Equal(t, contio.LocalUser, c.Refresh().User)

	state := c.Refresh()
	assert.Equal(t, contio.UserDetailsState{User: contio.ChatUser{ID: "alice", Name: "Alice"}}, state)
	assert.Equal(t, state, c.State())

	_, err = contio.NewUserDetailsController(nil)
	assert.ErrorIs(t, err, contio.ErrSessionServiceRequired)
}
