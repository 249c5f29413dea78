package contio

import "sync"

// LocalUser is shown when no user is connected
var LocalUser = ChatUser{ID: "local", Name: "local"}

// UserDetailsState is the profile screen snapshot. Refresh reads the
// session synchronously so there is no loading or error phase.
type UserDetailsState struct {
	User ChatUser
}

// UserDetailsController exposes the connected user's profile
type UserDetailsController struct {
	service SessionService

	mu    sync.RWMutex
	state UserDetailsState
}

// NewUserDetailsController returns a controller bound to service
func NewUserDetailsController(service SessionService) (*UserDetailsController, error) {
	if service == nil {
		return nil, ErrSessionServiceRequired
	}
	return &UserDetailsController{
		service: service,
		state:   UserDetailsState{User: LocalUser},
	}, nil
}

// Refresh loads the current user, falling back to LocalUser
func (c *UserDetailsController) Refresh() UserDetailsState {
	user := LocalUser
	if current := c.service.CurrentUser(); current != nil {
		user = *current
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.User = user
	return c.state
}

// State returns the current snapshot
func (c *UserDetailsController) State() UserDetailsState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}
