package contio

// FormEvent is an input to the authentication form. Local events are folded
// into the state by Reduce, submit events are dispatched by the controller.
type FormEvent interface {
	formEvent()
}

// UserNameChanged replaces the user name
type UserNameChanged struct {
	Name string
}

// PasswordChanged replaces the password and recomputes its requirements
type PasswordChanged struct {
	Password string
}

// ToggleMode flips between sign in and sign up
type ToggleMode struct{}

// ErrorDismissed clears the form error
type ErrorDismissed struct{}

// SignIn submits the form as a sign in
type SignIn struct{}

// SignUp submits the form as a sign up
type SignUp struct{}

// Authenticate submits the form according to its current mode
type Authenticate struct{}

func (UserNameChanged) formEvent() {}
func (PasswordChanged) formEvent() {}
func (ToggleMode) formEvent()      {}
func (ErrorDismissed) formEvent()  {}
func (SignIn) formEvent()          {}
func (SignUp) formEvent()          {}
func (Authenticate) formEvent()    {}

// IsSubmitEvent reports whether event triggers a request to the session service
func IsSubmitEvent(event FormEvent) bool {
	switch event.(type) {
	case SignIn, *SignIn, SignUp, *SignUp, Authenticate, *Authenticate:
		return true
	default:
		return false
	}
}

// Reduce applies a local event to state and returns the next snapshot.
// Every event touches only the fields it owns; submit and unknown events
// return state unchanged.
func Reduce(state FormState, event FormEvent) FormState {
	switch e := event.(type) {
	case UserNameChanged:
		state.UserName = e.Name
	case *UserNameChanged:
		if e != nil {
			state.UserName = e.Name
		}
	case PasswordChanged:
		state = applyPassword(state, e.Password)
	case *PasswordChanged:
		if e != nil {
			state = applyPassword(state, e.Password)
		}
	case ToggleMode, *ToggleMode:
		state.Mode = state.Mode.Toggle()
	case ErrorDismissed, *ErrorDismissed:
		state.Error = ""
	}
	return state
}

func applyPassword(state FormState, password string) FormState {
	state.Password = password
	state.Requirements = EvaluatePassword(password)
	return state
}

// withLoading is the transition used around the outbound request.
func withLoading(state FormState, loading bool) FormState {
	state.IsLoading = loading
	return state
}
