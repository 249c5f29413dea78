package contio

import (
	"context"
	"fmt"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// AuthenticationOption customizes controller construction.
type AuthenticationOption func(*AuthenticationController)

// WithAuthenticationLogger overrides the logger.
func WithAuthenticationLogger(logger Logger) AuthenticationOption {
	return func(c *AuthenticationController) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAuthenticationActivitySink sets the ActivitySink used to publish
// sign in and sign up events.
func WithAuthenticationActivitySink(sink ActivitySink) AuthenticationOption {
	return func(c *AuthenticationController) {
		c.activity.sink = normalizeActivitySink(sink)
	}
}

// WithAuthenticationClock injects a custom clock (useful for tests).
func WithAuthenticationClock(clock func() time.Time) AuthenticationOption {
	return func(c *AuthenticationController) {
		if clock != nil {
			c.now = clock
			c.activity.now = clock
		}
	}
}

// WithSubmitTimeout bounds the connect call. Zero means no timeout.
func WithSubmitTimeout(timeout time.Duration) AuthenticationOption {
	return func(c *AuthenticationController) {
		if timeout > 0 {
			c.submitTimeout = timeout
		}
	}
}

// WithInitialFormState replaces the default initial state. Requirements are
// recomputed from the given password.
func WithInitialFormState(state FormState) AuthenticationOption {
	return func(c *AuthenticationController) {
		state.Requirements = EvaluatePassword(state.Password)
		state.Mode = state.Mode.normalize()
		state.IsLoading = false
		c.state = state
	}
}

// AuthenticationController owns the authentication form. State changes are
// whole snapshot swaps made by a single writer at a time, readers always see
// a consistent FormState.
//
// State and outcome subscribers run on the goroutine that produced the
// change and must not call HandleEvent, SignIn or SignUp synchronously.
type AuthenticationController struct {
	service       SessionService
	tokens        TokenProvider
	logger        Logger
	activity      activityRecorder
	now           func() time.Time
	submitTimeout time.Duration

	writer   sync.Mutex
	mu       sync.RWMutex
	state    FormState
	inFlight bool
	seq      uint64

	states   *Hub[FormState]
	outcomes *Hub[Outcome]
}

// NewAuthenticationController returns a controller bound to service. tokens
// resolves the credential for the connecting user.
func NewAuthenticationController(service SessionService, tokens TokenProvider, opts ...AuthenticationOption) (*AuthenticationController, error) {
	if service == nil {
		return nil, ErrSessionServiceRequired
	}

	if tokens == nil {
		tokens = StaticToken("")
	}

	c := &AuthenticationController{
		service:  service,
		tokens:   tokens,
		logger:   defLogger{},
		activity: activityRecorder{sink: noopActivitySink{}},
		now:      time.Now,
		state:    NewFormState(),
		states:   NewHub[FormState](),
		outcomes: NewHub[Outcome](),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	c.activity.logger = c.logger

	return c, nil
}

// State returns the current form snapshot
func (c *AuthenticationController) State() FormState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// States publishes every new form snapshot
func (c *AuthenticationController) States() *Hub[FormState] {
	return c.states
}

// Outcomes publishes submission outcomes. The last value is the outcome of
// the most recent submission, even when an older one finishes later.
func (c *AuthenticationController) Outcomes() *Hub[Outcome] {
	return c.outcomes
}

// InFlight reports whether a submission is awaiting the session service
func (c *AuthenticationController) InFlight() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inFlight
}

// HandleEvent applies a form event. Local events return a nil Submission,
// submit events return the pending submission.
func (c *AuthenticationController) HandleEvent(ctx context.Context, event FormEvent) (*Submission, error) {
	switch event.(type) {
	case SignIn, *SignIn:
		return c.SignIn(ctx)
	case SignUp, *SignUp:
		return c.SignUp(ctx)
	case Authenticate, *Authenticate:
		return c.Submit(ctx, c.State().Mode)
	case nil:
		return nil, nil
	}

	c.update(func(s FormState) FormState {
		return Reduce(s, event)
	})
	return nil, nil
}

// SignIn submits the form as a sign in
func (c *AuthenticationController) SignIn(ctx context.Context) (*Submission, error) {
	return c.Submit(ctx, ModeSignIn)
}

// SignUp submits the form as a sign up
func (c *AuthenticationController) SignUp(ctx context.Context) (*Submission, error) {
	return c.Submit(ctx, ModeSignUp)
}

// Submit connects the form user with the session service. The precondition
// is checked first: when it fails a failure outcome is emitted before Submit
// returns and the service is not contacted. Otherwise the connect call runs
// on its own goroutine, detached from ctx cancellation, and the returned
// Submission completes with its outcome.
//
// Only one submission may be in flight, a second one is rejected with
// ErrSubmissionInFlight and emits nothing.
func (c *AuthenticationController) Submit(ctx context.Context, mode AuthenticationMode) (*Submission, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	mode = mode.normalize()

	c.writer.Lock()
	c.mu.Lock()

	if c.inFlight {
		c.mu.Unlock()
		c.writer.Unlock()
		c.logger.Warn("authentication %s rejected: submission in flight", mode)
		return nil, ErrSubmissionInFlight
	}

	c.seq++
	sub := newSubmission(mode, c.seq)

	state := c.state
	if !state.Satisfied() {
		c.mu.Unlock()
		c.writer.Unlock()
		c.logger.Debug("authentication %s precondition failed for %q", mode, state.UserName)
		c.complete(ctx, sub, state.UserName, ErrInvalidCredentials, false)
		return sub, nil
	}

	c.inFlight = true
	next := withLoading(state, true)
	c.state = next
	c.mu.Unlock()
	c.states.Publish(next)
	c.writer.Unlock()

	go c.connect(context.WithoutCancel(ctx), sub, state.ChatUser())

	return sub, nil
}

func (c *AuthenticationController) update(fn func(FormState) FormState) FormState {
	c.writer.Lock()
	defer c.writer.Unlock()

	c.mu.Lock()
	next := fn(c.state)
	c.state = next
	c.mu.Unlock()

	c.states.Publish(next)
	return next
}

func (c *AuthenticationController) connect(ctx context.Context, sub *Submission, user ChatUser) {
	if c.submitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.submitTimeout)
		defer cancel()
	}

	err := c.callService(ctx, user)
	if err != nil {
		c.logger.Error("authentication %s failed for %q: %v", sub.Mode(), user.ID, err)
	} else {
		c.logger.Info("authentication %s succeeded for %q", sub.Mode(), user.ID)
	}

	c.complete(ctx, sub, user.ID, err, true)
}

func (c *AuthenticationController) callService(ctx context.Context, user ChatUser) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = goerrors.New(fmt.Sprintf("session service panic: %v", r), goerrors.CategoryInternal)
		}
	}()

	token, err := c.tokens.Token(ctx, user.ID)
	if err != nil {
		return err
	}

	_, err = c.service.ConnectUser(ctx, user, token)
	return err
}

// complete applies the terminal state change and emits the one outcome of
// sub. inFlight tells whether the submission reached the service.
func (c *AuthenticationController) complete(ctx context.Context, sub *Submission, userID string, err error, inFlight bool) {
	mode := sub.Mode()
	outcome := Outcome{
		Kind:       successKind(mode),
		UserID:     userID,
		OccurredAt: c.now(),
	}
	if err != nil {
		outcome.Kind = failureKind(mode)
		outcome.Reason = ServiceErrorMessage(err)
	}

	c.writer.Lock()
	c.mu.Lock()
	next := c.state
	if inFlight {
		c.inFlight = false
		next.IsLoading = false
	}
	next.Error = outcome.Reason
	c.state = next
	c.mu.Unlock()
	c.states.Publish(next)
	c.writer.Unlock()

	c.recordOutcome(ctx, outcome, err)
	c.outcomes.PublishAt(sub.seq, outcome)
	sub.complete(outcome)
}

func (c *AuthenticationController) recordOutcome(ctx context.Context, outcome Outcome, err error) {
	var eventType ActivityEventType
	switch outcome.Kind {
	case OutcomeSignInSucceeded:
		eventType = ActivityEventSignInSuccess
	case OutcomeSignInFailed:
		eventType = ActivityEventSignInFailure
	case OutcomeSignUpSucceeded:
		eventType = ActivityEventSignUpSuccess
	default:
		eventType = ActivityEventSignUpFailure
	}

	metadata := map[string]any{
		"mode": string(outcome.Mode()),
	}
	if err != nil {
		metadata["error"] = outcome.Reason
		if code := errorTextCode(err); code != "" {
			metadata["code"] = code
		}
	}

	c.logger.Debug("authentication activity %s: %s", eventType, print.MaybePrettyJSON(metadata))

	c.activity.record(ctx, ActivityEvent{
		EventType:  eventType,
		UserID:     outcome.UserID,
		Metadata:   metadata,
		OccurredAt: outcome.OccurredAt,
	})
}
