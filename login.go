package contio

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// LoadingState reports whether a login request is pending
type LoadingState string

const (
	LoadingStateLoading    LoadingState = "loading"
	LoadingStateNotLoading LoadingState = "not_loading"
)

// LoginEventKind tags the result of a token login
type LoginEventKind string

const (
	LoginErrorInputTooShort LoginEventKind = "input_too_short"
	LoginFailed             LoginEventKind = "login_failed"
	LoginSucceeded          LoginEventKind = "login_succeeded"
)

// LoginEvent is emitted once per Login call
type LoginEvent struct {
	Kind       LoginEventKind
	Reason     string
	UserID     string
	OccurredAt time.Time
}

// LoginOption customizes the login controller.
type LoginOption func(*LoginController)

// WithLoginLogger overrides the logger.
func WithLoginLogger(logger Logger) LoginOption {
	return func(c *LoginController) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLoginActivitySink sets the ActivitySink for login events.
func WithLoginActivitySink(sink ActivitySink) LoginOption {
	return func(c *LoginController) {
		c.activity.sink = normalizeActivitySink(sink)
	}
}

// WithLoginClock injects a custom clock (useful for tests).
func WithLoginClock(clock func() time.Time) LoginOption {
	return func(c *LoginController) {
		if clock != nil {
			c.now = clock
			c.activity.now = clock
		}
	}
}

// WithMinUserNameLength sets the length a trimmed user name must exceed.
func WithMinUserNameLength(n int) LoginOption {
	return func(c *LoginController) {
		if n > 0 {
			c.minLength = n
		}
	}
}

// LoginController connects a registered user with an explicit token.
type LoginController struct {
	service   SessionService
	logger    Logger
	activity  activityRecorder
	now       func() time.Time
	minLength int

	mu       sync.Mutex
	inFlight bool
	seq      uint64

	loading *Hub[LoadingState]
	events  *Hub[LoginEvent]
}

// NewLoginController returns a login controller bound to service
func NewLoginController(service SessionService, opts ...LoginOption) (*LoginController, error) {
	if service == nil {
		return nil, ErrSessionServiceRequired
	}

	c := &LoginController{
		service:   service,
		logger:    defLogger{},
		activity:  activityRecorder{sink: noopActivitySink{}},
		now:       time.Now,
		minLength: DefaultMinUserNameLength,
		loading:   NewHub[LoadingState](),
		events:    NewHub[LoginEvent](),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	c.activity.logger = c.logger

	return c, nil
}

// Loading publishes loading state changes and keeps the current one
func (c *LoginController) Loading() *Hub[LoadingState] {
	return c.loading
}

// Events publishes login results. The last value belongs to the most
// recent Login call.
func (c *LoginController) Events() *Hub[LoginEvent] {
	return c.events
}

// Login trims userName and connects it with token. Invalid input resolves
// the returned future immediately with LoginErrorInputTooShort.
func (c *LoginController) Login(ctx context.Context, userName, token string) (*Future[LoginEvent], error) {
	if ctx == nil {
		ctx = context.Background()
	}

	userName = strings.TrimSpace(userName)
	token = strings.TrimSpace(token)
	future := newFuture[LoginEvent]()

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	input := LoginInput{UserName: userName, Token: token, MinLength: c.minLength}
	if err := input.Validate(); err != nil {
		reason := ErrUserNameTooShort
		if token == "" && ValidateUserName(userName, c.minLength) == nil {
			reason = ErrMissingToken
		}
		c.logger.Debug("login rejected for %q: %v", userName, err)
		c.finish(ctx, future, seq, LoginEvent{
			Kind:   LoginErrorInputTooShort,
			Reason: reason.Message,
			UserID: userName,
		}, reason)
		return future, nil
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	c.inFlight = true
	c.mu.Unlock()

	c.loading.PublishAt(seq, LoadingStateLoading)

	user := ChatUser{ID: userName, Name: userName}
	go c.connect(context.WithoutCancel(ctx), future, seq, user, token)

	return future, nil
}

func (c *LoginController) connect(ctx context.Context, future *Future[LoginEvent], seq uint64, user ChatUser, token string) {
	err := c.callService(ctx, user, token)

	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
	c.loading.PublishAt(seq, LoadingStateNotLoading)

	event := LoginEvent{Kind: LoginSucceeded, UserID: user.ID}
	if err != nil {
		c.logger.Error("login failed for %q: %v", user.ID, err)
		event.Kind = LoginFailed
		event.Reason = ServiceErrorMessage(err)
	}

	c.finish(ctx, future, seq, event, err)
}

func (c *LoginController) callService(ctx context.Context, user ChatUser, token string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = goerrors.New(fmt.Sprintf("session service panic: %v", r), goerrors.CategoryInternal)
		}
	}()
	_, err = c.service.ConnectUser(ctx, user, token)
	return err
}

func (c *LoginController) finish(ctx context.Context, future *Future[LoginEvent], seq uint64, event LoginEvent, err error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = c.now()
	}

	eventType := ActivityEventLoginSuccess
	metadata := map[string]any{}
	if err != nil {
		eventType = ActivityEventLoginFailure
		metadata["error"] = event.Reason
		metadata["kind"] = string(event.Kind)
	}

	c.activity.record(ctx, ActivityEvent{
		EventType:  eventType,
		UserID:     event.UserID,
		Metadata:   metadata,
		OccurredAt: event.OccurredAt,
	})

	c.events.PublishAt(seq, event)
	future.resolve(event)
}
