package contio

import (
	"context"
	"time"
)

// ActorRef identifies who/what triggered an action.
type ActorRef struct {
	ID   string
	Type string
}

// ActivityEventType enumerates supported activity categories.
type ActivityEventType string

const (
	ActivityEventSignInSuccess       ActivityEventType = "auth.signin.success"
	ActivityEventSignInFailure       ActivityEventType = "auth.signin.failure"
	ActivityEventSignUpSuccess       ActivityEventType = "auth.signup.success"
	ActivityEventSignUpFailure       ActivityEventType = "auth.signup.failure"
	ActivityEventLoginSuccess        ActivityEventType = "auth.login.success"
	ActivityEventLoginFailure        ActivityEventType = "auth.login.failure"
	ActivityEventChannelCreated      ActivityEventType = "channel.created"
	ActivityEventChannelCreateFailed ActivityEventType = "channel.create.failure"
	ActivityEventLogout              ActivityEventType = "session.logout"
)

// ActivityEvent captures audit-friendly information about an action.
type ActivityEvent struct {
	EventType  ActivityEventType
	Actor      ActorRef
	UserID     string
	ChannelID  string
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink consumes activity events for auditing/telemetry purposes.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}

// activityRecorder is shared by the controllers. Sinks run best effort,
// failures are logged and never surface to the caller.
type activityRecorder struct {
	sink   ActivitySink
	logger Logger
	now    func() time.Time
}

func (r activityRecorder) record(ctx context.Context, event ActivityEvent) {
	if event.Actor == (ActorRef{}) {
		if actor, ok := ActorFromContext(ctx); ok {
			event.Actor = actor
		} else if event.UserID != "" {
			event.Actor = ActorRef{ID: event.UserID, Type: "user"}
		} else {
			event.Actor = ActorRef{Type: "unknown"}
		}
	}

	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = r.clock()()
	}

	sink := normalizeActivitySink(r.sink)
	if err := sink.Record(ctx, event); err != nil {
		normalizeLogger(r.logger).Warn("activity sink record error: %v", err)
	}
}

func (r activityRecorder) clock() func() time.Time {
	if r.now == nil {
		return time.Now
	}
	return r.now
}
