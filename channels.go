package contio

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// ChannelIDGenerator produces the id of a new channel from its trimmed name
type ChannelIDGenerator func(name string) (string, error)

// RandomChannelIDs generates a random UUID per channel
func RandomChannelIDs(string) (string, error) {
	return uuid.NewString(), nil
}

// HashedChannelIDs derives a stable UUID from the channel name, so creating
// the same channel twice targets the same id.
func HashedChannelIDs(name string) (string, error) {
	id, err := hashid.NewUUID(strings.ToLower(name))
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to derive channel id")
	}
	return id.String(), nil
}

// ChannelEventKind tags the result of a channel operation
type ChannelEventKind string

const (
	ChannelCreated      ChannelEventKind = "channel_created"
	ChannelCreateFailed ChannelEventKind = "channel_create_failed"
)

// ChannelEvent is emitted once per CreateChannel call
type ChannelEvent struct {
	Kind       ChannelEventKind
	Reason     string
	Channel    *Channel
	OccurredAt time.Time
}

// ChannelOption customizes the channel controller.
type ChannelOption func(*ChannelController)

// WithChannelLogger overrides the logger.
func WithChannelLogger(logger Logger) ChannelOption {
	return func(c *ChannelController) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithChannelActivitySink sets the ActivitySink for channel events.
func WithChannelActivitySink(sink ActivitySink) ChannelOption {
	return func(c *ChannelController) {
		c.activity.sink = normalizeActivitySink(sink)
	}
}

// WithChannelIDGenerator overrides how channel ids are produced.
func WithChannelIDGenerator(gen ChannelIDGenerator) ChannelOption {
	return func(c *ChannelController) {
		if gen != nil {
			c.ids = gen
		}
	}
}

// WithChannelDefaults sets the default channel type and image.
func WithChannelDefaults(channelType, image string) ChannelOption {
	return func(c *ChannelController) {
		if t := strings.TrimSpace(channelType); t != "" {
			c.channelType = t
		}
		if image != "" {
			c.image = image
		}
	}
}

// WithChannelClock injects a custom clock (useful for tests).
func WithChannelClock(clock func() time.Time) ChannelOption {
	return func(c *ChannelController) {
		if clock != nil {
			c.now = clock
			c.activity.now = clock
		}
	}
}

// ChannelController creates channels and ends the session.
type ChannelController struct {
	service     SessionService
	logger      Logger
	activity    activityRecorder
	now         func() time.Time
	ids         ChannelIDGenerator
	channelType string
	image       string

	events *Hub[ChannelEvent]
}

// NewChannelController returns a channel controller bound to service
func NewChannelController(service SessionService, opts ...ChannelOption) (*ChannelController, error) {
	if service == nil {
		return nil, ErrSessionServiceRequired
	}

	c := &ChannelController{
		service:     service,
		logger:      defLogger{},
		activity:    activityRecorder{sink: noopActivitySink{}},
		now:         time.Now,
		ids:         RandomChannelIDs,
		channelType: DefaultChannelType,
		image:       DefaultChannelImage,
		events:      NewHub[ChannelEvent](),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	c.activity.logger = c.logger

	return c, nil
}

// Events publishes channel results
func (c *ChannelController) Events() *Hub[ChannelEvent] {
	return c.events
}

// CreateChannel creates a channel named name. A blank name resolves the
// future with ChannelCreateFailed without contacting the service; an empty
// channelType uses the configured default.
func (c *ChannelController) CreateChannel(ctx context.Context, name, channelType string) *Future[ChannelEvent] {
	if ctx == nil {
		ctx = context.Background()
	}

	future := newFuture[ChannelEvent]()

	trimmed, err := ValidateChannelName(name)
	if err != nil {
		c.finish(ctx, future, ChannelEvent{
			Kind:   ChannelCreateFailed,
			Reason: ServiceErrorMessage(err),
		}, "", err)
		return future
	}

	channelType = strings.TrimSpace(channelType)
	if channelType == "" {
		channelType = c.channelType
	}

	id, err := c.ids(trimmed)
	if err != nil {
		c.finish(ctx, future, ChannelEvent{
			Kind:   ChannelCreateFailed,
			Reason: ServiceErrorMessage(err),
		}, "", err)
		return future
	}

	req := CreateChannelRequest{
		Type:      channelType,
		ID:        id,
		MemberIDs: []string{},
		ExtraData: map[string]any{
			"name":  trimmed,
			"image": c.image,
		},
	}

	go c.create(context.WithoutCancel(ctx), future, req)

	return future
}

func (c *ChannelController) create(ctx context.Context, future *Future[ChannelEvent], req CreateChannelRequest) {
	channel, err := c.callService(ctx, req)

	event := ChannelEvent{Kind: ChannelCreated, Channel: channel}
	if err != nil {
		c.logger.Error("create channel %s:%s failed: %v", req.Type, req.ID, err)
		event = ChannelEvent{Kind: ChannelCreateFailed, Reason: ServiceErrorMessage(err)}
	}

	c.finish(ctx, future, event, req.Type+":"+req.ID, err)
}

func (c *ChannelController) callService(ctx context.Context, req CreateChannelRequest) (channel *Channel, err error) {
	defer func() {
		if r := recover(); r != nil {
			channel = nil
			err = goerrors.New(fmt.Sprintf("session service panic: %v", r), goerrors.CategoryInternal)
		}
	}()
	return c.service.CreateChannel(ctx, req)
}

// LogOut disconnects the current user
func (c *ChannelController) LogOut(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var userID string
	if user := c.service.CurrentUser(); user != nil {
		userID = user.ID
	}

	if err := c.service.Disconnect(ctx); err != nil {
		c.logger.Error("logout failed for %q: %v", userID, err)
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to disconnect user")
	}

	c.activity.record(ctx, ActivityEvent{
		EventType: ActivityEventLogout,
		UserID:    userID,
	})

	return nil
}

func (c *ChannelController) finish(ctx context.Context, future *Future[ChannelEvent], event ChannelEvent, cid string, err error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = c.now()
	}

	var userID string
	if user := c.service.CurrentUser(); user != nil {
		userID = user.ID
	}

	eventType := ActivityEventChannelCreated
	metadata := map[string]any{}
	if event.Channel != nil {
		cid = event.Channel.CID()
		metadata["name"] = event.Channel.ExtraData["name"]
	}
	if err != nil {
		eventType = ActivityEventChannelCreateFailed
		metadata["error"] = event.Reason
	}

	c.activity.record(ctx, ActivityEvent{
		EventType:  eventType,
		UserID:     userID,
		ChannelID:  cid,
		Metadata:   metadata,
		OccurredAt: event.OccurredAt,
	})

	c.events.Publish(event)
	future.resolve(event)
}
