// Package activitymap turns contio activity events into flat records for
// audit logs and analytics pipelines.
package activitymap

import (
	"strings"
	"time"

	"github.com/goliatone/go-contio"
)

const (
	// MetadataKeyActorType stores the actor type derived from contio.ActorRef.Type.
	MetadataKeyActorType = "actor_type"
	// MetadataKeyChannelType and MetadataKeyChannelID split the cid of channel events.
	MetadataKeyChannelType = "channel_type"
	MetadataKeyChannelID   = "channel_id"
)

// Streams group records by the part of the app that produced them.
const (
	StreamAuth     = "auth"
	StreamChannels = "channels"
	StreamSession  = "session"
	StreamOther    = "contio"
)

// Result values of a record.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

const defaultActorID = "system"

// Record is the normalized shape of one activity event.
type Record struct {
	Stream     string         `json:"stream"`
	Verb       string         `json:"verb"`
	Result     string         `json:"result"`
	ActorID    string         `json:"actor_id"`
	ObjectType string         `json:"object_type"`
	ObjectID   string         `json:"object_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Option customizes normalization.
type Option func(*options)

type options struct {
	actorFallback string
}

// WithActorFallback sets the actor id used when neither actor nor user is known.
func WithActorFallback(actorID string) Option {
	return func(o *options) {
		if id := strings.TrimSpace(actorID); id != "" {
			o.actorFallback = id
		}
	}
}

type family struct {
	stream     string
	objectType string
	object     func(contio.ActivityEvent) string
}

var families = map[contio.ActivityEventType]family{
	contio.ActivityEventSignInSuccess:       authFamily,
	contio.ActivityEventSignInFailure:       authFamily,
	contio.ActivityEventSignUpSuccess:       authFamily,
	contio.ActivityEventSignUpFailure:       authFamily,
	contio.ActivityEventLoginSuccess:        authFamily,
	contio.ActivityEventLoginFailure:        authFamily,
	contio.ActivityEventChannelCreated:      channelFamily,
	contio.ActivityEventChannelCreateFailed: channelFamily,
	contio.ActivityEventLogout:              {stream: StreamSession, objectType: "session", object: userObject},
}

var (
	authFamily    = family{stream: StreamAuth, objectType: "user", object: userObject}
	channelFamily = family{stream: StreamChannels, objectType: "channel", object: channelObject}
)

func userObject(e contio.ActivityEvent) string    { return strings.TrimSpace(e.UserID) }
func channelObject(e contio.ActivityEvent) string { return strings.TrimSpace(e.ChannelID) }

// Normalize maps event to a Record. Auth events are about the user, channel
// events about the channel cid and logout about the user's session.
func Normalize(event contio.ActivityEvent, opts ...Option) Record {
	o := options{actorFallback: defaultActorID}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	fam, ok := families[event.EventType]
	if !ok {
		fam = family{stream: StreamOther, objectType: "event", object: userObject}
	}

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	return Record{
		Stream:     fam.stream,
		Verb:       string(event.EventType),
		Result:     result(event.EventType),
		ActorID:    firstNonEmpty(strings.TrimSpace(event.Actor.ID), strings.TrimSpace(event.UserID), o.actorFallback),
		ObjectType: fam.objectType,
		ObjectID:   fam.object(event),
		Metadata:   metadata(event, fam),
		OccurredAt: occurredAt,
	}
}

// NormalizeAll maps events in order.
func NormalizeAll(events []contio.ActivityEvent, opts ...Option) []Record {
	out := make([]Record, 0, len(events))
	for _, event := range events {
		out = append(out, Normalize(event, opts...))
	}
	return out
}

func result(t contio.ActivityEventType) string {
	if strings.HasSuffix(string(t), ".failure") {
		return ResultFailure
	}
	return ResultSuccess
}

func metadata(event contio.ActivityEvent, fam family) map[string]any {
	out := make(map[string]any, len(event.Metadata)+3)
	for k, v := range event.Metadata {
		out[k] = v
	}

	if actorType := strings.TrimSpace(event.Actor.Type); actorType != "" {
		if _, exists := out[MetadataKeyActorType]; !exists {
			out[MetadataKeyActorType] = actorType
		}
	}

	if fam.stream == StreamChannels {
		if channelType, id, found := strings.Cut(strings.TrimSpace(event.ChannelID), ":"); found {
			out[MetadataKeyChannelType] = channelType
			out[MetadataKeyChannelID] = id
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
