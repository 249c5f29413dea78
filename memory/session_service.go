// Package memory provides an in-process contio.SessionService. It keeps the
// connected user and created channels in memory and is meant for tests,
// demos and the contio CLI.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-contio"
	goerrors "github.com/goliatone/go-errors"
)

var _ contio.SessionService = (*SessionService)(nil)

// Option customizes the session service.
type Option func(*SessionService)

// WithTokenValidator makes ConnectUser verify the token and require its
// user_id to match the connecting user.
func WithTokenValidator(validator contio.TokenValidator) Option {
	return func(s *SessionService) {
		s.validator = validator
	}
}

// WithClock injects a custom clock (useful for tests).
func WithClock(clock func() time.Time) Option {
	return func(s *SessionService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLatency delays every call, to exercise loading states.
func WithLatency(d time.Duration) Option {
	return func(s *SessionService) {
		if d > 0 {
			s.latency = d
		}
	}
}

// SessionService is a mutex guarded in-memory session backend.
type SessionService struct {
	validator contio.TokenValidator
	now       func() time.Time
	latency   time.Duration

	mu       sync.RWMutex
	current  *contio.ChatUser
	channels map[string]contio.Channel
}

// NewSessionService returns an empty service
func NewSessionService(opts ...Option) *SessionService {
	s := &SessionService{
		now:      time.Now,
		channels: map[string]contio.Channel{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *SessionService) ConnectUser(ctx context.Context, user contio.ChatUser, token string) (*contio.ConnectedSession, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	if strings.TrimSpace(user.ID) == "" {
		return nil, goerrors.New("user id is required", goerrors.CategoryBadInput)
	}

	if strings.TrimSpace(token) == "" {
		return nil, contio.ErrMissingToken
	}

	if s.validator != nil {
		claims, err := s.validator.Validate(token)
		if err != nil {
			return nil, err
		}
		if claims.UserID != user.ID {
			return nil, contio.ErrTokenUserMismatch
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.ID != user.ID {
		return nil, goerrors.New("another user is already connected, disconnect first", goerrors.CategoryConflict)
	}

	connected := user
	s.current = &connected

	return &contio.ConnectedSession{
		User:        connected,
		ConnectedAt: s.now(),
	}, nil
}

func (s *SessionService) CreateChannel(ctx context.Context, req contio.CreateChannelRequest) (*contio.Channel, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	if req.Type == "" || req.ID == "" {
		return nil, goerrors.New("channel type and id are required", goerrors.CategoryBadInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, contio.ErrNotConnected
	}

	channel := contio.Channel{
		Type:      req.Type,
		ID:        req.ID,
		MemberIDs: append([]string(nil), req.MemberIDs...),
		ExtraData: cloneMap(req.ExtraData),
		CreatedBy: s.current.ID,
		CreatedAt: s.now(),
	}

	if existing, ok := s.channels[channel.CID()]; ok {
		out := existing
		return &out, nil
	}

	s.channels[channel.CID()] = channel
	out := channel
	return &out, nil
}

func (s *SessionService) CurrentUser() *contio.ChatUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

func (s *SessionService) Disconnect(ctx context.Context) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	return nil
}

// Channels returns the created channels ordered by cid
func (s *SessionService) Channels() []contio.Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]contio.Channel, 0, len(s.channels))
	for _, ch := range s.channels {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CID() < out[j].CID()
	})
	return out
}

func (s *SessionService) wait(ctx context.Context) error {
	if s.latency == 0 {
		select {
		case <-ctx.Done():
			return goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled")
		default:
			return nil
		}
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled")
	case <-timer.C:
		return nil
	}
}

func cloneMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
