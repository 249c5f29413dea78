package contio_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-contio"
	"github.com/stretchr/testify/mock"
)

// MockSessionService implements contio.SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) ConnectUser(ctx context.Context, user contio.ChatUser, token string) (*contio.ConnectedSession, error) {
	args := m.Called(ctx, user, token)
	session, _ := args.Get(0).(*contio.ConnectedSession)
	return session, args.Error(1)
}

func (m *MockSessionService) CreateChannel(ctx context.Context, req contio.CreateChannelRequest) (*contio.Channel, error) {
	args := m.Called(ctx, req)
	channel, _ := args.Get(0).(*contio.Channel)
	return channel, args.Error(1)
}

func (m *MockSessionService) CurrentUser() *contio.ChatUser {
	args := m.Called()
	user, _ := args.Get(0).(*contio.ChatUser)
	return user
}

func (m *MockSessionService) Disconnect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTokenProvider implements contio.TokenProvider
type MockTokenProvider struct {
	mock.Mock
}

func (m *MockTokenProvider) Token(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// blockingService holds ConnectUser until release is closed
type blockingService struct {
	MockSessionService
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingService() *blockingService {
	return &blockingService{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (b *blockingService) ConnectUser(ctx context.Context, user contio.ChatUser, token string) (*contio.ConnectedSession, error) {
	b.once.Do(func() { close(b.entered) })
	<-b.release
	return &contio.ConnectedSession{User: user}, nil
}

// recordingSink collects activity events
type recordingSink struct {
	mu     sync.Mutex
	events []contio.ActivityEvent
}

func (s *recordingSink) Record(_ context.Context, event contio.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) Events() []contio.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]contio.ActivityEvent(nil), s.events...)
}

// captureLogger records formatted messages per level
type captureLogger struct {
	mu       sync.Mutex
	lines    []string
	messages []string
}

func (l *captureLogger) add(level, format string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+format)
	l.messages = append(l.messages, level+" "+fmt.Sprintf(format, args...))
}

func (l *captureLogger) Debug(format string, args ...any) { l.add("DBG", format, args) }
func (l *captureLogger) Info(format string, args ...any)  { l.add("INF", format, args) }
func (l *captureLogger) Warn(format string, args ...any)  { l.add("WRN", format, args) }
func (l *captureLogger) Error(format string, args ...any) { l.add("ERR", format, args) }

// Messages returns the formatted lines
func (l *captureLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

func (l *captureLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}
