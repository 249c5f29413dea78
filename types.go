package contio

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// ChatUser is the identity handed to the session service on connect
type ChatUser struct {
	ID    string
	Name  string
	Image string
	Extra map[string]any
}

// ConnectedSession is returned by a successful ConnectUser call
type ConnectedSession struct {
	User        ChatUser
	ConnectedAt time.Time
}

// Channel is a chat channel as reported by the session service
type Channel struct {
	Type      string
	ID        string
	MemberIDs []string
	ExtraData map[string]any
	CreatedBy string
	CreatedAt time.Time
}

// CID returns the "type:id" channel identifier
func (c Channel) CID() string {
	return c.Type + ":" + c.ID
}

// CreateChannelRequest holds the attributes of a new channel
type CreateChannelRequest struct {
	Type      string
	ID        string
	MemberIDs []string
	ExtraData map[string]any
}

// SessionService is the external chat backend. Implementations own the
// network, persistence and sync concerns.
type SessionService interface {
	ConnectUser(ctx context.Context, user ChatUser, token string) (*ConnectedSession, error)
	CreateChannel(ctx context.Context, req CreateChannelRequest) (*Channel, error)
	CurrentUser() *ChatUser
	Disconnect(ctx context.Context) error
}

// TokenProvider resolves the credential used to connect a user
type TokenProvider interface {
	Token(ctx context.Context, userID string) (string, error)
}

// TokenProviderFunc adapts a function to the TokenProvider interface.
type TokenProviderFunc func(ctx context.Context, userID string) (string, error)

// Token implements TokenProvider.
func (f TokenProviderFunc) Token(ctx context.Context, userID string) (string, error) {
	if f == nil {
		return "", ErrMissingToken
	}
	return f(ctx, userID)
}

// StaticToken returns a TokenProvider that hands out the same credential
// for every user.
func StaticToken(token string) TokenProvider {
	return TokenProviderFunc(func(context.Context, string) (string, error) {
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	})
}

// Config holds contio options
type Config interface {
	GetUserToken() string
	GetTokenSecret() string
	GetDefaultChannelType() string
	GetChannelImage() string
	GetMinUserNameLength() int
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] CONTIO "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] CONTIO "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] CONTIO "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] CONTIO "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

func normalizeLogger(l Logger) Logger {
	if l == nil {
		return defLogger{}
	}
	return l
}
