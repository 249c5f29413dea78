package contio

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// UserTokenClaims is the payload of a chat user token. The session service
// only reads user_id, the registered claims are optional.
type UserTokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// UserTokenOptions controls how MintUserToken issues tokens.
type UserTokenOptions struct {
	// TTL sets an expiration. Zero issues a token without exp, like the
	// development tokens chat backends hand out.
	TTL time.Duration
	// IssuedAt overrides the issuance time. Zero uses time.Now().
	IssuedAt time.Time
	// Issuer sets the optional iss claim.
	Issuer string
}

// MintUserToken signs an HS256 user token for userID with secret.
func MintUserToken(secret []byte, userID string, opts UserTokenOptions) (string, time.Time, error) {
	if len(secret) == 0 {
		return "", time.Time{}, goerrors.New("token secret is required", goerrors.CategoryBadInput)
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", time.Time{}, goerrors.New("user id is required", goerrors.CategoryBadInput)
	}

	if opts.TTL < 0 {
		return "", time.Time{}, goerrors.New("token TTL must be non-negative", goerrors.CategoryBadInput)
	}

	issuedAt := opts.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	claims := &UserTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Issuer:   opts.Issuer,
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
		UserID: userID,
	}

	var expiresAt time.Time
	if opts.TTL > 0 {
		expiresAt = issuedAt.Add(opts.TTL)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign user token")
	}

	return signed, expiresAt, nil
}

// TokenMinter is a TokenProvider that signs a fresh token per user.
type TokenMinter struct {
	secret []byte
	opts   UserTokenOptions
	now    func() time.Time
}

var _ TokenProvider = (*TokenMinter)(nil)

// NewTokenMinter returns a TokenMinter signing with secret
func NewTokenMinter(secret []byte) *TokenMinter {
	return &TokenMinter{
		secret: secret,
		now:    time.Now,
	}
}

// WithTTL sets the expiration of minted tokens
func (m *TokenMinter) WithTTL(ttl time.Duration) *TokenMinter {
	m.opts.TTL = ttl
	return m
}

// WithIssuer sets the issuer of minted tokens
func (m *TokenMinter) WithIssuer(issuer string) *TokenMinter {
	m.opts.Issuer = issuer
	return m
}

// WithClock injects a custom clock (useful for tests).
func (m *TokenMinter) WithClock(clock func() time.Time) *TokenMinter {
	if clock != nil {
		m.now = clock
	}
	return m
}

// Token implements TokenProvider.
func (m *TokenMinter) Token(ctx context.Context, userID string) (string, error) {
	select {
	case <-ctx.Done():
		return "", goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled while minting user token")
	default:
	}

	opts := m.opts
	opts.IssuedAt = m.now()

	token, _, err := MintUserToken(m.secret, userID, opts)
	return token, err
}
