package contio

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenValidator verifies user tokens and extracts their claims.
type TokenValidator interface {
	Validate(token string) (*UserTokenClaims, error)
}

// TokenValidatorFunc adapts a function into a TokenValidator.
type TokenValidatorFunc func(token string) (*UserTokenClaims, error)

// Validate satisfies the TokenValidator interface.
func (f TokenValidatorFunc) Validate(token string) (*UserTokenClaims, error) {
	if f == nil {
		return nil, ErrInvalidToken
	}
	return f(token)
}

// HMACTokenValidator checks HS256 user tokens signed with a shared secret.
type HMACTokenValidator struct {
	secret []byte
	parser *jwt.Parser
}

var _ TokenValidator = (*HMACTokenValidator)(nil)

// NewHMACTokenValidator returns a validator for tokens signed with secret
func NewHMACTokenValidator(secret []byte) *HMACTokenValidator {
	return &HMACTokenValidator{
		secret: secret,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

// Validate satisfies the TokenValidator interface.
func (v *HMACTokenValidator) Validate(raw string) (*UserTokenClaims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMissingToken
	}

	claims := &UserTokenClaims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryAuth, "user token is invalid").
			WithTextCode(TextCodeInvalidToken)
	}

	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// UnverifiedUserID reads the user_id claim without checking the signature.
// Only use it to display a token, never to trust one.
func UnverifiedUserID(raw string) (string, error) {
	claims := &UserTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(raw), claims); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to decode user token").
			WithTextCode(TextCodeInvalidToken)
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
