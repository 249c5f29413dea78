package contio

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// LoginInput is the payload of a token login
type LoginInput struct {
	UserName  string `json:"user_name"`
	Token     string `json:"token"`
	MinLength int    `json:"-"`
}

// Validate requires a user name longer than MinLength runes and a token.
func (r LoginInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserName, validation.Required, validation.RuneLength(r.MinLength+1, 0)),
		validation.Field(&r.Token, validation.Required),
	)
}

// ValidateUserName checks that the trimmed name is longer than minLength runes.
func ValidateUserName(name string, minLength int) error {
	if err := validation.Validate(strings.TrimSpace(name),
		validation.Required,
		validation.RuneLength(minLength+1, 0),
	); err != nil {
		return ErrUserNameTooShort
	}
	return nil
}

// ValidateChannelName trims name and rejects blank values.
func ValidateChannelName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if err := validation.Validate(trimmed, validation.Required); err != nil {
		return "", ErrEmptyChannelName
	}
	return trimmed, nil
}

// PasswordPolicyRule is an ozzo rule enforcing the sign up password policy.
var PasswordPolicyRule = validation.By(func(value interface{}) error {
	password, ok := value.(string)
	if !ok {
		return goerrors.New("password must be a string", goerrors.CategoryBadInput)
	}
	return ValidatePassword(password)
})

// ValidatePassword returns a validation error naming every missing requirement.
func ValidatePassword(password string) error {
	missing := EvaluatePassword(password).Missing()
	if len(missing) == 0 {
		return nil
	}

	labels := make([]string, 0, len(missing))
	for _, r := range missing {
		labels = append(labels, r.String())
	}

	return goerrors.New("password must contain "+strings.Join(labels, ", "), goerrors.CategoryValidation).
		WithTextCode("WEAK_PASSWORD").
		WithMetadata(map[string]any{"missing": labels})
}
