package contio

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCredentials = "INVALID_CREDENTIALS"
	TextCodeUserNameTooShort   = "USER_NAME_TOO_SHORT"
	TextCodeMissingToken       = "MISSING_USER_TOKEN"
	TextCodeEmptyChannelName   = "EMPTY_CHANNEL_NAME"
	TextCodeSubmissionInFlight = "SUBMISSION_IN_FLIGHT"
	TextCodeServiceRequired    = "SESSION_SERVICE_REQUIRED"
	TextCodeNotConnected       = "NOT_CONNECTED"
	TextCodeTokenUserMismatch  = "TOKEN_USER_MISMATCH"
	TextCodeInvalidToken       = "INVALID_USER_TOKEN"
)

// UnknownErrorMessage is shown when the session service fails without a message
const UnknownErrorMessage = "Unknown error"

// ErrInvalidCredentials is emitted when the form does not satisfy the submission precondition
var ErrInvalidCredentials = goerrors.New("Invalid user name or password, please try again!", goerrors.CategoryValidation).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(goerrors.CodeBadRequest)

// ErrUserNameTooShort is returned when the trimmed user name is below the minimum length
var ErrUserNameTooShort = goerrors.New("user name is too short", goerrors.CategoryValidation).
	WithTextCode(TextCodeUserNameTooShort).
	WithCode(goerrors.CodeBadRequest)

// ErrMissingToken is returned when no credential is available for a user
var ErrMissingToken = goerrors.New("user token is required", goerrors.CategoryBadInput).
	WithTextCode(TextCodeMissingToken).
	WithCode(goerrors.CodeBadRequest)

// ErrEmptyChannelName is returned when a channel name is blank after trimming
var ErrEmptyChannelName = goerrors.New("Channel name can't be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyChannelName).
	WithCode(goerrors.CodeBadRequest)

// ErrSubmissionInFlight rejects a second submission while one is pending
var ErrSubmissionInFlight = goerrors.New("a submission is already in flight", goerrors.CategoryConflict).
	WithTextCode(TextCodeSubmissionInFlight).
	WithCode(goerrors.CodeConflict)

// ErrSessionServiceRequired is returned by constructors given a nil service
var ErrSessionServiceRequired = goerrors.New("session service is required", goerrors.CategoryBadInput).
	WithTextCode(TextCodeServiceRequired).
	WithCode(goerrors.CodeBadRequest)

// ErrNotConnected is returned by session services when no user is connected
var ErrNotConnected = goerrors.New("no user is connected", goerrors.CategoryAuth).
	WithTextCode(TextCodeNotConnected)

// ErrTokenUserMismatch is returned when a token was issued for another user
var ErrTokenUserMismatch = goerrors.New("token was not issued for this user", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenUserMismatch)

// ErrInvalidToken is returned when a user token cannot be verified
var ErrInvalidToken = goerrors.New("user token is invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidToken)

// IsValidationError reports whether err is a local validation failure that
// never reached the session service.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == goerrors.CategoryValidation
	}
	return false
}

// ServiceErrorMessage returns the user facing message for err, falling back
// to UnknownErrorMessage when the service did not supply one.
func ServiceErrorMessage(err error) string {
	if err == nil {
		return UnknownErrorMessage
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		if msg := strings.TrimSpace(richErr.Message); msg != "" {
			return msg
		}
		return UnknownErrorMessage
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}

// errorTextCode extracts the text code of a structured error, if any.
func errorTextCode(err error) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode
	}
	return ""
}
