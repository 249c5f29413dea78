package contio

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// AuthenticationMode selects whether the form signs a user in or up
type AuthenticationMode string

const (
	ModeSignIn AuthenticationMode = "sign_in"
	ModeSignUp AuthenticationMode = "sign_up"
)

// Toggle returns the opposite mode. Unknown modes toggle to sign up.
func (m AuthenticationMode) Toggle() AuthenticationMode {
	if m.normalize() == ModeSignIn {
		return ModeSignUp
	}
	return ModeSignIn
}

func (m AuthenticationMode) normalize() AuthenticationMode {
	if m == "" {
		return ModeSignIn
	}
	return m
}

func (m AuthenticationMode) String() string {
	return string(m.normalize())
}

// MinPasswordLength is the length required by RequirementMinLength
const MinPasswordLength = 8

// PasswordRequirement is one criterion of the sign up password policy
type PasswordRequirement uint8

const (
	RequirementMinLength PasswordRequirement = 1 << iota
	RequirementUppercase
	RequirementDigit
)

var requirementLabels = map[PasswordRequirement]string{
	RequirementMinLength: "at least 8 characters",
	RequirementUppercase: "one capital letter",
	RequirementDigit:     "one digit",
}

func (r PasswordRequirement) String() string {
	if label, ok := requirementLabels[r]; ok {
		return label
	}
	return "unknown"
}

// AllPasswordRequirements lists every requirement in display order
func AllPasswordRequirements() []PasswordRequirement {
	return []PasswordRequirement{
		RequirementMinLength,
		RequirementUppercase,
		RequirementDigit,
	}
}

// PasswordRequirements is an immutable set of satisfied requirements.
type PasswordRequirements struct {
	bits PasswordRequirement
}

// NewPasswordRequirements builds a set from the given requirements
func NewPasswordRequirements(reqs ...PasswordRequirement) PasswordRequirements {
	var set PasswordRequirements
	for _, r := range reqs {
		set.bits |= r
	}
	return set
}

// Has reports whether r is in the set
func (s PasswordRequirements) Has(r PasswordRequirement) bool {
	return r != 0 && s.bits&r == r
}

// ContainsAll reports whether every given requirement is in the set
func (s PasswordRequirements) ContainsAll(reqs ...PasswordRequirement) bool {
	for _, r := range reqs {
		if !s.Has(r) {
			return false
		}
	}
	return true
}

// Complete reports whether the whole policy is satisfied
func (s PasswordRequirements) Complete() bool {
	return s.ContainsAll(AllPasswordRequirements()...)
}

// Len returns the number of requirements in the set
func (s PasswordRequirements) Len() int {
	n := 0
	for _, r := range AllPasswordRequirements() {
		if s.Has(r) {
			n++
		}
	}
	return n
}

// List returns the requirements in display order
func (s PasswordRequirements) List() []PasswordRequirement {
	out := make([]PasswordRequirement, 0, 3)
	for _, r := range AllPasswordRequirements() {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// Missing returns the requirements not in the set, in display order
func (s PasswordRequirements) Missing() []PasswordRequirement {
	out := make([]PasswordRequirement, 0, 3)
	for _, r := range AllPasswordRequirements() {
		if !s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s PasswordRequirements) String() string {
	labels := make([]string, 0, 3)
	for _, r := range s.List() {
		labels = append(labels, r.String())
	}
	return "{" + strings.Join(labels, ", ") + "}"
}

// EvaluatePassword computes the satisfied requirements of password from
// scratch. Each check is independent of the others.
func EvaluatePassword(password string) PasswordRequirements {
	var set PasswordRequirements

	if utf8.RuneCountInString(password) >= MinPasswordLength {
		set.bits |= RequirementMinLength
	}

	for _, r := range password {
		if unicode.IsUpper(r) {
			set.bits |= RequirementUppercase
		}
		if unicode.IsDigit(r) {
			set.bits |= RequirementDigit
		}
	}

	return set
}

// FormState is a snapshot of the authentication form. The zero value is the
// initial state: sign in mode, empty fields, nothing loading.
type FormState struct {
	Mode         AuthenticationMode
	UserName     string
	Password     string
	Requirements PasswordRequirements
	IsLoading    bool
	Error        string
}

// NewFormState returns the initial form state
func NewFormState() FormState {
	return FormState{Mode: ModeSignIn}
}

// IsFormValid gates the submit control. Sign in skips the password policy,
// only sign up enforces it.
func (s FormState) IsFormValid() bool {
	if s.UserName == "" || s.Password == "" {
		return false
	}
	return s.Mode.normalize() == ModeSignIn || s.Requirements.Complete()
}

// Satisfied is the submission precondition. It requires a non-empty user
// name, taken as typed, and the full password policy regardless of mode.
func (s FormState) Satisfied() bool {
	return s.UserName != "" && s.Requirements.Complete()
}

// ChatUser returns the session identity derived from the user name
func (s FormState) ChatUser() ChatUser {
	return ChatUser{
		ID:   s.UserName,
		Name: s.UserName,
	}
}
