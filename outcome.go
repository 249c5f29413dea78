package contio

import "time"

// OutcomeKind tags the result of a submission
type OutcomeKind string

const (
	OutcomeSignInSucceeded OutcomeKind = "sign_in_succeeded"
	OutcomeSignInFailed    OutcomeKind = "sign_in_failed"
	OutcomeSignUpSucceeded OutcomeKind = "sign_up_succeeded"
	OutcomeSignUpFailed    OutcomeKind = "sign_up_failed"
)

// Outcome is emitted exactly once per submitted request
type Outcome struct {
	Kind       OutcomeKind
	Reason     string
	UserID     string
	OccurredAt time.Time
}

// Succeeded reports whether the outcome is a success variant
func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeSignInSucceeded || o.Kind == OutcomeSignUpSucceeded
}

// Mode returns the authentication mode the outcome belongs to
func (o Outcome) Mode() AuthenticationMode {
	switch o.Kind {
	case OutcomeSignUpSucceeded, OutcomeSignUpFailed:
		return ModeSignUp
	default:
		return ModeSignIn
	}
}

func successKind(mode AuthenticationMode) OutcomeKind {
	if mode.normalize() == ModeSignUp {
		return OutcomeSignUpSucceeded
	}
	return OutcomeSignInSucceeded
}

func failureKind(mode AuthenticationMode) OutcomeKind {
	if mode.normalize() == ModeSignUp {
		return OutcomeSignUpFailed
	}
	return OutcomeSignInFailed
}

// Submission is the future for one submitted request.
type Submission struct {
	*Future[Outcome]
	mode AuthenticationMode
	seq  uint64
}

func newSubmission(mode AuthenticationMode, seq uint64) *Submission {
	return &Submission{
		Future: newFuture[Outcome](),
		mode:   mode.normalize(),
		seq:    seq,
	}
}

func (s *Submission) complete(o Outcome) {
	s.resolve(o)
}

// Mode returns the mode the submission was sent with
func (s *Submission) Mode() AuthenticationMode {
	return s.mode
}

// Outcome returns the outcome and whether the submission completed
func (s *Submission) Outcome() (Outcome, bool) {
	return s.Result()
}
