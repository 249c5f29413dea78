// Package contio provides the client-side controllers of the contio chat
// app: the authentication form, token login, channel creation and the
// profile screen. Networking, persistence and sync are delegated to a
// SessionService supplied by the caller.
//
// Authentication form:
//   - FormState is an immutable snapshot. Reduce folds local events
//     (UserNameChanged, PasswordChanged, ToggleMode, ErrorDismissed) into the
//     next snapshot and recomputes password requirements from scratch.
//   - AuthenticationController owns the current snapshot, dispatches SignIn,
//     SignUp and Authenticate to the session service and reports one Outcome
//     per submission, both through the returned Submission and the Outcomes
//     hub. The hub keeps the last outcome so late observers can still read it.
//   - A second submission while one is in flight is rejected with
//     ErrSubmissionInFlight.
//
// Credentials:
//   - The connect token is resolved through a TokenProvider. Use StaticToken
//     for a fixed credential or TokenMinter to sign per-user HS256 tokens.
//
// Activity sinks:
//   - ActivitySink receives sign in, sign up, login, channel and logout
//     events. Sinks run best-effort (errors are logged).
package contio
