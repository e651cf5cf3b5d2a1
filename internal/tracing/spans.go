package tracing

// Span names.
const (
	SpanRegister = "registration.register"
)

// Span attribute keys. The password is never recorded.
const (
	AttrAttempt      = "registration.attempt"
	AttrUsername     = "user.name"
	AttrEmail        = "user.email"
	AttrOutcome      = "registration.outcome"
	AttrErrorMessage = "error.message"
)

// Outcome values for AttrOutcome.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)
