package tracing

import "context"

type contextKey string

const attemptKey contextKey = "registration_attempt"

// ContextWithAttempt records which submission attempt a call belongs to so
// the registrar middleware can tag its span.
func ContextWithAttempt(ctx context.Context, attempt int) context.Context {
	if attempt <= 0 {
		return ctx
	}
	return context.WithValue(ctx, attemptKey, attempt)
}

// AttemptFromContext returns the attempt set by ContextWithAttempt, or 0.
func AttemptFromContext(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(attemptKey).(int); ok {
		return v
	}
	return 0
}
