package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/signup/internal/registration"
)

// RegistrarMiddleware decorates a Registrar.
type RegistrarMiddleware func(next registration.Registrar) registration.Registrar

// NewRegistrarMiddleware wraps every Register call in a client span carrying
// the attempt number, username and e-mail. The outcome is recorded as the
// span status. A nil tracer yields a pass-through.
func NewRegistrarMiddleware(tracer trace.Tracer) RegistrarMiddleware {
	if tracer == nil {
		return func(next registration.Registrar) registration.Registrar {
			return next
		}
	}

	return func(next registration.Registrar) registration.Registrar {
		return registration.RegistrarFunc(func(ctx context.Context, p registration.Payload) error {
			ctx, span := tracer.Start(ctx, SpanRegister, trace.WithSpanKind(trace.SpanKindClient))
			defer span.End()

			span.SetAttributes(
				attribute.String(AttrUsername, p.Username),
				attribute.String(AttrEmail, p.Email),
			)
			if attempt := AttemptFromContext(ctx); attempt > 0 {
				span.SetAttributes(attribute.Int(AttrAttempt, attempt))
			}

			err := next.Register(ctx, p)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				span.SetAttributes(
					attribute.String(AttrOutcome, OutcomeFailed),
					attribute.String(AttrErrorMessage, err.Error()),
				)
				return err
			}

			span.SetStatus(codes.Ok, "")
			span.SetAttributes(attribute.String(AttrOutcome, OutcomeSucceeded))
			return nil
		})
	}
}
