package registration

import (
	"context"
	"errors"
)

// ErrRegistrationFailed is reported by callers that need an error value for
// a Failed outcome, such as the headless register command.
var ErrRegistrationFailed = errors.New("registration failed")

// Registrar performs the actual registration call. Any non-nil error is a
// failure; the controller never inspects it.
type Registrar interface {
	Register(ctx context.Context, p Payload) error
}

// RegistrarFunc adapts a function to the Registrar interface.
type RegistrarFunc func(ctx context.Context, p Payload) error

// Register calls f(ctx, p).
func (f RegistrarFunc) Register(ctx context.Context, p Payload) error {
	return f(ctx, p)
}
