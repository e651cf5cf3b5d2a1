// Package registration holds the client-side sign-up state machine.
//
// A Controller owns the four form inputs and the submission status. It
// derives whether the form may be submitted, hands out at most one
// in-flight Submission at a time, and folds the outcome of the injected
// Registrar back into its status. It has no knowledge of rendering or of
// the network; both are collaborators.
package registration

// Field identifies one of the form inputs.
type Field int

const (
	FieldUsername Field = iota
	FieldEmail
	FieldPassword
	FieldPasswordRepeat
)

// AllFields lists the inputs in display order.
var AllFields = []Field{FieldUsername, FieldEmail, FieldPassword, FieldPasswordRepeat}

// Label returns the user-facing label of the field.
func (f Field) Label() string {
	switch f {
	case FieldUsername:
		return "Username"
	case FieldEmail:
		return "E-mail"
	case FieldPassword:
		return "Password"
	case FieldPasswordRepeat:
		return "Password Repeat"
	default:
		return "Unknown"
	}
}

// Masked reports whether input for the field must not be echoed.
func (f Field) Masked() bool {
	return f == FieldPassword || f == FieldPasswordRepeat
}

// Fields is the raw form input. Values are kept exactly as typed.
type Fields struct {
	Username       string
	Email          string
	Password       string
	PasswordRepeat string
}

// Get returns the value of a single field.
func (f Fields) Get(field Field) string {
	switch field {
	case FieldUsername:
		return f.Username
	case FieldEmail:
		return f.Email
	case FieldPassword:
		return f.Password
	case FieldPasswordRepeat:
		return f.PasswordRepeat
	}
	return ""
}

// With returns a copy of f with one field replaced.
func (f Fields) With(field Field, value string) Fields {
	switch field {
	case FieldUsername:
		f.Username = value
	case FieldEmail:
		f.Email = value
	case FieldPassword:
		f.Password = value
	case FieldPasswordRepeat:
		f.PasswordRepeat = value
	}
	return f
}

// Payload projects the fields onto what is sent to the server.
// PasswordRepeat is deliberately absent.
func (f Fields) Payload() Payload {
	return Payload{
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
	}
}

// CanSubmit is the enablement rule: a non-empty password that matches its
// repetition. Username and e-mail are transmitted but do not gate submission.
func CanSubmit(f Fields) bool {
	return f.Password != "" && f.Password == f.PasswordRepeat
}

// Payload is the body of a registration request.
type Payload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
