package signup

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/zjrosen/signup/internal/registration"
)

// Config configures a sign-up form.
type Config struct {
	// Registrar receives the payload of every accepted submission. Required.
	Registrar registration.Registrar

	// Context is passed to every Register call. Defaults to context.Background.
	Context context.Context

	// Spinner names the progress animation: "dot", "line", "minidot" or "points".
	Spinner string

	// Width is the width of the form in cells. Defaults to DefaultWidth.
	Width int
}

// DefaultWidth is used when Config.Width is unset.
const DefaultWidth = 50

func spinnerFor(name string) spinner.Spinner {
	switch name {
	case "line":
		return spinner.Line
	case "minidot":
		return spinner.MiniDot
	case "points":
		return spinner.Points
	default:
		return spinner.Dot
	}
}
