// Package signup implements the Bubble Tea sign-up form.
//
// The form owns a registration.Controller and drives it from the update
// loop: keystrokes become SetField calls, the Sign Up triggers go through
// Controller.Begin, and the Register call runs as a tea.Cmd whose result
// comes back as a message and is passed to Controller.Resolve.
package signup

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/signup/internal/keys"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/tracing"
	"github.com/zjrosen/signup/internal/ui/styles"
)

// Zone IDs for mouse hit testing.
const (
	ZoneForm         = "signup-form"
	ZoneSubmitButton = "signup-submit"
)

// FieldZoneID returns the zone ID of the input box for field.
func FieldZoneID(field registration.Field) string {
	return fmt.Sprintf("signup-field-%d", int(field))
}

// registeredMsg carries the outcome of a Register call back to Update.
type registeredMsg struct {
	sub registration.Submission
	err error
}

// Model is the sign-up form state.
//
// Model is a value type like other Bubble Tea components, but every copy
// shares the same controller. Only the update loop may touch it.
type Model struct {
	ctrl      *registration.Controller
	registrar registration.Registrar
	ctx       context.Context

	inputs  []textinput.Model // indexed by registration.Field
	focus   int               // index into inputs, or len(inputs) for the button
	spinner spinner.Model
	help    help.Model
	width   int
}

// New creates a form with empty fields and focus on Username.
func New(cfg Config) Model {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	width := cfg.Width
	if width <= 0 {
		width = DefaultWidth
	}

	inputs := make([]textinput.Model, len(registration.AllFields))
	for i, field := range registration.AllFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = field.Label()
		ti.PlaceholderStyle = styles.PlaceholderStyle
		ti.CharLimit = 256
		if field.Masked() {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		inputs[i] = ti
	}

	s := spinner.New()
	s.Spinner = spinnerFor(cfg.Spinner)
	s.Style = styles.SpinnerStyle

	m := Model{
		ctrl:      registration.NewController(),
		registrar: cfg.Registrar,
		ctx:       ctx,
		inputs:    inputs,
		spinner:   s,
		help:      help.New(),
	}
	m = m.SetWidth(width)
	m.inputs[0].Focus()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetWidth resizes the form.
func (m Model) SetWidth(width int) Model {
	m.width = width
	inner := width - 6 // border, padding and cursor cell
	if inner < 1 {
		inner = 1
	}
	for i := range m.inputs {
		m.inputs[i].Width = inner
	}
	m.help.Width = width
	return m
}

// Width returns the form width in cells.
func (m Model) Width() int {
	return m.width
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registeredMsg:
		status := m.ctrl.Resolve(msg.sub, msg.err)
		log.Debug(log.CatUI, "Register result applied", "attempt", msg.sub.Attempt, "status", status)
		if status == registration.StatusSucceeded {
			m.blurAll()
		}
		return m, nil

	case spinner.TickMsg:
		// Dropping the tick ends the animation loop.
		if !m.ctrl.ShowProgress() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			return m.handleClick(msg)
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.ctrl.ShowInputs() {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Form.Submit):
		return m.submit()

	case key.Matches(msg, keys.Form.Enter):
		if m.buttonFocused() {
			return m.submit()
		}
		return m.setFocus(m.focus + 1)

	case key.Matches(msg, keys.Form.Next):
		return m.setFocus(m.focus + 1)

	case key.Matches(msg, keys.Form.Prev):
		return m.setFocus(m.focus - 1)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleClick(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !m.ctrl.ShowInputs() {
		return m, nil
	}

	if z := zone.Get(ZoneSubmitButton); z != nil && z.InBounds(msg) {
		m, _ = m.setFocus(len(m.inputs))
		return m.submit()
	}

	for _, field := range registration.AllFields {
		if z := zone.Get(FieldZoneID(field)); z != nil && z.InBounds(msg) {
			return m.setFocus(int(field))
		}
	}
	return m, nil
}

// submit is the single entry point for every Sign Up trigger.
func (m Model) submit() (Model, tea.Cmd) {
	sub, ok := m.ctrl.Begin()
	if !ok {
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, m.register(sub))
}

func (m Model) register(sub registration.Submission) tea.Cmd {
	r := m.registrar
	ctx := tracing.ContextWithAttempt(m.ctx, sub.Attempt)
	return func() tea.Msg {
		return registeredMsg{sub: sub, err: r.Register(ctx, sub.Payload)}
	}
}

// setFocus moves focus to index i, wrapping around the inputs and button.
func (m Model) setFocus(i int) (Model, tea.Cmd) {
	n := len(m.inputs) + 1
	i = ((i % n) + n) % n

	m.blurAll()
	m.focus = i
	if i < len(m.inputs) {
		return m, m.inputs[i].Focus()
	}
	return m, nil
}

func (m *Model) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m Model) updateFocusedInput(msg tea.Msg) (Model, tea.Cmd) {
	if m.buttonFocused() || !m.ctrl.ShowInputs() {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	field := registration.AllFields[m.focus]
	if v := m.inputs[m.focus].Value(); v != m.ctrl.Fields().Get(field) {
		m.ctrl.SetField(field, v)
	}
	return m, cmd
}

func (m Model) buttonFocused() bool {
	return m.focus == len(m.inputs)
}

// Status returns the submission status.
func (m Model) Status() registration.Status {
	return m.ctrl.Status()
}

// Fields returns the current input values.
func (m Model) Fields() registration.Fields {
	return m.ctrl.Fields()
}

// Err returns the error of the last failed submission.
func (m Model) Err() error {
	return m.ctrl.Err()
}

// Focused returns the focused field and whether an input (rather than the
// button) has focus.
func (m Model) Focused() (registration.Field, bool) {
	if m.buttonFocused() {
		return 0, false
	}
	return registration.AllFields[m.focus], true
}

// SubmitEnabled reports whether the Sign Up button is enabled.
func (m Model) SubmitEnabled() bool {
	return m.ctrl.CanSubmit() && m.ctrl.Status() != registration.StatusInProgress
}

// InputsVisible reports whether the form inputs are rendered.
func (m Model) InputsVisible() bool { return m.ctrl.ShowInputs() }

// ProgressVisible reports whether the spinner is rendered.
func (m Model) ProgressVisible() bool { return m.ctrl.ShowProgress() }

// ConfirmationVisible reports whether the activation notice is rendered.
func (m Model) ConfirmationVisible() bool { return m.ctrl.ShowConfirmation() }
