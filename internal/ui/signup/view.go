package signup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/signup/internal/keys"
	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/ui/styles"
)

// User-visible text.
const (
	Title        = "Sign Up"
	ButtonLabel  = "Sign Up"
	ProgressText = "Signing up..."
	Confirmation = "Please check your e-mail to activate your account"
)

// View renders the form. Zone markers are left in place; the root model
// scans them.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render(Title))
	sb.WriteString("\n")

	if m.ctrl.ShowConfirmation() {
		sb.WriteString(styles.ConfirmationStyle.Render(wordwrap.String(Confirmation, m.width)))
		return sb.String()
	}

	if m.ctrl.ShowInputs() {
		sb.WriteString(zone.Mark(ZoneForm, m.renderForm()))
	}
	return sb.String()
}

func (m Model) renderForm() string {
	rows := make([]string, 0, len(m.inputs)+2)
	for i, field := range registration.AllFields {
		rows = append(rows, m.renderField(field, m.focus == i))
	}
	rows = append(rows, "", m.renderButtonRow(), "", m.help.View(keys.Form))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderField(field registration.Field, focused bool) string {
	label := styles.LabelFor(focused).Render(field.Label())
	box := styles.InputBoxFor(focused).
		Width(m.width - 2). // border
		Render(m.inputs[int(field)].View())
	return lipgloss.JoinVertical(lipgloss.Left, label, zone.Mark(FieldZoneID(field), box))
}

func (m Model) renderButtonRow() string {
	enabled := m.SubmitEnabled()
	button := styles.ButtonStyle(enabled, m.buttonFocused()).Render(ButtonLabel)
	row := zone.Mark(ZoneSubmitButton, button)

	if m.ctrl.ShowProgress() {
		row += "  " + m.spinner.View() + " " + styles.HintStyle.Render(ProgressText)
	}
	return row
}
