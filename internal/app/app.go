// Package app contains the root Bubble Tea model.
package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/signup/internal/keys"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/ui/signup"
	"github.com/zjrosen/signup/internal/ui/styles"
)

// Model is the root application model. It centres the sign-up card in the
// terminal, owns quitting and resolves mouse zones for the form.
type Model struct {
	form   signup.Model
	width  int
	height int
}

// New wraps form in a root model.
func New(form signup.Model) Model {
	return Model{form: form}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Form.Quit) {
			log.Info(log.CatUI, "Quit requested", "status", m.form.Status())
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	card := styles.CardStyle.Render(m.form.View())
	if m.width > 0 && m.height > 0 {
		card = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
	}
	return zone.Scan(card)
}

// Form returns the sign-up form.
func (m Model) Form() signup.Model {
	return m.form
}
