// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#2D2D2D", Dark: "#CCCCCC"} // Main/primary text
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Input placeholders

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Button colors
	ButtonTextColor           = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonDisabledTextColor   = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#696969"}
	ButtonPrimaryBgColor      = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ButtonPrimaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}
	ButtonDisabledBgColor     = lipgloss.AdaptiveColor{Light: "#2D2D2D", Dark: "#2D2D2D"}

	// Form colors
	FormTextInputBorderColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}
	FormTextInputFocusedBorderColor = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#FFF"}
	FormTextInputLabelColor         = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#8C8C8C"}
	FormTextInputFocusedLabelColor  = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FFF"}

	// Loading spinner color
	SpinnerColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#FFF"}

	// Card header ("Sign Up")
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextPrimaryColor).
			MarginBottom(1)

	LabelStyle        = lipgloss.NewStyle().Foreground(FormTextInputLabelColor)
	FocusedLabelStyle = lipgloss.NewStyle().Foreground(FormTextInputFocusedLabelColor).Bold(true)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(FormTextInputBorderColor).
			Padding(0, 1)

	FocusedInputBoxStyle = InputBoxStyle.
				BorderForeground(FormTextInputFocusedBorderColor)

	PlaceholderStyle = lipgloss.NewStyle().Foreground(TextPlaceholderColor)
	HintStyle        = lipgloss.NewStyle().Foreground(TextMutedColor)
	SpinnerStyle     = lipgloss.NewStyle().Foreground(SpinnerColor)

	// Activation notice shown after a successful sign-up
	ConfirmationStyle = lipgloss.NewStyle().
				Foreground(StatusSuccessColor).
				Bold(true).
				Padding(1, 0)

	// Outer card around the whole form
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderDefaultColor).
			Padding(1, 2)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonPrimaryBgColor)

	PrimaryButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonPrimaryFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)

	DisabledButtonStyle = baseButtonStyle.
				Foreground(ButtonDisabledTextColor).
				Background(ButtonDisabledBgColor).
				Bold(false)
)

// ButtonStyle picks the style for a button in the given state. A disabled
// button never shows focus.
func ButtonStyle(enabled, focused bool) lipgloss.Style {
	switch {
	case !enabled:
		return DisabledButtonStyle
	case focused:
		return PrimaryButtonFocusedStyle
	default:
		return PrimaryButtonStyle
	}
}

// LabelFor returns the label style for a field with the given focus.
func LabelFor(focused bool) lipgloss.Style {
	if focused {
		return FocusedLabelStyle
	}
	return LabelStyle
}

// InputBoxFor returns the border style wrapping a text input.
func InputBoxFor(focused bool) lipgloss.Style {
	if focused {
		return FocusedInputBoxStyle
	}
	return InputBoxStyle
}
