package view

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#7D56F4")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(1, 0)

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).
			Bold(true).
			Padding(0, 2)

	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#AAAAAA")).
				Background(lipgloss.Color("#444444")).
				Padding(0, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4D4D"))

	// SuccessStyle is used by callers for confirmation lines.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#32CD32"))

	// DimStyle renders secondary information.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

func renderElement(el *Element) string {
	text := el.Text()
	switch el.Kind {
	case KindTitle:
		return titleStyle.Render(text)
	case KindButton:
		if el.Disabled() {
			return disabledButtonStyle.Render(text)
		}
		return buttonStyle.Render(text)
	case KindError:
		return errorStyle.Render(text)
	default:
		return textStyle.Render(text)
	}
}

// RenderError formats an error line the same way error containers are drawn.
func RenderError(msg string) string { return errorStyle.Render(msg) }
