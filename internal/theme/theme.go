package theme

import "github.com/charmbracelet/lipgloss"

// Base palette, loosely after the in-game currency colours.
var (
	ColorGold     = lipgloss.Color("#d9b44a") // exalted
	ColorDivine   = lipgloss.Color("#e8d5a0") // divine
	ColorChaos    = lipgloss.Color("#b08d57")
	ColorGainUp   = lipgloss.Color("#7fc97f")
	ColorGainDown = lipgloss.Color("#f07070")
)

// Background tones (dark theme)
var (
	ColorBaseBg     = lipgloss.Color("#16130e")
	ColorCardBg     = lipgloss.Color("#221d14")
	ColorBorder     = lipgloss.Color("#4a4030")
	ColorMutedText  = lipgloss.Color("#8a8068")
	ColorBodyText   = lipgloss.Color("#d6cdb8")
	ColorBrightText = lipgloss.Color("#f2ecdd")
)

// Common styles
var (
	PaneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActivePaneStyle = PaneStyle.
			BorderForeground(ColorGold)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorBrightText).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMutedText)

	BodyStyle = lipgloss.NewStyle().
			Foreground(ColorBodyText)

	PriceStyle = lipgloss.NewStyle().
			Foreground(ColorGold)

	DivineStyle = lipgloss.NewStyle().
			Foreground(ColorDivine).
			Bold(true)

	ManualStyle = lipgloss.NewStyle().
			Foreground(ColorChaos)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorBrightText).
			Background(ColorCardBg).
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorMutedText).
			Italic(true)
)

// GainStyle colours a gain by sign.
func GainStyle(gain float64) lipgloss.Style {
	if gain < 0 {
		return lipgloss.NewStyle().Foreground(ColorGainDown).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(ColorGainUp).Bold(true)
}
