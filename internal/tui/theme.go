package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	tabStyle        = lipgloss.NewStyle().Foreground(colorSubtext0).Padding(0, 2)
	activeTabStyle  = lipgloss.NewStyle().Foreground(colorBase).Background(colorAccent).Bold(true).Padding(0, 2)
	cursorStyle     = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	categoryStyle   = lipgloss.NewStyle().Foreground(colorMauve).Bold(true)
	priceStyle      = lipgloss.NewStyle().Foreground(colorGreen)
	unitStyle       = lipgloss.NewStyle().Foreground(colorOverlay1)
	errorStyle      = lipgloss.NewStyle().Foreground(colorError)
	warningStyle    = lipgloss.NewStyle().Foreground(colorWarning)
	statusBarStyle  = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0).Padding(0, 1)
	footerStyle     = lipgloss.NewStyle().Foreground(colorSubtext0).Background(colorSurface1).Padding(0, 1)
	modalStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(1, 2)
	fieldLabelStyle = lipgloss.NewStyle().Foreground(colorTeal).Width(12)
	dimStyle        = lipgloss.NewStyle().Foreground(colorOverlay1)
	matchStyle      = lipgloss.NewStyle().Foreground(colorPeach)
)
