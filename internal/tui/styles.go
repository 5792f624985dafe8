package tui

import "github.com/charmbracelet/lipgloss"

// Palette. Gain and loss colors match the familiar exchange green/red.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("255")
	ColorMuted     = lipgloss.Color("241")
	ColorGain      = lipgloss.Color("#16c784")
	ColorLoss      = lipgloss.Color("#ea3943")
	ColorFavorite  = lipgloss.Color("220")
	ColorSelected  = lipgloss.Color("57")
	ColorErrorBg   = lipgloss.Color("160")
	ColorErrorText = lipgloss.Color("231")
)

// Layout constants.
const (
	defaultWidth  = 120
	defaultHeight = 30
	borderPadding = 2
	minHeight     = 5
	// chromeHeight is the number of lines around the table: title, header
	// line, status bar and table header/border.
	chromeHeight = 7
	sidebarWidth = 44
)

//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)

	HeaderStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	GainStyle     = lipgloss.NewStyle().Foreground(ColorGain)
	LossStyle     = lipgloss.NewStyle().Foreground(ColorLoss)
	FavoriteStyle = lipgloss.NewStyle().Foreground(ColorFavorite)

	BannerStyle = lipgloss.NewStyle().
			Background(ColorErrorBg).
			Foreground(ColorErrorText).
			Bold(true).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorLoss).
			Padding(1, 4).
			Align(lipgloss.Center)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	CardSelectedStyle = BoxStyle.BorderForeground(ColorFavorite)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorMuted)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorValue).
				Background(ColorSelected).
				Bold(true)
)

// changeStyle picks the gain or loss color for a 24h change.
func changeStyle(change float64) lipgloss.Style {
	if change >= 0 {
		return GainStyle
	}
	return LossStyle
}
