package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorSapphire lipgloss.Color = "#74c7ec"
	colorLavender lipgloss.Color = "#b4befe"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorBase     lipgloss.Color = "#1e1e2e"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

// fade ramps for revealed glyphs, from barely visible to full
var (
	labelFade  = []lipgloss.Color{colorSurface2, colorOverlay0, colorSubtext0, colorText}
	detailFade = []lipgloss.Color{colorSurface1, colorSurface2, colorSapphire, colorBlue}
	titleFade  = []lipgloss.Color{colorSurface2, colorOverlay0, colorPink, colorMauve}
)

var (
	brandStyle = lipgloss.NewStyle().Foreground(colorPink).Bold(true)

	navBarStyle         = lipgloss.NewStyle().Padding(0, 1)
	navBarScrolledStyle = navBarStyle.Background(colorSurface0)
	navLinkStyle        = lipgloss.NewStyle().Foreground(colorSubtext0)
	navActiveStyle      = lipgloss.NewStyle().Foreground(colorLavender).Underline(true)
	navKeyStyle         = lipgloss.NewStyle().Foreground(colorOverlay0)

	heroTitleStyle    = lipgloss.NewStyle().Foreground(colorMauve).Bold(true)
	heroSubtitleStyle = lipgloss.NewStyle().Foreground(colorSubtext0).Italic(true)
	bodyStyle         = lipgloss.NewStyle().Foreground(colorText)
	hintStyle         = lipgloss.NewStyle().Foreground(colorOverlay0)
	sectionStyle      = lipgloss.NewStyle().Foreground(colorPink).Bold(true)
	marqueeStyle      = lipgloss.NewStyle().Foreground(colorSubtext0).Bold(true)

	formLabelStyle       = lipgloss.NewStyle().Foreground(colorSubtext0)
	formLabelActiveStyle = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	buttonStyle          = lipgloss.NewStyle().Foreground(colorBase).Background(colorMauve).Padding(0, 2)
	buttonDisabledStyle  = lipgloss.NewStyle().Foreground(colorSubtext0).Background(colorSurface1).Padding(0, 2)

	footerStyle   = lipgloss.NewStyle().Background(colorMantle).Padding(0, 1)
	helpKeyStyle  = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorOverlay0)
	helpSepStyle  = lipgloss.NewStyle().Foreground(colorSurface2)
	progressStyle = lipgloss.NewStyle().Foreground(colorSapphire)

	toastSuccessStyle = lipgloss.NewStyle().Foreground(colorGreen).Background(colorMantle).Bold(true)
	toastErrorStyle   = lipgloss.NewStyle().Foreground(colorRed).Background(colorMantle).Bold(true)
)

// fadeColor picks the ramp step for an opacity in (0, 1].
func fadeColor(ramp []lipgloss.Color, opacity float64) lipgloss.Color {
	i := int(opacity * float64(len(ramp)))
	return ramp[max(0, min(i, len(ramp)-1))]
}
