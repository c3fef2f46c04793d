package live

import (
	"github.com/charmbracelet/lipgloss"
	theme "github.com/goliatone/go-theme"
)

var (
	colorBorder = lipgloss.Color("#C2C3C4")
	colorError  = lipgloss.Color("#E53935")
	colorAccent = lipgloss.Color("#1A73E8")
	colorMuted  = lipgloss.Color("#6B7280")
	colorText   = lipgloss.Color("#1F2328")
)

type styles struct {
	title         lipgloss.Style
	label         lipgloss.Style
	labelInvalid  lipgloss.Style
	box           lipgloss.Style
	boxFocused    lipgloss.Style
	boxInvalid    lipgloss.Style
	placeholder   lipgloss.Style
	errorText     lipgloss.Style
	hint          lipgloss.Style
	button        lipgloss.Style
	buttonFocused lipgloss.Style
	buttonOff     lipgloss.Style
	link          lipgloss.Style
	notice        lipgloss.Style
	help          lipgloss.Style
}

// newStyles builds the palette from theme tokens, falling back to the
// built-in colors for anything the theme leaves out.
func newStyles(cfg *theme.RendererConfig) styles {
	border, errColor, accent, muted, text := colorBorder, colorError, colorAccent, colorMuted, colorText
	if cfg != nil {
		border = tokenColor(cfg.Tokens, "border", border)
		errColor = tokenColor(cfg.Tokens, "error", errColor)
		accent = tokenColor(cfg.Tokens, "accent", accent)
		muted = tokenColor(cfg.Tokens, "muted", muted)
		text = tokenColor(cfg.Tokens, "text", text)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(40)

	return styles{
		title:         lipgloss.NewStyle().Foreground(text).Bold(true).MarginBottom(1),
		label:         lipgloss.NewStyle().Foreground(text).Bold(true),
		labelInvalid:  lipgloss.NewStyle().Foreground(errColor).Bold(true),
		box:           box,
		boxFocused:    box.BorderForeground(accent),
		boxInvalid:    box.BorderForeground(errColor),
		placeholder:   lipgloss.NewStyle().Foreground(muted),
		errorText:     lipgloss.NewStyle().Foreground(errColor),
		hint:          lipgloss.NewStyle().Foreground(muted),
		button:        lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(accent).Padding(0, 2),
		buttonFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(accent).Bold(true).Underline(true).Padding(0, 2),
		buttonOff:     lipgloss.NewStyle().Foreground(muted).Background(lipgloss.Color("#E5E7EB")).Padding(0, 2),
		link:          lipgloss.NewStyle().Foreground(accent).Underline(true),
		notice:        lipgloss.NewStyle().Foreground(accent),
		help:          lipgloss.NewStyle().Foreground(muted).MarginTop(1),
	}
}

func tokenColor(tokens map[string]string, key string, fallback lipgloss.Color) lipgloss.Color {
	if value, ok := tokens[key]; ok && value != "" {
		return lipgloss.Color(value)
	}
	return fallback
}
