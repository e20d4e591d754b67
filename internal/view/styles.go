package view

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#61AFEF")
	colorMuted   = lipgloss.Color("#828997")
	colorBorder  = lipgloss.Color("#3F4451")
	colorSuccess = lipgloss.Color("#98C379")
	colorWarning = lipgloss.Color("#E5C07B")
	colorDanger  = lipgloss.Color("#E06C75")
	colorAdmin   = lipgloss.Color("#C678DD")
)

type styles struct {
	brand   lipgloss.Style
	navItem lipgloss.Style
	title   lipgloss.Style
	card    lipgloss.Style
	muted   lipgloss.Style
	link    lipgloss.Style
	errLine lipgloss.Style
	tab     lipgloss.Style
	tabOn   lipgloss.Style
	admin   lipgloss.Style
	active  lipgloss.Style
	off     lipgloss.Style
}

func newStyles(renderer *lipgloss.Renderer) *styles {
	badge := renderer.NewStyle().Padding(0, 1).Bold(true)
	return &styles{
		brand:   renderer.NewStyle().Foreground(colorAccent).Bold(true),
		navItem: renderer.NewStyle().Foreground(colorMuted),
		title:   renderer.NewStyle().Bold(true).MarginBottom(1),
		card: renderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		muted:   renderer.NewStyle().Foreground(colorMuted),
		link:    renderer.NewStyle().Foreground(colorAccent).Underline(true),
		errLine: renderer.NewStyle().Foreground(colorDanger).Bold(true),
		tab:     renderer.NewStyle().Foreground(colorMuted).Padding(0, 1),
		tabOn:   renderer.NewStyle().Foreground(colorAccent).Bold(true).Padding(0, 1),
		admin:   badge.Foreground(colorAdmin),
		active:  badge.Foreground(colorSuccess),
		off:     badge.Foreground(colorWarning),
	}
}
