package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/graphcanvas/pkg/config"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Link      lipgloss.AdaptiveColor
	Marquee   lipgloss.AdaptiveColor

	// Category palette, cycled by first-encountered category order.
	Categories []lipgloss.AdaptiveColor

	// Per-category color overrides from config, keyed by category name.
	Overrides map[string]lipgloss.AdaptiveColor

	// Styles
	Base      lipgloss.Style
	Header    lipgloss.Style
	StatusBar lipgloss.Style
	Selected  lipgloss.Style
	Tooltip   lipgloss.Style
	Panel     lipgloss.Style
	MutedText lipgloss.Style
	KeyHint   lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Link:      lipgloss.AdaptiveColor{Light: "#888888", Dark: "#44475A"},
		Marquee:   lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}, // Cyan

		Categories: []lipgloss.AdaptiveColor{
			{Light: "#6B47D9", Dark: "#BD93F9"}, // purple
			{Light: "#007700", Dark: "#50FA7B"}, // green
			{Light: "#006080", Dark: "#8BE9FD"}, // cyan
			{Light: "#B06800", Dark: "#FFB86C"}, // orange
			{Light: "#CC0000", Dark: "#FF5555"}, // red
			{Light: "#C7158F", Dark: "#FF79C6"}, // pink
			{Light: "#807700", Dark: "#F1FA8C"}, // yellow
			{Light: "#0066CC", Dark: "#6699FF"}, // blue
		},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.StatusBar = r.NewStyle().Foreground(t.Subtext)

	t.Selected = r.NewStyle().Foreground(t.Primary).Bold(true)

	t.Tooltip = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1)

	t.Panel = r.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Border).
		PaddingLeft(1)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.KeyHint = r.NewStyle().Foreground(t.Secondary)

	return t
}

// ApplyOverrides folds config color overrides into the theme. Custom
// colors are used as-is for both light and dark backgrounds.
func (t *Theme) ApplyOverrides(colors config.ColorConfig) {
	if colors.LinkColor != "" {
		t.Link = lipgloss.AdaptiveColor{Light: colors.LinkColor, Dark: colors.LinkColor}
	}
	if colors.TextColor != "" {
		t.Subtext = lipgloss.AdaptiveColor{Light: colors.TextColor, Dark: colors.TextColor}
	}
	if len(colors.Custom) == 0 {
		return
	}
	t.Overrides = make(map[string]lipgloss.AdaptiveColor, len(colors.Custom))
	for category, hex := range colors.Custom {
		t.Overrides[category] = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}
}

// CategoryColor returns the palette color for a category, stable over the
// graph's first-encountered category ordering. Config overrides win.
func (t Theme) CategoryColor(categories []string, category string) lipgloss.AdaptiveColor {
	if c, ok := t.Overrides[category]; ok {
		return c
	}
	for i, c := range categories {
		if c == category {
			return t.Categories[i%len(t.Categories)]
		}
	}
	return t.Subtext
}

// TestTheme returns a theme suitable for use in tests (stdout renderer).
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
