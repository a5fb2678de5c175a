package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/graphcanvas/pkg/config"
	"github.com/vanderheijden86/graphcanvas/pkg/model"
)

const (
	tooltipMaxWidth    = 36
	tooltipDetailLines = 5
)

// tooltipLines builds the tooltip box as plain rune lines for the canvas
// overlay. Overlay cells carry a single color, so the box is drawn with
// border runes here rather than through lipgloss.
func tooltipLines(g *model.Graph, nodeID, detail string) []string {
	n := g.Node(nodeID)
	if n == nil {
		return nil
	}

	degree := 0
	for _, l := range g.Links {
		if l.Source == n.ID || l.Target == n.ID {
			degree++
		}
	}

	body := []string{
		n.ID,
		fmt.Sprintf("%s · %d links", n.Category, degree),
	}
	if n.Group {
		body = append(body, fmt.Sprintf("group of %d", len(n.Members)))
	}
	if detail == config.TooltipDetailed && n.Detail != "" {
		body = append(body, "")
		body = append(body, wrapText(n.Detail, tooltipMaxWidth-4, tooltipDetailLines)...)
	}

	inner := 0
	for _, line := range body {
		if w := runewidth.StringWidth(line); w > inner {
			inner = w
		}
	}
	if inner > tooltipMaxWidth-4 {
		inner = tooltipMaxWidth - 4
	}

	out := make([]string, 0, len(body)+2)
	out = append(out, "╭"+strings.Repeat("─", inner+2)+"╮")
	for _, line := range body {
		line = runewidth.Truncate(line, inner, "…")
		pad := inner - runewidth.StringWidth(line)
		out = append(out, "│ "+line+strings.Repeat(" ", pad)+" │")
	}
	out = append(out, "╰"+strings.Repeat("─", inner+2)+"╯")
	return out
}

// wrapText word-wraps s to the given width, keeping at most maxLines
// lines. Markdown markup is shown raw here; the detail panel renders it
// properly.
func wrapText(s string, width, maxLines int) []string {
	words := strings.Fields(s)
	var lines []string
	var cur string
	for _, w := range words {
		if cur == "" {
			cur = w
		} else if runewidth.StringWidth(cur)+1+runewidth.StringWidth(w) <= width {
			cur += " " + w
		} else {
			lines = append(lines, cur)
			cur = w
			if len(lines) == maxLines {
				lines[maxLines-1] = runewidth.Truncate(lines[maxLines-1], width-1, "…")
				return lines
			}
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = runewidth.Truncate(lines[maxLines-1], width-1, "…")
	}
	return lines
}
