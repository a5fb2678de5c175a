package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/graphcanvas/pkg/matrix"
)

// Cell shade ramp, lowest to highest weight. Placeholder cells render as a
// dot so synthetic visibility weights read differently from data.
var shadeRamp = []rune{'░', '▒', '▓', '█'}

const (
	shadePlaceholder = '·'
	shadeEmpty       = ' '
	matrixLabelWidth = 12
	matrixCellWidth  = 2
)

// MatrixView renders the adjacency matrix as a shaded grid.
type MatrixView struct {
	m      *matrix.Matrix
	mode   matrix.Mode
	even   bool
	width  int
	height int
	theme  Theme
}

func NewMatrixView(theme Theme) MatrixView {
	return MatrixView{mode: matrix.Categories, theme: theme}
}

func (v *MatrixView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

func (v *MatrixView) SetMatrix(m *matrix.Matrix) { v.m = m }

// Mode returns the current aggregation mode.
func (v *MatrixView) Mode() matrix.Mode { return v.mode }

// ToggleMode switches between category and per-node aggregation. The
// caller rebuilds the matrix for the new mode.
func (v *MatrixView) ToggleMode() matrix.Mode {
	if v.mode == matrix.Categories {
		v.mode = matrix.Nodes
	} else {
		v.mode = matrix.Categories
	}
	return v.mode
}

// ToggleEven switches row renormalization on or off.
func (v *MatrixView) ToggleEven() bool {
	v.even = !v.even
	return v.even
}

// Even reports whether rows are renormalized to equal weight.
func (v *MatrixView) Even() bool { return v.even }

// shadeFor picks the cell glyph for a weight.
func shadeFor(v, max float64) rune {
	if v <= 0 {
		return shadeEmpty
	}
	if matrix.IsPlaceholder(v) {
		return shadePlaceholder
	}
	if max <= 0 {
		return shadeRamp[0]
	}
	idx := int(v / max * float64(len(shadeRamp)))
	if idx >= len(shadeRamp) {
		idx = len(shadeRamp) - 1
	}
	return shadeRamp[idx]
}

func (v *MatrixView) View() string {
	if v.m == nil || len(v.m.Labels) == 0 {
		return v.theme.MutedText.Render("no links to aggregate")
	}

	m := v.m
	if v.even {
		m = m.EvenDistribution()
	}
	max := m.Max()
	n := len(m.Labels)

	var b strings.Builder

	modeName := "categories"
	if v.mode == matrix.Nodes {
		modeName = "nodes"
	}
	title := fmt.Sprintf("link matrix · %s", modeName)
	if v.even {
		title += " · even"
	}
	b.WriteString(v.theme.Selected.Render(title))
	b.WriteString("\n\n")

	// column header: one letter per label, legend below the grid
	b.WriteString(strings.Repeat(" ", matrixLabelWidth+1))
	for j := 0; j < n; j++ {
		b.WriteString(v.theme.MutedText.Render(fmt.Sprintf("%-*s", matrixCellWidth, columnKey(j))))
	}
	b.WriteByte('\n')

	for i := 0; i < n; i++ {
		label := runewidth.Truncate(m.Labels[i], matrixLabelWidth, "…")
		b.WriteString(v.theme.MutedText.Render(fmt.Sprintf("%*s", matrixLabelWidth, label)))
		b.WriteByte(' ')
		for j := 0; j < n; j++ {
			glyph := shadeFor(m.Values[i][j], max)
			styled := v.cellStyle(i, glyph).Render(string(glyph) + strings.Repeat(" ", matrixCellWidth-1))
			b.WriteString(styled)
		}
		b.WriteString(v.theme.MutedText.Render(fmt.Sprintf("  %.1f", m.RowSum(i))))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	for j := 0; j < n; j++ {
		b.WriteString(v.theme.MutedText.Render(
			fmt.Sprintf("%s=%s  ", columnKey(j), runewidth.Truncate(m.Labels[j], 16, "…"))))
	}
	return b.String()
}

func (v *MatrixView) cellStyle(row int, glyph rune) lipgloss.Style {
	if glyph == shadePlaceholder {
		return v.theme.MutedText
	}
	return v.theme.Renderer.NewStyle().
		Foreground(v.theme.Categories[row%len(v.theme.Categories)])
}

// columnKey labels matrix columns a..z, then aa, ab, ...
func columnKey(j int) string {
	s := ""
	for {
		s = string(rune('a'+j%26)) + s
		j = j/26 - 1
		if j < 0 {
			break
		}
	}
	return s
}
