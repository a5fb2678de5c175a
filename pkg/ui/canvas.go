package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/graphcanvas/pkg/model"
	"github.com/vanderheijden86/graphcanvas/pkg/selection"
	"github.com/vanderheijden86/graphcanvas/pkg/view"
)

// CellAspect is the height of one terminal cell in screen units. Screen
// space is measured in columns horizontally, so a cell being roughly twice
// as tall as wide means one row spans two screen units vertically. Keeping
// the two axes in the same unit makes circles come out round.
const CellAspect = 2.0

// Node glyphs by state.
const (
	glyphNode          = '●'
	glyphSelected      = '◉'
	glyphGroup         = '◎'
	glyphGroupSelected = '◈'
	glyphLink          = '·'
)

// minHitRadius is the minimum pointer hit distance in screen units, so
// small nodes stay clickable at low zoom.
const minHitRadius = 2.0

// Canvas renders the graph into a grid of terminal cells.
type Canvas struct {
	width  int // columns
	height int // rows
	theme  Theme
}

func NewCanvas(width, height int, theme Theme) *Canvas {
	return &Canvas{width: width, height: height, theme: theme}
}

func (c *Canvas) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Size returns the canvas dimensions in screen units, not cells.
func (c *Canvas) Size() (float64, float64) {
	return float64(c.width), float64(c.height) * CellAspect
}

// CellToScreen maps a terminal cell position to screen coordinates at the
// cell's center.
func CellToScreen(cellX, cellY int) (float64, float64) {
	return float64(cellX) + 0.5, (float64(cellY) + 0.5) * CellAspect
}

func screenToCell(sx, sy float64) (int, int) {
	return int(math.Floor(sx)), int(math.Floor(sy / CellAspect))
}

// NodeAt returns the id of the node whose screen position is nearest to
// the given screen point within its hit radius, or "".
func NodeAt(g *model.Graph, t view.Transform, sx, sy float64) string {
	best := ""
	bestDist := math.Inf(1)
	for i := range g.Nodes {
		n := &g.Nodes[i]
		nx, ny := t.ToScreen(n.X, n.Y)
		hit := math.Max(n.Radius*t.Scale, minHitRadius)
		dx, dy := sx-nx, sy-ny
		d := math.Hypot(dx, dy)
		if d <= hit && d < bestDist {
			best = n.ID
			bestDist = d
		}
	}
	return best
}

type cell struct {
	r  rune
	fg lipgloss.TerminalColor
}

type frame struct {
	cells [][]cell
	w, h  int
}

func newFrame(w, h int) *frame {
	cells := make([][]cell, h)
	for y := range cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		cells[y] = row
	}
	return &frame{cells: cells, w: w, h: h}
}

func (f *frame) set(x, y int, r rune, fg lipgloss.TerminalColor) {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return
	}
	f.cells[y][x] = cell{r: r, fg: fg}
}

// Render draws the graph under the given transform. marquee, when non-nil,
// is the in-progress selection rectangle in screen coordinates. overlay
// lines, when present, are spliced over the frame at the overlay cell
// position (tooltip box).
func (c *Canvas) Render(g *model.Graph, t view.Transform, sel *selection.Set,
	marquee *view.Rect, overlay []string, overlayX, overlayY int) string {

	f := newFrame(c.width, c.height)
	if g != nil {
		categories := g.Categories()
		c.drawLinks(f, g, t)
		c.drawNodes(f, g, t, sel, categories)
	}
	if marquee != nil {
		c.drawMarquee(f, *marquee)
	}
	if len(overlay) > 0 {
		c.drawOverlay(f, overlay, overlayX, overlayY)
	}
	return c.flush(f)
}

func (c *Canvas) drawLinks(f *frame, g *model.Graph, t view.Transform) {
	idx := g.NodeIndex()
	for _, l := range g.Links {
		src, ok1 := idx[l.Source]
		dst, ok2 := idx[l.Target]
		if !ok1 || !ok2 {
			continue
		}
		x1, y1 := t.ToScreen(src.X, src.Y)
		x2, y2 := t.ToScreen(dst.X, dst.Y)
		cx1, cy1 := screenToCell(x1, y1)
		cx2, cy2 := screenToCell(x2, y2)
		plotLine(f, cx1, cy1, cx2, cy2, glyphLink, c.theme.Link)
	}
}

func (c *Canvas) drawNodes(f *frame, g *model.Graph, t view.Transform, sel *selection.Set, categories []string) {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		sx, sy := t.ToScreen(n.X, n.Y)
		cx, cy := screenToCell(sx, sy)
		selected := sel != nil && sel.Has(n.ID)

		glyph := glyphNode
		switch {
		case n.Group && selected:
			glyph = glyphGroupSelected
		case n.Group:
			glyph = glyphGroup
		case selected:
			glyph = glyphSelected
		}

		fg := lipgloss.TerminalColor(c.theme.CategoryColor(categories, n.Category))
		if selected {
			fg = c.theme.Primary
		}
		f.set(cx, cy, glyph, fg)

		// label to the right of the glyph, clipped at the frame edge
		label := " " + n.ID
		x := cx + 1
		for _, r := range label {
			w := runewidth.RuneWidth(r)
			if x+w > f.w {
				break
			}
			f.set(x, cy, r, c.theme.Muted)
			x += w
		}
	}
}

func (c *Canvas) drawMarquee(f *frame, r view.Rect) {
	x1, y1 := screenToCell(r.MinX, r.MinY)
	x2, y2 := screenToCell(r.MaxX, r.MaxY)
	fg := c.theme.Marquee
	for x := x1 + 1; x < x2; x++ {
		f.set(x, y1, '─', fg)
		f.set(x, y2, '─', fg)
	}
	for y := y1 + 1; y < y2; y++ {
		f.set(x1, y, '│', fg)
		f.set(x2, y, '│', fg)
	}
	f.set(x1, y1, '┌', fg)
	f.set(x2, y1, '┐', fg)
	f.set(x1, y2, '└', fg)
	f.set(x2, y2, '┘', fg)
}

func (c *Canvas) drawOverlay(f *frame, lines []string, atX, atY int) {
	for dy, line := range lines {
		x := atX
		for _, r := range line {
			f.set(x, atY+dy, r, c.theme.Primary)
			x += runewidth.RuneWidth(r)
		}
	}
}

// flush converts the frame to a styled string, one style run per
// contiguous same-color span to keep escape sequences bounded.
func (c *Canvas) flush(f *frame) string {
	var b strings.Builder
	r := c.theme.Renderer
	for y := 0; y < f.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var runColor lipgloss.TerminalColor
		emit := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == nil {
				b.WriteString(run.String())
			} else {
				b.WriteString(r.NewStyle().Foreground(runColor).Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < f.w; x++ {
			cl := f.cells[y][x]
			fg := cl.fg
			if cl.r == ' ' {
				fg = nil
			}
			if fg != runColor {
				emit()
				runColor = fg
			}
			run.WriteRune(cl.r)
		}
		emit()
	}
	return b.String()
}

// plotLine draws a straight cell run between two cells (Bresenham).
func plotLine(f *frame, x1, y1, x2, y2 int, r rune, fg lipgloss.TerminalColor) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	x, y := x1, y1
	for {
		f.set(x, y, r, fg)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// GraphBounds returns the world-space bounding box of the graph's nodes,
// padded by each node's radius.
func GraphBounds(g *model.Graph) view.Rect {
	if g == nil || len(g.Nodes) == 0 {
		return view.Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range g.Nodes {
		n := &g.Nodes[i]
		minX = math.Min(minX, n.X-n.Radius)
		minY = math.Min(minY, n.Y-n.Radius)
		maxX = math.Max(maxX, n.X+n.Radius)
		maxY = math.Max(maxY, n.Y+n.Radius)
	}
	return view.Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}
