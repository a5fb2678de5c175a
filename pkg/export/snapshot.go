// Package export renders static snapshots of the current diagram: the
// force layout as SVG or PNG, and the category matrix as a chord-style
// diagram. Export serializes what is on screen; it never mutates the
// graph it is handed.
package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/graphcanvas/pkg/model"
	"github.com/vanderheijden86/graphcanvas/pkg/sim"
	"github.com/vanderheijden86/graphcanvas/pkg/view"
)

// SnapshotOptions controls layout snapshot export behaviour.
type SnapshotOptions struct {
	Path   string       // output path; format inferred from extension when Format empty
	Format string       // "svg" or "png" (case-insensitive); inferred from Path when empty
	Title  string       // optional title rendered in the header block
	Graph  *model.Graph // graph to render; positions are used as-is when present
	Width  int          // canvas width, default 1200
	Height int          // canvas height, default 800
}

// SaveSnapshot renders a static snapshot of the graph layout. Graphs that
// carry no positions yet are settled through a bounded simulation run
// first so the export never shows the raw seeding spiral mid-flight.
func SaveSnapshot(opts SnapshotOptions) error {
	if opts.Graph == nil || len(opts.Graph.Nodes) == 0 {
		return fmt.Errorf("no nodes to export")
	}

	format, path, err := resolveFormat(opts.Format, opts.Path)
	if err != nil {
		return err
	}
	opts.Path = path
	if opts.Width <= 0 {
		opts.Width = 1200
	}
	if opts.Height <= 0 {
		opts.Height = 800
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	layout, err := buildLayout(opts)
	if err != nil {
		return err
	}

	switch format {
	case "svg":
		return renderSVG(opts.Path, layout)
	case "png":
		return renderPNG(opts.Path, layout)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

// resolveFormat normalizes the format/extension pair the way the CLI
// expects: explicit format wins, then the path extension, then svg.
func resolveFormat(format, path string) (string, string, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg"
			if path != "" && filepath.Ext(path) == "" {
				path += ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return "", "", fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if path == "" {
		return "", "", fmt.Errorf("output path is required")
	}
	return format, path, nil
}

// --- layout computation ----------------------------------------------------

type layoutNode struct {
	ID       string
	Category string
	X, Y     float64
	Radius   float64
	Group    bool
}

type layoutLink struct {
	X1, Y1, X2, Y2 float64
}

type layoutResult struct {
	Nodes      []layoutNode
	Links      []layoutLink
	Categories []string
	Width      int
	Height     int
	Header     float64
	Title      string
}

const (
	snapshotPadding = 48.0
	headerHeight    = 90.0
)

func buildLayout(opts SnapshotOptions) (layoutResult, error) {
	g := opts.Graph
	if needsSettling(g) {
		settled := g.Clone()
		s, err := sim.New(settled, sim.DefaultOptions(float64(opts.Width), float64(opts.Height)))
		if err != nil {
			return layoutResult{}, fmt.Errorf("layout simulation: %w", err)
		}
		for i := 0; i < 300 && s.Step(); i++ {
		}
		g = settled
	}

	bounds := worldBounds(g)
	t := view.FitToBounds(bounds,
		float64(opts.Width), float64(opts.Height)-headerHeight, snapshotPadding)

	index := make(map[string]int, len(g.Nodes))
	nodes := make([]layoutNode, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		x, y := t.ToScreen(n.X, n.Y)
		r := n.Radius
		if r <= 0 {
			r = sim.DefaultNodeRadius
		}
		nodes[i] = layoutNode{
			ID:       n.ID,
			Category: n.Category,
			X:        x,
			Y:        y + headerHeight,
			Radius:   r * t.Scale,
			Group:    n.Group,
		}
		index[n.ID] = i
	}

	links := make([]layoutLink, 0, len(g.Links))
	for _, l := range g.Links {
		si, sok := index[l.Source]
		ti, tok := index[l.Target]
		if !sok || !tok {
			continue
		}
		links = append(links, layoutLink{
			X1: nodes[si].X, Y1: nodes[si].Y,
			X2: nodes[ti].X, Y2: nodes[ti].Y,
		})
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Layout Snapshot"
	}

	return layoutResult{
		Nodes:      nodes,
		Links:      links,
		Categories: g.Categories(),
		Width:      opts.Width,
		Height:     opts.Height,
		Header:     headerHeight,
		Title:      title,
	}, nil
}

// needsSettling reports whether the graph still lacks layout positions.
func needsSettling(g *model.Graph) bool {
	for i := range g.Nodes {
		if g.Nodes[i].X != 0 || g.Nodes[i].Y != 0 {
			return false
		}
	}
	return true
}

func worldBounds(g *model.Graph) view.Rect {
	b := view.Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for i := range g.Nodes {
		n := &g.Nodes[i]
		b.MinX = math.Min(b.MinX, n.X)
		b.MinY = math.Min(b.MinY, n.Y)
		b.MaxX = math.Max(b.MaxX, n.X)
		b.MaxY = math.Max(b.MaxY, n.Y)
	}
	return b
}

// --- rendering -------------------------------------------------------------

var (
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorHeaderBG = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
	colorStroke   = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorLink     = color.RGBA{0x9c, 0xa3, 0xaf, 0xff}
	colorText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle   = color.RGBA{0x66, 0x66, 0x66, 0xff}

	// categoryPalette is assigned to categories in first-encountered order
	// and wraps for graphs with more categories than entries.
	categoryPalette = []color.RGBA{
		{0x60, 0xa5, 0xfa, 0xff},
		{0x34, 0xd3, 0x99, 0xff},
		{0xfb, 0xbf, 0x24, 0xff},
		{0xf8, 0x71, 0x71, 0xff},
		{0xa7, 0x8b, 0xfa, 0xff},
		{0xf4, 0x72, 0xb6, 0xff},
		{0x2d, 0xd4, 0xbf, 0xff},
		{0xfb, 0x92, 0x3c, 0xff},
	}
)

func categoryColor(categories []string, category string) color.RGBA {
	for i, c := range categories {
		if c == category {
			return categoryPalette[i%len(categoryPalette)]
		}
	}
	return categoryPalette[0]
}

func renderPNG(path string, layout layoutResult) error {
	dc := gg.NewContext(layout.Width, layout.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 16, float64(layout.Width)-32, layout.Header-24, 10)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(colorText)
	dc.DrawStringAnchored(layout.Title, 32, 40, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(fmt.Sprintf("nodes: %d  links: %d  categories: %d",
		len(layout.Nodes), len(layout.Links), len(layout.Categories)), 32, 60, 0, 0.5)

	dc.SetColor(colorLink)
	dc.SetLineWidth(1.5)
	for _, l := range layout.Links {
		dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
		dc.Stroke()
	}

	for _, n := range layout.Nodes {
		dc.SetColor(categoryColor(layout.Categories, n.Category))
		dc.DrawCircle(n.X, n.Y, n.Radius)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1.2)
		dc.DrawCircle(n.X, n.Y, n.Radius)
		dc.Stroke()
		if n.Group {
			dc.DrawCircle(n.X, n.Y, n.Radius+3)
			dc.Stroke()
		}
		dc.SetColor(colorText)
		dc.DrawStringAnchored(n.ID, n.X, n.Y-n.Radius-6, 0.5, 0.5)
	}

	drawLegendPNG(dc, layout)
	return dc.SavePNG(path)
}

func renderSVG(path string, layout layoutResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return renderSVGToWriter(file, layout)
}

func renderSVGToWriter(w io.Writer, layout layoutResult) error {
	canvas := svg.New(w)
	canvas.Start(layout.Width, layout.Height)
	canvas.Rect(0, 0, layout.Width, layout.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, layout.Width-32, int(layout.Header-24), 10, 10,
		fmt.Sprintf("fill:%s", css(colorHeaderBG)))

	canvas.Text(32, 44, layout.Title,
		fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(32, 64, fmt.Sprintf("nodes: %d  links: %d  categories: %d",
		len(layout.Nodes), len(layout.Links), len(layout.Categories)),
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))

	for _, l := range layout.Links {
		canvas.Line(int(l.X1), int(l.Y1), int(l.X2), int(l.Y2),
			fmt.Sprintf("stroke:%s;stroke-width:1.5", css(colorLink)))
	}

	for _, n := range layout.Nodes {
		style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.2",
			css(categoryColor(layout.Categories, n.Category)), css(colorStroke))
		canvas.Circle(int(n.X), int(n.Y), int(n.Radius), style)
		if n.Group {
			canvas.Circle(int(n.X), int(n.Y), int(n.Radius+3),
				fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.2", css(colorStroke)))
		}
		canvas.Text(int(n.X), int(n.Y-n.Radius-6), n.ID,
			fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace;text-anchor:middle", css(colorText)))
	}

	drawLegendSVG(canvas, layout)
	canvas.End()
	return nil
}

func drawLegendPNG(dc *gg.Context, layout layoutResult) {
	boxW := 170.0
	boxH := float64(20*len(layout.Categories) + 28)
	x := float64(layout.Width) - boxW - 20
	y := float64(layout.Height) - boxH - 20

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(x, y, boxW, boxH, 10)
	dc.Fill()
	dc.SetColor(colorStroke)
	dc.DrawRoundedRectangle(x, y, boxW, boxH, 10)
	dc.Stroke()

	dc.SetColor(colorText)
	dc.DrawStringAnchored("Categories", x+12, y+16, 0, 0.5)
	for i, c := range layout.Categories {
		ry := y + 34 + float64(i)*20
		dc.SetColor(categoryPalette[i%len(categoryPalette)])
		dc.DrawCircle(x+18, ry, 6)
		dc.Fill()
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(truncate(c, 18), x+32, ry, 0, 0.5)
	}
}

func drawLegendSVG(canvas *svg.SVG, layout layoutResult) {
	boxW := 170
	boxH := 20*len(layout.Categories) + 28
	x := layout.Width - boxW - 20
	y := layout.Height - boxH - 20

	canvas.Roundrect(x, y, boxW, boxH, 10, 10,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(colorHeaderBG), css(colorStroke)))
	canvas.Text(x+12, y+20, "Categories",
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace;font-weight:bold", css(colorText)))
	for i, c := range layout.Categories {
		ry := y + 34 + i*20
		canvas.Circle(x+18, ry, 6, fmt.Sprintf("fill:%s", css(categoryPalette[i%len(categoryPalette)])))
		canvas.Text(x+32, ry+4, truncate(c, 18),
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
	}
}

// --- helpers ---------------------------------------------------------------

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
