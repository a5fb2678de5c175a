package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/graphcanvas/pkg/matrix"
)

// ChordOptions controls chord diagram export behaviour.
type ChordOptions struct {
	Path   string // output path; format inferred from extension when Format empty
	Format string // "svg" or "png"
	Title  string
	Matrix *matrix.Matrix
	Size   int // square canvas side, default 900
}

const chordLabelMargin = 70.0

// SaveChord renders the adjacency matrix as a circular chord diagram:
// labels on a ring, each nonzero cell a ribbon whose width scales with
// its weight. Placeholder cells render dashed so synthetic visibility
// weights are never mistaken for data.
func SaveChord(opts ChordOptions) error {
	if opts.Matrix == nil || len(opts.Matrix.Labels) == 0 {
		return fmt.Errorf("no matrix to export")
	}

	format, path, err := resolveFormat(opts.Format, opts.Path)
	if err != nil {
		return err
	}
	opts.Path = path
	if opts.Size <= 0 {
		opts.Size = 900
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	switch format {
	case "svg":
		return renderChordSVG(opts)
	case "png":
		return renderChordPNG(opts)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

// labelPoint returns the ring position of label i out of n.
func labelPoint(i, n int, cx, cy, radius float64) (float64, float64) {
	angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
	return cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)
}

// ribbonWidth maps a cell weight into a stroke width.
func ribbonWidth(v, max float64) float64 {
	if max <= 0 {
		return 1
	}
	return 1 + 5*(v/max)
}

func renderChordSVG(opts ChordOptions) error {
	file, err := os.Create(opts.Path)
	if err != nil {
		return err
	}
	defer file.Close()

	m := opts.Matrix
	size := opts.Size
	cx, cy := float64(size)/2, float64(size)/2
	radius := float64(size)/2 - chordLabelMargin
	max := m.Max()

	canvas := svg.New(file)
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	if opts.Title != "" {
		canvas.Text(size/2, 30, opts.Title,
			fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold;text-anchor:middle", css(colorText)))
	}

	n := len(m.Labels)
	for i := range m.Labels {
		for j := range m.Labels {
			v := m.Values[i][j]
			if v <= 0 {
				continue
			}
			x1, y1 := labelPoint(i, n, cx, cy, radius)
			x2, y2 := labelPoint(j, n, cx, cy, radius)
			style := fmt.Sprintf("stroke:%s;stroke-width:%.1f;fill:none",
				css(categoryPalette[i%len(categoryPalette)]), ribbonWidth(v, max))
			if matrix.IsPlaceholder(v) {
				style += ";stroke-dasharray:4 3"
			}
			if i == j {
				// self cell: small loop arc beside the label
				canvas.Circle(int(x1), int(y1), 10, style)
				continue
			}
			canvas.Path(fmt.Sprintf("M%.1f,%.1f Q%.1f,%.1f %.1f,%.1f", x1, y1, cx, cy, x2, y2), style)
		}
	}

	for i, label := range m.Labels {
		x, y := labelPoint(i, n, cx, cy, radius)
		lx, ly := labelPoint(i, n, cx, cy, radius+24)
		canvas.Circle(int(x), int(y), 7,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(categoryPalette[i%len(categoryPalette)]), css(colorStroke)))
		canvas.Text(int(lx), int(ly)+4, truncate(label, 16),
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;text-anchor:middle", css(colorText)))
	}

	canvas.End()
	return nil
}

func renderChordPNG(opts ChordOptions) error {
	m := opts.Matrix
	size := opts.Size
	cx, cy := float64(size)/2, float64(size)/2
	radius := float64(size)/2 - chordLabelMargin
	max := m.Max()

	dc := gg.NewContext(size, size)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	if opts.Title != "" {
		dc.SetColor(colorText)
		dc.DrawStringAnchored(opts.Title, cx, 30, 0.5, 0.5)
	}

	n := len(m.Labels)
	for i := range m.Labels {
		for j := range m.Labels {
			v := m.Values[i][j]
			if v <= 0 {
				continue
			}
			x1, y1 := labelPoint(i, n, cx, cy, radius)
			x2, y2 := labelPoint(j, n, cx, cy, radius)
			dc.SetColor(categoryPalette[i%len(categoryPalette)])
			dc.SetLineWidth(ribbonWidth(v, max))
			if matrix.IsPlaceholder(v) {
				dc.SetDash(4, 3)
			} else {
				dc.SetDash()
			}
			if i == j {
				dc.DrawCircle(x1, y1, 10)
				dc.Stroke()
				continue
			}
			dc.MoveTo(x1, y1)
			dc.QuadraticTo(cx, cy, x2, y2)
			dc.Stroke()
		}
	}
	dc.SetDash()

	for i, label := range m.Labels {
		x, y := labelPoint(i, n, cx, cy, radius)
		lx, ly := labelPoint(i, n, cx, cy, radius+24)
		dc.SetColor(categoryPalette[i%len(categoryPalette)])
		dc.DrawCircle(x, y, 7)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1)
		dc.DrawCircle(x, y, 7)
		dc.Stroke()
		dc.SetColor(colorText)
		dc.DrawStringAnchored(truncate(label, 16), lx, ly, 0.5, 0.5)
	}

	return dc.SavePNG(opts.Path)
}
