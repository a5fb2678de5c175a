// Package matrix synthesizes the N×N adjacency matrix behind the chord
// view: directed link counts between every ordered pair of categories, or
// of individual nodes in detailed mode.
package matrix

import (
	"gonum.org/v1/gonum/floats"

	"github.com/vanderheijden86/graphcanvas/pkg/model"
)

// Mode selects the aggregation granularity.
type Mode int

const (
	// Categories aggregates links by node category.
	Categories Mode = iota
	// Nodes counts links between individual nodes.
	Nodes
)

const (
	// Placeholder is the synthetic weight assigned to a label with no real
	// links at all, so every label stays visually representable in the
	// chord layout.
	Placeholder = 0.2

	// RenderThreshold separates placeholders from genuine counts. Real
	// counts are integers >= 1, so any value below the threshold is
	// synthetic.
	RenderThreshold = 0.5

	// EvenScale is the fixed per-row total used by even-distribution mode.
	EvenScale = 1.0
)

// IsPlaceholder reports whether a cell value is synthetic rather than a
// genuine link count.
func IsPlaceholder(v float64) bool {
	return v > 0 && v < RenderThreshold
}

// Matrix is a directed adjacency matrix over ordered labels.
// Values[i][j] counts links from label i to label j.
type Matrix struct {
	Mode   Mode
	Labels []string
	Values [][]float64
}

// Build counts directed links between label pairs. Labels are ordered by
// first encounter over the node slice so repeated builds of the same graph
// agree. Labels with no links in either direction get a placeholder weight
// on their diagonal cell.
func Build(g *model.Graph, mode Mode) *Matrix {
	m := &Matrix{Mode: mode}
	index := make(map[string]int)
	labelOf := make(map[string]string, len(g.Nodes))

	for i := range g.Nodes {
		n := &g.Nodes[i]
		label := n.Category
		if mode == Nodes {
			label = n.ID
		}
		labelOf[n.ID] = label
		if _, ok := index[label]; !ok {
			index[label] = len(m.Labels)
			m.Labels = append(m.Labels, label)
		}
	}

	m.Values = make([][]float64, len(m.Labels))
	for i := range m.Values {
		m.Values[i] = make([]float64, len(m.Labels))
	}
	for _, l := range g.Links {
		si, sok := index[labelOf[l.Source]]
		ti, tok := index[labelOf[l.Target]]
		if !sok || !tok {
			continue
		}
		m.Values[si][ti]++
	}

	for i := range m.Labels {
		if m.RowSum(i) == 0 && m.ColSum(i) == 0 {
			m.Values[i][i] = Placeholder
		}
	}
	return m
}

// RowSum returns the total outgoing weight of label i.
func (m *Matrix) RowSum(i int) float64 {
	return floats.Sum(m.Values[i])
}

// ColSum returns the total incoming weight of label j.
func (m *Matrix) ColSum(j int) float64 {
	var sum float64
	for i := range m.Values {
		sum += m.Values[i][j]
	}
	return sum
}

// Max returns the largest cell value, used to scale chord widths.
func (m *Matrix) Max() float64 {
	var max float64
	for i := range m.Values {
		if len(m.Values[i]) == 0 {
			continue
		}
		if v := floats.Max(m.Values[i]); v > max {
			max = v
		}
	}
	return max
}

// EvenDistribution returns a copy with each row renormalized by its sum
// and rescaled to a fixed total. Relative ordering within a row survives;
// absolute magnitudes do not, which is a deliberate visual approximation.
// Zero rows are left untouched.
func (m *Matrix) EvenDistribution() *Matrix {
	out := &Matrix{
		Mode:   m.Mode,
		Labels: append([]string(nil), m.Labels...),
		Values: make([][]float64, len(m.Values)),
	}
	for i := range m.Values {
		row := append([]float64(nil), m.Values[i]...)
		if sum := floats.Sum(row); sum > 0 {
			floats.Scale(EvenScale/sum, row)
		}
		out.Values[i] = row
	}
	return out
}
