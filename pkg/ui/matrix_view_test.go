package ui

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/graphcanvas/pkg/matrix"
	"github.com/vanderheijden86/graphcanvas/pkg/model"
)

func matrixGraph() *model.Graph {
	return &model.Graph{
		Nodes: []model.Node{
			{ID: "a", Category: "alpha"},
			{ID: "b", Category: "beta"},
			{ID: "c", Category: "gamma"}, // isolated
		},
		Links: []model.Link{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "a"},
		},
	}
}

func TestShadeFor(t *testing.T) {
	tests := []struct {
		name   string
		v, max float64
		want   rune
	}{
		{"empty", 0, 4, shadeEmpty},
		{"placeholder", matrix.Placeholder, 4, shadePlaceholder},
		{"max weight", 4, 4, '█'},
		{"low weight", 1, 4, '▒'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shadeFor(tt.v, tt.max); got != tt.want {
				t.Errorf("shadeFor(%v,%v) = %q, want %q", tt.v, tt.max, got, tt.want)
			}
		})
	}
}

func TestMatrixViewShowsLabelsAndPlaceholder(t *testing.T) {
	v := NewMatrixView(TestTheme())
	v.SetSize(100, 30)
	v.SetMatrix(matrix.Build(matrixGraph(), matrix.Categories))
	out := v.View()

	for _, label := range []string{"alpha", "beta", "gamma"} {
		if !strings.Contains(out, label) {
			t.Errorf("view missing label %s", label)
		}
	}
	// the isolated gamma category renders its diagonal as a placeholder dot
	if !strings.Contains(out, string(shadePlaceholder)) {
		t.Error("view missing placeholder glyph")
	}
}

func TestMatrixViewToggleMode(t *testing.T) {
	v := NewMatrixView(TestTheme())
	if v.Mode() != matrix.Categories {
		t.Fatal("default mode should be categories")
	}
	if v.ToggleMode() != matrix.Nodes {
		t.Error("first toggle should switch to nodes")
	}
	if v.ToggleMode() != matrix.Categories {
		t.Error("second toggle should switch back")
	}
}

func TestMatrixViewEvenDistribution(t *testing.T) {
	v := NewMatrixView(TestTheme())
	v.SetMatrix(matrix.Build(matrixGraph(), matrix.Categories))

	if v.Even() {
		t.Fatal("even should default off")
	}
	v.ToggleEven()
	out := v.View()
	if !strings.Contains(out, "even") {
		t.Error("even mode not reflected in title")
	}
}

func TestMatrixViewEmpty(t *testing.T) {
	v := NewMatrixView(TestTheme())
	if !strings.Contains(v.View(), "no links") {
		t.Error("empty matrix should render a notice")
	}
}

func TestColumnKey(t *testing.T) {
	tests := []struct {
		j    int
		want string
	}{
		{0, "a"}, {1, "b"}, {25, "z"}, {26, "aa"}, {27, "ab"}, {52, "ba"},
	}
	for _, tt := range tests {
		if got := columnKey(tt.j); got != tt.want {
			t.Errorf("columnKey(%d) = %q, want %q", tt.j, got, tt.want)
		}
	}
}
