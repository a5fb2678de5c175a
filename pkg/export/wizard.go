package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/graphcanvas/pkg/matrix"
	"github.com/vanderheijden86/graphcanvas/pkg/model"
)

// WizardConfig holds the answers collected by the export wizard.
type WizardConfig struct {
	Kind   string // "layout" or "chord"
	Format string // "svg" or "png"
	Path   string
	Title  string
}

// Wizard walks the user through an export interactively.
type Wizard struct {
	graph  *model.Graph
	config WizardConfig
}

// NewWizard creates an export wizard over the current graph.
func NewWizard(g *model.Graph) *Wizard {
	return &Wizard{
		graph: g,
		config: WizardConfig{
			Kind:   "layout",
			Format: "svg",
			Path:   "graph.svg",
		},
	}
}

// isTerminal checks if stdin is connected to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection.
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// Run executes the interactive wizard flow and performs the export.
func (w *Wizard) Run() (WizardConfig, error) {
	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What do you want to export?").
				Options(
					huh.NewOption("Layout snapshot (node/link diagram)", "layout"),
					huh.NewOption("Chord diagram (category matrix)", "chord"),
				).
				Value(&w.config.Kind),
			huh.NewSelect[string]().
				Title("Format").
				Options(
					huh.NewOption("SVG", "svg"),
					huh.NewOption("PNG", "png"),
				).
				Value(&w.config.Format),
			huh.NewInput().
				Title("Output path").
				Value(&w.config.Path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Title (optional)").
				Value(&w.config.Title),
		),
	)
	if err := form.Run(); err != nil {
		return w.config, fmt.Errorf("export wizard: %w", err)
	}

	if err := w.export(); err != nil {
		return w.config, err
	}
	return w.config, nil
}

func (w *Wizard) export() error {
	switch w.config.Kind {
	case "chord":
		return SaveChord(ChordOptions{
			Path:   w.config.Path,
			Format: w.config.Format,
			Title:  w.config.Title,
			Matrix: matrix.Build(w.graph, matrix.Categories),
		})
	default:
		return SaveSnapshot(SnapshotOptions{
			Path:   w.config.Path,
			Format: w.config.Format,
			Title:  w.config.Title,
			Graph:  w.graph,
		})
	}
}
