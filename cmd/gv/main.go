package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/graphcanvas/internal/datasource"
	"github.com/vanderheijden86/graphcanvas/pkg/config"
	"github.com/vanderheijden86/graphcanvas/pkg/export"
	"github.com/vanderheijden86/graphcanvas/pkg/matrix"
	"github.com/vanderheijden86/graphcanvas/pkg/model"
	"github.com/vanderheijden86/graphcanvas/pkg/normalize"
	"github.com/vanderheijden86/graphcanvas/pkg/ui"
	"github.com/vanderheijden86/graphcanvas/pkg/version"
	"github.com/vanderheijden86/graphcanvas/pkg/watcher"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Config file path (default: XDG config dir)")
	watch := flag.Bool("watch", false, "Reload when the input file changes")
	exportPath := flag.String("export", "", "Render a layout snapshot to this path and exit (svg or png)")
	chordPath := flag.String("export-chord", "", "Render a chord diagram to this path and exit (svg or png)")
	exportWizard := flag.Bool("export-wizard", false, "Interactive export and exit")
	title := flag.String("title", "", "Title for exported images")
	flag.Parse()

	if *help {
		fmt.Println("Usage: gv [options] <input>")
		fmt.Println("\nAn interactive node/link diagram viewer.")
		fmt.Println("Input formats: json, jsonl, csv, yaml, sqlite.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("gv %s\n", version.Version)
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: input file required (see gv --help)")
		os.Exit(2)
	}
	inputPath := flag.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	g, err := loadGraph(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", inputPath, err)
		os.Exit(1)
	}
	if len(g.Nodes) == 0 {
		fmt.Fprintf(os.Stderr, "No nodes found in %s\n", inputPath)
		os.Exit(1)
	}

	// Headless export paths skip the TUI entirely.
	if *exportPath != "" {
		err := export.SaveSnapshot(export.SnapshotOptions{
			Path:  *exportPath,
			Graph: g,
			Title: *title,
		})
		exitAfterExport(*exportPath, err)
	}
	if *chordPath != "" {
		err := export.SaveChord(export.ChordOptions{
			Path:   *chordPath,
			Matrix: matrix.Build(g, matrix.Categories),
			Title:  *title,
		})
		exitAfterExport(*chordPath, err)
	}
	if *exportWizard {
		if _, err := export.NewWizard(g).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	var w *watcher.Watcher
	if *watch || cfg.Watch {
		w, err = watcher.New(inputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", inputPath, err)
			os.Exit(1)
		}
		if err := w.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", inputPath, err)
			os.Exit(1)
		}
		defer w.Stop()
	}

	m := ui.NewModel(g, cfg, inputPath, w)
	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func loadGraph(path string) (*model.Graph, error) {
	in, err := datasource.LoadPath(context.Background(), path)
	if err != nil {
		return nil, err
	}
	res := normalize.Normalize(in)
	if res.DroppedNodes > 0 || res.DroppedLinks > 0 {
		fmt.Fprintf(os.Stderr, "Warning: dropped %d nodes and %d links with missing or duplicate ids\n",
			res.DroppedNodes, res.DroppedLinks)
	}
	return res.Graph, nil
}

func exitAfterExport(path string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
	os.Exit(0)
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set GV_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("GV_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()
			}()
		}
	}

	_, err := p.Run()
	return err
}
