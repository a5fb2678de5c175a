package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/graphcanvas/internal/datasource"
	"github.com/vanderheijden86/graphcanvas/pkg/model"
	"github.com/vanderheijden86/graphcanvas/pkg/normalize"
	"github.com/vanderheijden86/graphcanvas/pkg/watcher"
)

// frameInterval paces simulation steps while the layout is settling.
// ~30fps is plenty for terminal rendering.
const frameInterval = 33 * time.Millisecond

type frameTickMsg time.Time

func frameTickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

// FileChangedMsg reports that the watched input file changed on disk.
type FileChangedMsg struct{}

// WatchFileCmd waits for the next change notification.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// GraphLoadedMsg carries a freshly loaded graph, or the load error.
type GraphLoadedMsg struct {
	Graph        *model.Graph
	DroppedNodes int
	DroppedLinks int
	Err          error
}

// LoadGraphCmd loads and normalizes the input file off the update loop.
func LoadGraphCmd(path string) tea.Cmd {
	return func() tea.Msg {
		in, err := datasource.LoadPath(context.Background(), path)
		if err != nil {
			return GraphLoadedMsg{Err: err}
		}
		res := normalize.Normalize(in)
		return GraphLoadedMsg{
			Graph:        res.Graph,
			DroppedNodes: res.DroppedNodes,
			DroppedLinks: res.DroppedLinks,
		}
	}
}

// statusExpireMsg clears a transient status line message.
type statusExpireMsg struct{ seq int }

func statusExpireCmd(seq int) tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusExpireMsg{seq: seq}
	})
}
