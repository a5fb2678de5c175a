package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/graphcanvas/pkg/config"
	"github.com/vanderheijden86/graphcanvas/pkg/debug"
	"github.com/vanderheijden86/graphcanvas/pkg/export"
	"github.com/vanderheijden86/graphcanvas/pkg/gesture"
	"github.com/vanderheijden86/graphcanvas/pkg/grouping"
	"github.com/vanderheijden86/graphcanvas/pkg/matrix"
	"github.com/vanderheijden86/graphcanvas/pkg/model"
	"github.com/vanderheijden86/graphcanvas/pkg/selection"
	"github.com/vanderheijden86/graphcanvas/pkg/sim"
	"github.com/vanderheijden86/graphcanvas/pkg/tooltip"
	"github.com/vanderheijden86/graphcanvas/pkg/view"
	"github.com/vanderheijden86/graphcanvas/pkg/watcher"
)

// Layout thresholds for adaptive layout.
const (
	SplitViewThreshold = 100 // show the node panel at this width and above
	sidePanelWidth     = 32
	headerHeight       = 1
	footerHeight       = 2
)

// Simulation steps advanced per frame tick while settling.
const stepsPerFrame = 3

// Model is the root TUI model: the canvas view, the node panel, and the
// matrix view, wired to the gesture arbiter and the simulation.
type Model struct {
	cfg   config.Config
	theme Theme
	path  string

	graph      *model.Graph
	simulation *sim.Simulation
	engine     *grouping.Engine
	sel        *selection.Set
	arbiter    *gesture.Arbiter
	tip        tooltip.State
	transform  view.Transform
	canvas     *Canvas
	matrixView MatrixView

	nodeList list.Model
	glam     *glamour.TermRenderer
	watcher  *watcher.Watcher

	width, height int
	ready         bool
	fitted        bool

	showMatrix  bool
	marqueeMode bool
	panelFocus  bool
	marquee     *view.Rect
	dragID      string

	// dragWasPinned remembers the pressed node's pin state so a no-move
	// release can restore it instead of clobbering a `p` or data pin.
	dragWasPinned bool

	status    string
	statusSeq int
	loadErr   error
}

// NewModel builds the root model around an already loaded graph. w may be
// nil when watch mode is off.
func NewModel(g *model.Graph, cfg config.Config, path string, w *watcher.Watcher) Model {
	theme := DefaultTheme(lipgloss.DefaultRenderer())
	theme.ApplyOverrides(cfg.Colors)

	m := Model{
		cfg:        cfg,
		theme:      theme,
		path:       path,
		graph:      g,
		engine:     grouping.NewEngine(),
		sel:        selection.New(),
		arbiter:    gesture.NewArbiter(),
		transform:  view.Identity(),
		canvas:     NewCanvas(80, 24, theme),
		matrixView: NewMatrixView(theme),
		watcher:    w,
		width:      80,
		height:     24,
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.Primary).BorderForeground(theme.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.Secondary).BorderForeground(theme.Primary)
	m.nodeList = list.New(nil, delegate, sidePanelWidth-2, 20)
	m.nodeList.Title = "nodes"
	m.nodeList.SetShowHelp(false)
	m.nodeList.SetShowStatusBar(false)
	m.nodeList.DisableQuitKeybindings()

	if gr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(sidePanelWidth-4),
	); err == nil {
		m.glam = gr
	}

	m.rebuildSim()
	m.rebuildList()
	m.rebuildMatrix()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameTickCmd()}
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// simOptions derives force parameters from config, centered on the world
// origin used by fresh layouts.
func (m *Model) simOptions() sim.Options {
	opts := sim.DefaultOptions(800, 600)
	if m.cfg.Simulation.LinkDistance > 0 {
		opts.LinkDistance = m.cfg.Simulation.LinkDistance
	}
	if m.cfg.Simulation.LinkStrength > 0 {
		opts.LinkStrength = m.cfg.Simulation.LinkStrength
	}
	if m.cfg.Simulation.NodeCharge > 0 {
		opts.Charge = m.cfg.Simulation.NodeCharge
	}
	if m.cfg.Simulation.NodeSize > 0 {
		opts.NodeRadius *= m.cfg.Simulation.NodeSize
	}
	return opts
}

// rebuildSim recreates the simulation over the current graph slices. Node
// and link slices are replaced wholesale by grouping and reload, so the
// simulation must never outlive them.
func (m *Model) rebuildSim() {
	wasStatic := m.simulation != nil && m.simulation.Static()
	s, err := sim.New(m.graph, m.simOptions())
	if err != nil {
		m.simulation = nil
		return
	}
	if wasStatic {
		s.SetStatic(true)
	}
	m.simulation = s
}

func (m *Model) rebuildList() {
	if m.graph == nil {
		m.nodeList.SetItems(nil)
		return
	}
	degree := make(map[string]int)
	for _, l := range m.graph.Links {
		degree[l.Source]++
		degree[l.Target]++
	}
	items := make([]list.Item, 0, len(m.graph.Nodes))
	for i := range m.graph.Nodes {
		n := &m.graph.Nodes[i]
		items = append(items, nodeItem{
			id:       n.ID,
			category: n.Category,
			degree:   degree[n.ID],
			group:    n.Group,
			selected: m.sel.Has(n.ID),
		})
	}
	m.nodeList.SetItems(items)
}

func (m *Model) rebuildMatrix() {
	if m.graph == nil {
		m.matrixView.SetMatrix(nil)
		return
	}
	m.matrixView.SetMatrix(matrix.Build(m.graph, m.matrixView.Mode()))
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.status = s
	m.statusSeq++
	return statusExpireCmd(m.statusSeq)
}

func (m *Model) canvasSize() (int, int) {
	w := m.width
	if m.width >= SplitViewThreshold {
		w -= sidePanelWidth
	}
	h := m.height - headerHeight - footerHeight
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// fitView frames the whole graph in the canvas.
func (m *Model) fitView() {
	if m.graph == nil || len(m.graph.Nodes) == 0 {
		return
	}
	sw, sh := m.canvas.Size()
	m.transform = view.FitToBounds(GraphBounds(m.graph), sw, sh, 4)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cw, ch := m.canvasSize()
		m.canvas.SetSize(cw, ch)
		m.matrixView.SetSize(cw, ch)
		m.nodeList.SetSize(sidePanelWidth-2, ch/2)
		m.ready = true
		if !m.fitted {
			m.fitView()
			m.fitted = true
		}
		return m, nil

	case frameTickMsg:
		if m.simulation != nil && !m.showMatrix && !m.simulation.Converged() {
			for i := 0; i < stepsPerFrame; i++ {
				if !m.simulation.Step() {
					break
				}
			}
		}
		return m, frameTickCmd()

	case FileChangedMsg:
		cmds := []tea.Cmd{LoadGraphCmd(m.path)}
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}
		return m, tea.Batch(cmds...)

	case GraphLoadedMsg:
		if msg.Err != nil {
			m.loadErr = msg.Err
			return m, m.setStatus(fmt.Sprintf("reload failed: %v", msg.Err))
		}
		m.loadErr = nil
		m.graph = msg.Graph
		m.sel.Prune(m.graph)
		m.tip.Dismiss()
		m.arbiter.Cancel()
		m.marquee = nil
		m.rebuildSim()
		m.rebuildList()
		m.rebuildMatrix()
		status := fmt.Sprintf("reloaded %d nodes", len(m.graph.Nodes))
		if msg.DroppedNodes > 0 || msg.DroppedLinks > 0 {
			status += fmt.Sprintf(" (dropped %d nodes, %d links)", msg.DroppedNodes, msg.DroppedLinks)
		}
		return m, m.setStatus(status)

	case statusExpireMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.panelFocus = !m.panelFocus && m.width >= SplitViewThreshold
		return m, nil
	}

	if m.panelFocus {
		return m.handlePanelKey(msg)
	}

	switch msg.String() {
	case "f":
		m.fitView()
		return m, nil

	case "+", "=":
		sw, sh := m.canvas.Size()
		m.transform = m.transform.ZoomedAt(1.2, sw/2, sh/2)
		return m, nil

	case "-":
		sw, sh := m.canvas.Size()
		m.transform = m.transform.ZoomedAt(1/1.2, sw/2, sh/2)
		return m, nil

	case "left", "h":
		m.transform = m.transform.Translated(4, 0)
		return m, nil
	case "right", "l":
		m.transform = m.transform.Translated(-4, 0)
		return m, nil
	case "up", "k":
		m.transform = m.transform.Translated(0, 4)
		return m, nil
	case "down", "j":
		m.transform = m.transform.Translated(0, -4)
		return m, nil

	case "m":
		m.marqueeMode = !m.marqueeMode
		if !m.marqueeMode {
			m.marquee = nil
			m.arbiter.Cancel()
		}
		if m.marqueeMode {
			return m, m.setStatus("marquee mode: drag to select")
		}
		return m, m.setStatus("marquee mode off")

	case "s":
		if m.simulation == nil {
			return m, nil
		}
		m.simulation.SetStatic(!m.simulation.Static())
		if m.simulation.Static() {
			return m, m.setStatus("layout frozen")
		}
		return m, m.setStatus("layout live")

	case "r":
		if m.simulation != nil {
			m.simulation.Reheat()
		}
		return m, nil

	case "g":
		return m.groupSelection()

	case "u":
		return m.ungroupSelection()

	case "p":
		return m.togglePins()

	case "c":
		m.showMatrix = !m.showMatrix
		if m.showMatrix {
			m.tip.Dismiss()
			m.arbiter.Cancel()
			m.marquee = nil
			m.rebuildMatrix()
		}
		return m, nil

	case "n":
		if m.showMatrix {
			m.matrixView.ToggleMode()
			m.rebuildMatrix()
		}
		return m, nil

	case "v":
		if m.showMatrix {
			m.matrixView.ToggleEven()
		}
		return m, nil

	case "y":
		ids := m.sel.IDs()
		if len(ids) == 0 {
			return m, m.setStatus("nothing selected")
		}
		if err := clipboard.WriteAll(strings.Join(ids, "\n")); err != nil {
			return m, m.setStatus(fmt.Sprintf("clipboard: %v", err))
		}
		return m, m.setStatus(fmt.Sprintf("copied %d ids", len(ids)))

	case "e":
		if err := export.SaveSnapshot(export.SnapshotOptions{
			Path:  "graph.svg",
			Graph: m.graph,
			Title: m.path,
		}); err != nil {
			return m, m.setStatus(fmt.Sprintf("export: %v", err))
		}
		return m, m.setStatus("saved graph.svg")

	case "E":
		if err := export.SaveChord(export.ChordOptions{
			Path:   "chord.svg",
			Matrix: matrix.Build(m.graph, matrix.Categories),
			Title:  m.path,
		}); err != nil {
			return m, m.setStatus(fmt.Sprintf("export: %v", err))
		}
		return m, m.setStatus("saved chord.svg")

	case "esc":
		m.tip.Dismiss()
		m.sel.Clear()
		m.marquee = nil
		m.arbiter.Cancel()
		m.rebuildList()
		return m, nil
	}

	return m, nil
}

func (m Model) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		if item, ok := m.nodeList.SelectedItem().(nodeItem); ok {
			m.sel.ToggleID(item.id)
			m.rebuildList()
		}
		return m, nil
	case "esc":
		m.panelFocus = false
		return m, nil
	}
	var cmd tea.Cmd
	m.nodeList, cmd = m.nodeList.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showMatrix {
		return m, nil
	}
	cw, ch := m.canvasSize()
	ev, action := translateMouse(msg, 0, headerHeight, cw, ch)
	if action == pointerNone {
		return m, nil
	}

	switch action {
	case pointerWheelUp:
		m.transform = m.transform.ZoomedAt(1.1, ev.X, ev.Y)
	case pointerWheelDown:
		m.transform = m.transform.ZoomedAt(1/1.1, ev.X, ev.Y)

	case pointerPress:
		hit := NodeAt(m.graph, m.transform, ev.X, ev.Y)
		kind, err := m.arbiter.Begin(ev, hit, m.marqueeMode)
		if err != nil {
			debug.Log("gesture begin rejected: %v", err)
			return m, nil
		}
		debug.Log("gesture begin: %s hit=%q at (%.1f,%.1f)", kind, hit, ev.X, ev.Y)
		if kind == gesture.KindDrag {
			m.dragID = hit
			if n := m.graph.Node(hit); n != nil {
				m.dragWasPinned = n.Pinned()
				n.Pin(n.X, n.Y)
			}
			if m.simulation != nil {
				m.simulation.Reheat()
			}
		}

	case pointerMove:
		if m.arbiter.Active() == gesture.KindNone {
			m.handleHover(ev)
			return m, nil
		}
		u := m.arbiter.Move(ev)
		switch u.Kind {
		case gesture.KindDrag:
			if n := m.graph.Node(u.NodeID); n != nil {
				wx, wy := m.transform.ToWorld(ev.X, ev.Y)
				n.Pin(wx, wy)
			}
		case gesture.KindPan:
			m.transform = m.transform.Translated(u.DX, u.DY)
		case gesture.KindMarquee:
			r := u.Rect
			m.marquee = &r
		}

	case pointerRelease:
		res, err := m.arbiter.End(ev)
		if err != nil {
			return m, nil
		}
		debug.Log("gesture end: %s node=%q moved=%v", res.Kind, res.NodeID, res.Moved)
		m.applyGestureResult(res, ev)
		m.arbiter.FinishTeardown()
	}

	return m, nil
}

// handleHover updates the hover tooltip from an unpressed pointer move.
func (m *Model) handleHover(ev gesture.PointerEvent) {
	if m.cfg.Tooltip.Trigger == config.TriggerClick {
		return
	}
	hit := NodeAt(m.graph, m.transform, ev.X, ev.Y)
	if hit == "" {
		m.tip.PointerLeave()
		return
	}
	m.tip.PointerEnter(hit, ev.X, ev.Y)
}

// applyGestureResult handles gesture release: drop policy for drags,
// selection for clicks and marquees.
func (m *Model) applyGestureResult(res gesture.Result, ev gesture.PointerEvent) {
	mode := selection.Replace
	if res.Modified {
		mode = selection.Toggle
	}

	switch res.Kind {
	case gesture.KindDrag:
		if !res.Moved {
			m.sel.Click(res.NodeID, mode)
			if m.cfg.Tooltip.Trigger != config.TriggerHover {
				m.tip.ClickNode(res.NodeID, ev.X, ev.Y)
			}
			if n := m.graph.Node(res.NodeID); n != nil && !m.dragWasPinned {
				n.Unpin()
			}
		} else if n := m.graph.Node(res.NodeID); n != nil {
			// static mode re-pins on release so the frozen layout stays
			// consistent with the node's new position
			if !m.cfg.Simulation.FixNodesOnDrag && (m.simulation == nil || !m.simulation.Static()) {
				n.Unpin()
			}
			if m.simulation != nil {
				m.simulation.Reheat()
			}
		}
		m.dragID = ""

	case gesture.KindPan:
		if !res.Moved {
			if mode == selection.Replace {
				m.sel.Clear()
			}
			m.tip.ClickOutside()
		}

	case gesture.KindMarquee:
		m.sel.ApplyMarquee(m.graph, res.Rect, m.transform, mode)
		m.marquee = nil
	}
	m.rebuildList()
}

func (m Model) groupSelection() (tea.Model, tea.Cmd) {
	ids := m.sel.IDs()
	groupID, err := m.engine.CreateGroup(m.graph, ids)
	if err != nil {
		return m, m.setStatus(fmt.Sprintf("group: %v", err))
	}
	m.sel.Clear()
	m.sel.ToggleID(groupID)
	m.tip.Dismiss()
	m.rebuildSim()
	m.rebuildList()
	m.rebuildMatrix()
	if m.simulation != nil {
		m.simulation.Reheat()
	}
	return m, m.setStatus(fmt.Sprintf("grouped %d nodes as %s", len(ids), groupID))
}

func (m Model) ungroupSelection() (tea.Model, tea.Cmd) {
	var restored []string
	for _, id := range m.sel.IDs() {
		n := m.graph.Node(id)
		if n == nil || !n.Group {
			continue
		}
		members, err := m.engine.Ungroup(m.graph, id)
		if err != nil {
			return m, m.setStatus(fmt.Sprintf("ungroup: %v", err))
		}
		restored = append(restored, members...)
	}
	if len(restored) == 0 {
		return m, m.setStatus("no group selected")
	}
	m.sel.Clear()
	for _, id := range restored {
		m.sel.ToggleID(id)
	}
	m.tip.Dismiss()
	m.rebuildSim()
	m.rebuildList()
	m.rebuildMatrix()
	if m.simulation != nil {
		m.simulation.Reheat()
	}
	return m, m.setStatus(fmt.Sprintf("restored %d nodes", len(restored)))
}

func (m Model) togglePins() (tea.Model, tea.Cmd) {
	ids := m.sel.IDs()
	if len(ids) == 0 {
		return m, m.setStatus("nothing selected")
	}
	pinned := 0
	for _, id := range ids {
		n := m.graph.Node(id)
		if n == nil {
			continue
		}
		if n.Pinned() {
			n.Unpin()
		} else {
			n.Pin(n.X, n.Y)
			pinned++
		}
	}
	if m.simulation != nil {
		m.simulation.Reheat()
	}
	if pinned > 0 {
		return m, m.setStatus(fmt.Sprintf("pinned %d nodes", pinned))
	}
	return m, m.setStatus("unpinned selection")
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := m.viewHeader()
	footer := m.viewFooter()

	var main string
	if m.showMatrix {
		main = m.matrixView.View()
	} else {
		main = m.viewCanvas()
	}

	if m.width >= SplitViewThreshold {
		panel := m.viewPanel()
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, panel)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, main, footer)
}

func (m Model) viewCanvas() string {
	var overlay []string
	overlayX, overlayY := 0, 0
	if m.tip.Mode() != tooltip.Hidden && m.graph != nil {
		overlay = tooltipLines(m.graph, m.tip.Target(), m.cfg.Tooltip.Detail)
		if len(overlay) > 0 {
			ax, ay := m.tip.Anchor()
			sw, sh := m.canvas.Size()
			boxW := 0
			for _, line := range overlay {
				if w := len([]rune(line)); w > boxW {
					boxW = w
				}
			}
			boxH := float64(len(overlay)) * CellAspect
			x, y := tooltip.Place(ax, ay, float64(boxW), boxH, sw, sh)
			overlayX = int(x)
			overlayY = int(y / CellAspect)
		}
	}
	return m.canvas.Render(m.graph, m.transform, m.sel, m.marquee, overlay, overlayX, overlayY)
}

func (m Model) viewHeader() string {
	title := m.theme.Header.Render("gv")
	stats := ""
	if m.graph != nil {
		stats = fmt.Sprintf(" %s · %d nodes · %d links · %d selected",
			m.path, len(m.graph.Nodes), len(m.graph.Links), m.sel.Len())
	}
	var flags []string
	if m.marqueeMode {
		flags = append(flags, "marquee")
	}
	if m.simulation != nil && m.simulation.Static() {
		flags = append(flags, "frozen")
	}
	if m.showMatrix {
		flags = append(flags, "matrix")
	}
	flagText := ""
	if len(flags) > 0 {
		flagText = m.theme.Selected.Render("  [" + strings.Join(flags, " ") + "]")
	}
	return title + m.theme.StatusBar.Render(stats) + flagText
}

func (m Model) viewFooter() string {
	hints := "q quit · f fit · m marquee · s freeze · g group · u ungroup · c matrix · y copy · e export"
	line := m.theme.KeyHint.Render(hints)
	status := m.status
	if m.loadErr != nil && status == "" {
		status = fmt.Sprintf("load error: %v", m.loadErr)
	}
	return line + "\n" + m.theme.StatusBar.Render(status)
}

func (m Model) viewPanel() string {
	body := m.nodeList.View()
	if detail := m.viewDetail(); detail != "" {
		body += "\n" + detail
	}
	return m.theme.Panel.Render(body)
}

// viewDetail renders the markdown detail of the tooltip target or, absent
// a tooltip, the single selected node.
func (m Model) viewDetail() string {
	if m.graph == nil {
		return ""
	}
	id := m.tip.Target()
	if id == "" {
		if ids := m.sel.IDs(); len(ids) == 1 {
			id = ids[0]
		}
	}
	if id == "" {
		return ""
	}
	n := m.graph.Node(id)
	if n == nil || n.Detail == "" {
		return ""
	}
	if m.glam != nil {
		if out, err := m.glam.Render(n.Detail); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return m.theme.MutedText.Render(n.Detail)
}
