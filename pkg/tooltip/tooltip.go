// Package tooltip implements the tooltip lifecycle and placement. A
// tooltip is either hidden, following the pointer over a node (hover), or
// anchored to a specific node until dismissed (persistent). Detail level
// and trigger are configuration handled by the host, not states here.
package tooltip

// Mode is the visible tooltip state.
type Mode int

const (
	Hidden Mode = iota
	Hover
	Persistent
)

func (m Mode) String() string {
	switch m {
	case Hover:
		return "hover"
	case Persistent:
		return "persistent"
	default:
		return "hidden"
	}
}

// State is the tooltip state machine. A persistent anchor survives hover
// churn: hovering another node shows a hover tooltip, and leaving it falls
// back to the persistent one rather than to hidden.
type State struct {
	hoverID      string
	persistentID string

	hoverX, hoverY           float64
	persistentX, persistentY float64
}

// Mode returns the current visible mode. A hover over a node other than
// the persistent anchor takes display precedence while it lasts.
func (s *State) Mode() Mode {
	switch {
	case s.hoverID != "" && s.hoverID != s.persistentID:
		return Hover
	case s.persistentID != "":
		return Persistent
	default:
		return Hidden
	}
}

// Target returns the node id the visible tooltip describes, or "".
func (s *State) Target() string {
	if s.hoverID != "" && s.hoverID != s.persistentID {
		return s.hoverID
	}
	return s.persistentID
}

// Anchor returns the screen position the visible tooltip is anchored at.
func (s *State) Anchor() (float64, float64) {
	if s.hoverID != "" && s.hoverID != s.persistentID {
		return s.hoverX, s.hoverY
	}
	return s.persistentX, s.persistentY
}

// PointerEnter handles the pointer resting on a node. A node that already
// has the persistent tooltip does not additionally get a hover one.
func (s *State) PointerEnter(nodeID string, x, y float64) {
	s.hoverID = nodeID
	s.hoverX, s.hoverY = x, y
}

// PointerLeave clears the hover tooltip. A persistent tooltip, if any,
// becomes visible again.
func (s *State) PointerLeave() {
	s.hoverID = ""
}

// ClickNode makes the tooltip persistent for the clicked node, replacing
// any prior persistent tooltip directly.
func (s *State) ClickNode(nodeID string, x, y float64) {
	s.persistentID = nodeID
	s.persistentX, s.persistentY = x, y
	s.hoverID = ""
}

// ClickOutside dismisses a persistent tooltip. Clicks that land on a node
// or inside the tooltip region must not be routed here.
func (s *State) ClickOutside() {
	s.persistentID = ""
	s.hoverID = ""
}

// Dismiss hides everything, e.g. on data reload or view switch.
func (s *State) Dismiss() {
	s.hoverID = ""
	s.persistentID = ""
}

// PlacementOffset is the gap between the pointer and the tooltip box.
const PlacementOffset = 2.0

// Place positions a tooltip of the given size near the anchor inside a
// container. The box sits below-right of the anchor, flips above/left of
// it when it would overflow the container's right or bottom edge, and is
// finally clamped so it never extends past either edge.
func Place(anchorX, anchorY, w, h, containerW, containerH float64) (float64, float64) {
	x := anchorX + PlacementOffset
	if x+w > containerW {
		x = anchorX - PlacementOffset - w
	}
	y := anchorY + PlacementOffset
	if y+h > containerH {
		y = anchorY - PlacementOffset - h
	}
	return clamp(x, 0, containerW-w), clamp(y, 0, containerH-h)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
