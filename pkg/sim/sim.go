// Package sim implements the force-directed layout engine: a discrete-time
// simulation that assigns and refines world-space positions for every
// active node. Forces follow the usual velocity-Verlet-with-decay scheme:
// link springs, pairwise charge repulsion, centering, and radius-based
// collision avoidance, all scaled by a decaying temperature (alpha).
//
// The engine is host-agnostic: callers step it from whatever scheduler
// they like (an animation tick, a test loop) and read positions back off
// the shared node slice.
package sim

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/graphcanvas/pkg/model"
)

// Construction errors. These surface as a non-fatal visualization error
// state; the previous valid layout stays on screen.
var (
	ErrEmptyGraph  = errors.New("simulation requires at least one node")
	ErrBrokenLink  = errors.New("link references a node outside the active set")
	ErrNilGraph    = errors.New("simulation requires a graph")
)

// Options tunes the simulation forces. Zero values are replaced by the
// corresponding Default* constants.
type Options struct {
	LinkDistance    float64 // spring rest length
	LinkStrength    float64 // spring coefficient (0..1]
	Charge          float64 // repulsion magnitude; positive repels
	CenterStrength  float64 // pull of the barycenter toward the canvas center
	CollideStrength float64 // overlap resolution factor (0..1]
	NodeRadius      float64 // default collision radius for nodes without one

	CenterX, CenterY float64 // canvas center in world space

	AlphaDecay    float64
	AlphaMin      float64
	VelocityDecay float64
}

// Default tuning. The decay constants mirror the values the interactive
// renderer shipped with (alphaDecay 0.02, velocityDecay 0.25).
const (
	DefaultLinkDistance    = 60.0
	DefaultLinkStrength    = 0.7
	DefaultCharge          = 240.0
	DefaultCenterStrength  = 0.05
	DefaultCollideStrength = 0.7
	DefaultNodeRadius      = 8.0
	DefaultAlphaDecay      = 0.02
	DefaultAlphaMin        = 0.001
	DefaultVelocityDecay   = 0.25

	// Spiral seeding constants: angle = seedAngle*i, radius = seedRadius*sqrt(i).
	// seedAngle is the golden angle, spreading nodes evenly without collinear runs.
	seedRadius = 12.0
	seedAngle  = math.Pi * (3 - 2.2360679774997896) // π(3−√5)

	reheatAlpha = 0.5
)

// DefaultOptions returns the standard tuning centered on the given canvas size.
func DefaultOptions(width, height float64) Options {
	return Options{
		LinkDistance:    DefaultLinkDistance,
		LinkStrength:    DefaultLinkStrength,
		Charge:          DefaultCharge,
		CenterStrength:  DefaultCenterStrength,
		CollideStrength: DefaultCollideStrength,
		NodeRadius:      DefaultNodeRadius,
		CenterX:         width / 2,
		CenterY:         height / 2,
		AlphaDecay:      DefaultAlphaDecay,
		AlphaMin:        DefaultAlphaMin,
		VelocityDecay:   DefaultVelocityDecay,
	}
}

func (o *Options) fillDefaults() {
	if o.LinkDistance <= 0 {
		o.LinkDistance = DefaultLinkDistance
	}
	if o.LinkStrength <= 0 {
		o.LinkStrength = DefaultLinkStrength
	}
	if o.Charge == 0 {
		o.Charge = DefaultCharge
	}
	if o.CenterStrength <= 0 {
		o.CenterStrength = DefaultCenterStrength
	}
	if o.CollideStrength <= 0 {
		o.CollideStrength = DefaultCollideStrength
	}
	if o.NodeRadius <= 0 {
		o.NodeRadius = DefaultNodeRadius
	}
	if o.AlphaDecay <= 0 {
		o.AlphaDecay = DefaultAlphaDecay
	}
	if o.AlphaMin <= 0 {
		o.AlphaMin = DefaultAlphaMin
	}
	if o.VelocityDecay <= 0 {
		o.VelocityDecay = DefaultVelocityDecay
	}
}

type simLink struct {
	source, target int
}

// Simulation steps node positions toward a force equilibrium. It mutates
// the node slice it was constructed over; it never runs two steps
// concurrently (single-threaded by contract, see Step).
type Simulation struct {
	nodes []*model.Node
	links []simLink
	vel   []r2.Vec
	opts  Options

	alpha  float64
	static bool

	// pinnedBefore remembers which nodes were already pinned when static
	// mode engaged, so disengaging restores the exact prior pin state.
	pinnedBefore []bool
}

// New builds a simulation over the graph's nodes and links. Nodes without
// a position are seeded deterministically along an expanding spiral in
// insertion order, so the same dataset always starts from the same layout.
func New(g *model.Graph, opts Options) (*Simulation, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if len(g.Nodes) == 0 {
		return nil, ErrEmptyGraph
	}
	opts.fillDefaults()

	s := &Simulation{
		nodes: make([]*model.Node, len(g.Nodes)),
		vel:   make([]r2.Vec, len(g.Nodes)),
		opts:  opts,
		alpha: 1,
	}
	index := make(map[string]int, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		s.nodes[i] = n
		index[n.ID] = i
		if n.Radius <= 0 {
			n.Radius = opts.NodeRadius
		}
		if n.X == 0 && n.Y == 0 && !n.Pinned() {
			radius := seedRadius * math.Sqrt(float64(i))
			angle := seedAngle * float64(i)
			n.X = opts.CenterX + radius*math.Cos(angle)
			n.Y = opts.CenterY + radius*math.Sin(angle)
		}
	}

	s.links = make([]simLink, 0, len(g.Links))
	for _, l := range g.Links {
		si, ok := index[l.Source]
		if !ok {
			return nil, fmt.Errorf("%w: source %s", ErrBrokenLink, l.Source)
		}
		ti, ok := index[l.Target]
		if !ok {
			return nil, fmt.Errorf("%w: target %s", ErrBrokenLink, l.Target)
		}
		s.links = append(s.links, simLink{source: si, target: ti})
	}
	return s, nil
}

// Alpha returns the current simulation temperature.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Converged reports whether the simulation has cooled below its minimum
// temperature (or is halted by static mode) and ticking may stop.
func (s *Simulation) Converged() bool {
	return s.static || s.alpha < s.opts.AlphaMin
}

// Static reports whether static mode is engaged.
func (s *Simulation) Static() bool { return s.static }

// Reheat boosts alpha so a cooled simulation resumes motion, e.g. after a
// drag release. No-op while static mode holds the layout.
func (s *Simulation) Reheat() {
	if s.alpha < reheatAlpha {
		s.alpha = reheatAlpha
	}
}

// SetStatic toggles static mode. Engaging pins every node at its current
// position and halts stepping, trading physical realism for stability
// during selection and grouping. Disengaging reheats and releases exactly
// the pins static mode added; nodes pinned beforehand (by drag with
// fix-on-drag, or by data) stay pinned.
func (s *Simulation) SetStatic(enabled bool) {
	if enabled == s.static {
		return
	}
	if enabled {
		s.pinnedBefore = make([]bool, len(s.nodes))
		for i, n := range s.nodes {
			s.pinnedBefore[i] = n.Pinned()
			n.Pin(n.X, n.Y)
			s.vel[i] = r2.Vec{}
		}
		s.static = true
		return
	}
	for i, n := range s.nodes {
		if i < len(s.pinnedBefore) && !s.pinnedBefore[i] {
			n.Unpin()
		}
	}
	s.pinnedBefore = nil
	s.static = false
	s.Reheat()
}

// Step advances the simulation one tick. It returns false when no work was
// done (converged or static). Callers must not invoke Step concurrently;
// the frame loop skips a tick rather than overlapping two.
func (s *Simulation) Step() bool {
	if s.Converged() {
		return false
	}

	s.alpha += (0 - s.alpha) * s.opts.AlphaDecay

	s.applyLinkForce()
	s.applyChargeForce()
	s.applyCenterForce()
	s.applyCollideForce()

	for i, n := range s.nodes {
		if n.Pinned() {
			n.X, n.Y = *n.FX, *n.FY
			s.vel[i] = r2.Vec{}
			continue
		}
		s.vel[i] = r2.Scale(1-s.opts.VelocityDecay, s.vel[i])
		n.X += s.vel[i].X
		n.Y += s.vel[i].Y
	}
	return true
}

// applyLinkForce pulls linked nodes toward the rest length.
func (s *Simulation) applyLinkForce() {
	for _, l := range s.links {
		src, tgt := s.nodes[l.source], s.nodes[l.target]
		dx := tgt.X + s.vel[l.target].X - src.X - s.vel[l.source].X
		dy := tgt.Y + s.vel[l.target].Y - src.Y - s.vel[l.source].Y
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			dist = 1e-6
			dx = jiggle(l.source)
			dy = jiggle(l.target)
		}
		f := (dist - s.opts.LinkDistance) / dist * s.alpha * s.opts.LinkStrength
		s.vel[l.target] = r2.Sub(s.vel[l.target], r2.Vec{X: dx * f / 2, Y: dy * f / 2})
		s.vel[l.source] = r2.Add(s.vel[l.source], r2.Vec{X: dx * f / 2, Y: dy * f / 2})
	}
}

// applyChargeForce repels every node pair with inverse-distance falloff.
// O(n²); the tool targets datasets in the hundreds of nodes.
func (s *Simulation) applyChargeForce() {
	for i := range s.nodes {
		for j := i + 1; j < len(s.nodes); j++ {
			a, b := s.nodes[i], s.nodes[j]
			dx := b.X - a.X
			dy := b.Y - a.Y
			d2 := dx*dx + dy*dy
			if d2 < 1 {
				d2 = 1
			}
			f := s.opts.Charge * s.alpha / d2
			dist := math.Sqrt(d2)
			push := r2.Vec{X: dx / dist * f, Y: dy / dist * f}
			s.vel[j] = r2.Add(s.vel[j], push)
			s.vel[i] = r2.Sub(s.vel[i], push)
		}
	}
}

// applyCenterForce nudges the barycenter toward the canvas center.
func (s *Simulation) applyCenterForce() {
	var sum r2.Vec
	for _, n := range s.nodes {
		sum = r2.Add(sum, r2.Vec{X: n.X, Y: n.Y})
	}
	count := float64(len(s.nodes))
	shift := r2.Vec{
		X: (s.opts.CenterX - sum.X/count) * s.opts.CenterStrength,
		Y: (s.opts.CenterY - sum.Y/count) * s.opts.CenterStrength,
	}
	for i, n := range s.nodes {
		if n.Pinned() {
			continue
		}
		s.vel[i] = r2.Add(s.vel[i], shift)
	}
}

// applyCollideForce separates overlapping nodes proportionally to radius.
func (s *Simulation) applyCollideForce() {
	for i := range s.nodes {
		for j := i + 1; j < len(s.nodes); j++ {
			a, b := s.nodes[i], s.nodes[j]
			minDist := a.Radius + b.Radius
			dx := b.X - a.X
			dy := b.Y - a.Y
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}
			if dist == 0 {
				dist = 1e-6
				dx = jiggle(i)
				dy = jiggle(j)
			}
			overlap := (minDist - dist) / dist * s.opts.CollideStrength
			push := r2.Vec{X: dx * overlap / 2, Y: dy * overlap / 2}
			s.vel[j] = r2.Add(s.vel[j], push)
			s.vel[i] = r2.Sub(s.vel[i], push)
		}
	}
}

// jiggle returns a tiny deterministic offset used to separate coincident
// points, keyed by index so repeated runs stay reproducible.
func jiggle(i int) float64 {
	return (math.Mod(float64(i)*0.7548776662466927, 1) - 0.5) * 1e-6
}
