// Package orbit implements the force-directed layout, input handling,
// and rendering behind the orbview session diagram: one hub node at the
// viewport centre with item nodes revolving around it, one per stored
// knowledge session.
package orbit

import (
	"math"
	"math/rand"
	"time"

	"github.com/ha1tch/orbview/pkg/session"
)

// Ring placement for newly created item nodes, relative to the hub.
const (
	ringFraction  = 0.22 // of the smaller viewport dimension
	ringJitter    = 4.0  // radial, logical units
	angularJitter = 0.2  // radians
)

// Engine owns the node set and advances the simulation. It is not safe
// for concurrent use; the scene drives it from a single goroutine.
type Engine struct {
	Physics Physics

	viewport Viewport
	nodes    []*Node
	index    map[string]*Node
	rng      *rand.Rand
}

// NewEngine returns an engine for the given viewport with default
// physics. No nodes exist until Initialize runs.
func NewEngine(vp Viewport) *Engine {
	return &Engine{
		Physics:  DefaultPhysics(),
		viewport: vp,
		index:    make(map[string]*Node),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Viewport returns the current logical viewport.
func (e *Engine) Viewport() Viewport {
	return e.viewport
}

// SetViewport updates the viewport used for centring and boundary
// clamping. Node positions are left alone; the centre pull drifts the
// set toward the new centre over the following steps.
func (e *Engine) SetViewport(vp Viewport) {
	e.viewport = vp
}

// Nodes returns the node list in deterministic order: hub first, then
// items in insertion order. The slice is shared; callers must not
// reorder it.
func (e *Engine) Nodes() []*Node {
	return e.nodes
}

// Node returns the node with the given id, or nil.
func (e *Engine) Node(id string) *Node {
	return e.index[id]
}

// Hub returns the hub node, or nil before Initialize.
func (e *Engine) Hub() *Node {
	return e.index[HubID]
}

// Initialize builds the hub at the viewport centre plus one item node
// per entity. Idempotent: ids already present keep their position and
// velocity, only missing nodes are created.
func (e *Engine) Initialize(entities []session.Entity) {
	e.ensureHub()
	e.addMissing(entities)
}

// Reconcile diffs the node set against a fresh entity snapshot: new ids
// are ringed around the current hub position, missing ids removed, and
// matching ids keep their motion state with only the entity reference
// swapped. The diff is returned so render caches can be evicted.
func (e *Engine) Reconcile(entities []session.Entity) (added, removed []string) {
	e.ensureHub()

	present := make(map[string]bool, len(entities))
	for i := range entities {
		present[entities[i].ID] = true
	}

	// Drop nodes whose entity disappeared
	kept := e.nodes[:0]
	for _, n := range e.nodes {
		if n.Kind == KindItem && !present[n.ID] {
			delete(e.index, n.ID)
			removed = append(removed, n.ID)
			continue
		}
		kept = append(kept, n)
	}
	e.nodes = kept

	// Refresh surviving entities, create the rest
	for i := range entities {
		if n := e.index[entities[i].ID]; n != nil && n.Kind == KindItem {
			ent := entities[i]
			n.Entity = &ent
		}
	}
	added = e.addMissing(entities)
	return added, removed
}

func (e *Engine) ensureHub() {
	if e.index[HubID] != nil {
		return
	}
	cx, cy := e.viewport.Center()
	hub := &Node{ID: HubID, Kind: KindHub, X: cx, Y: cy, Radius: HubRadius}
	e.nodes = append(e.nodes, hub)
	e.index[HubID] = hub
}

// addMissing creates nodes for ids not yet present, spacing the new
// batch evenly around the hub with a little angular and radial jitter
// so a symmetric start cannot stall the simulation. Duplicate ids in
// the batch collapse to one node.
func (e *Engine) addMissing(entities []session.Entity) []string {
	var missing []int
	seen := make(map[string]bool, len(entities))
	for i := range entities {
		id := entities[i].ID
		if e.index[id] == nil && !seen[id] {
			seen[id] = true
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	hub := e.index[HubID]
	ring := ringFraction * math.Min(e.viewport.Width, e.viewport.Height)
	start := e.rng.Float64() * 2 * math.Pi

	added := make([]string, 0, len(missing))
	for k, i := range missing {
		ent := entities[i]
		angle := start + 2*math.Pi*float64(k)/float64(len(missing))
		angle += (e.rng.Float64()*2 - 1) * angularJitter
		r := ring + (e.rng.Float64()*2-1)*ringJitter

		n := &Node{
			ID:     ent.ID,
			Kind:   KindItem,
			X:      hub.X + r*math.Cos(angle),
			Y:      hub.Y + r*math.Sin(angle),
			Radius: ItemRadius,
			Entity: &ent,
		}
		e.nodes = append(e.nodes, n)
		e.index[n.ID] = n
		added = append(added, n.ID)
	}
	return added
}

// Step advances the simulation by dt seconds. The dragged node, if any,
// is pinned to the pointer with zero velocity and skipped by the
// integrator, but still pushes its neighbours. dt at or below zero is a
// no-op.
func (e *Engine) Step(dt float64, inter Interaction) {
	if dt <= 0 || len(e.nodes) == 0 {
		return
	}

	// Pin the dragged node to the pointer; everything else integrates
	for _, n := range e.nodes {
		n.Pinned = inter.DraggedID != "" && n.ID == inter.DraggedID
		if n.Pinned {
			n.X = inter.PointerX
			n.Y = inter.PointerY
			n.VX = 0
			n.VY = 0
		}
	}

	p := e.Physics
	cx, cy := e.viewport.Center()
	hub := e.index[HubID]

	fx := make([]float64, len(e.nodes))
	fy := make([]float64, len(e.nodes))

	// Repulsion between all pairs within the cutoff
	for i := 0; i < len(e.nodes); i++ {
		for j := i + 1; j < len(e.nodes); j++ {
			a, b := e.nodes[i], e.nodes[j]

			dx := a.X - b.X
			dy := a.Y - b.Y
			dist := hypot(dx, dy)
			if dist > p.RepulsionCutoff {
				continue
			}
			if dist < 1 {
				dist = 1
			}

			force := p.Repulsion / (dist * dist)
			fx[i] += force * dx / dist
			fy[i] += force * dy / dist
			fx[j] -= force * dx / dist
			fy[j] -= force * dy / dist
		}
	}

	for i, n := range e.nodes {
		// Centre attraction, stronger for the hub
		pull := p.CenterPull
		if n.Kind == KindHub {
			pull = p.HubPull
		}
		fx[i] += (cx - n.X) * pull
		fy[i] += (cy - n.Y) * pull

		// Orbital term: constant push perpendicular to the hub radius
		if n.Kind == KindItem && hub != nil {
			rx := n.X - hub.X
			ry := n.Y - hub.Y
			d := hypot(rx, ry)
			if d > 1 {
				fx[i] += -ry / d * p.OrbitPull
				fy[i] += rx / d * p.OrbitPull
			}
		}
	}

	// Integrate
	for i, n := range e.nodes {
		if n.Pinned {
			continue
		}

		n.VX = (n.VX + fx[i]*dt) * p.Damping
		n.VY = (n.VY + fy[i]*dt) * p.Damping

		// Clamp speed
		speed := hypot(n.VX, n.VY)
		if speed > p.MaxVelocity {
			scale := p.MaxVelocity / speed
			n.VX *= scale
			n.VY *= scale
		}

		n.X += n.VX * dt
		n.Y += n.VY * dt

		e.bounce(n)
	}
}

// bounce clamps a node to the soft boundary margin and folds the
// offending velocity component back at reduced magnitude.
func (e *Engine) bounce(n *Node) {
	p := e.Physics
	maxX := e.viewport.Width - p.BoundaryMargin
	maxY := e.viewport.Height - p.BoundaryMargin
	if maxX <= p.BoundaryMargin || maxY <= p.BoundaryMargin {
		return
	}

	if n.X < p.BoundaryMargin {
		n.X = p.BoundaryMargin
		n.VX = -n.VX * p.Bounce
	}
	if n.X > maxX {
		n.X = maxX
		n.VX = -n.VX * p.Bounce
	}
	if n.Y < p.BoundaryMargin {
		n.Y = p.BoundaryMargin
		n.VY = -n.VY * p.Bounce
	}
	if n.Y > maxY {
		n.Y = maxY
		n.VY = -n.VY * p.Bounce
	}
}
