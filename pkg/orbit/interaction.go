package orbit

import (
	"github.com/ha1tch/orbview/pkg/session"
)

// dragThreshold is the pointer displacement, in logical units, below
// which a press-release pair counts as a click rather than a drag.
const dragThreshold = 4.0

// Interaction is the transient input state for one frame. It is passed
// by value into Engine.Step and Renderer.Draw so neither holds ambient
// pointer state. SelectedID is owned by the host and merged in by the
// scene; the controller never touches it.
type Interaction struct {
	PointerX, PointerY float64
	HoveredID          string
	DraggedID          string
	DownX, DownY       float64
	SelectedID         string
}

// Controller turns pointer events into interaction state against the
// engine's node set. Events arrive in logical coordinates; callers
// translate from device input first.
type Controller struct {
	engine   *Engine
	onSelect func(entityID string)
	state    Interaction
}

// NewController returns a controller over the engine's nodes. onSelect
// fires on item clicks with the session entity id; nil is allowed.
func NewController(engine *Engine, onSelect func(entityID string)) *Controller {
	return &Controller{engine: engine, onSelect: onSelect}
}

// Snapshot returns the interaction state for the current frame.
func (c *Controller) Snapshot() Interaction {
	return c.state
}

// HoveredEntity returns the session under the pointer, or nil. The hub
// and empty hovers both return nil.
func (c *Controller) HoveredEntity() *session.Entity {
	if c.state.HoveredID == "" {
		return nil
	}
	n := c.engine.Node(c.state.HoveredID)
	if n == nil {
		return nil
	}
	return n.Entity
}

// PointerMove updates the pointer. While a drag is active nothing else
// happens; the engine reads the pointer for the pinned node on its next
// step. Otherwise the hover target is re-resolved.
func (c *Controller) PointerMove(x, y float64) {
	c.state.PointerX = x
	c.state.PointerY = y
	if c.state.DraggedID != "" {
		return
	}
	if n := c.hitTest(x, y); n != nil {
		c.state.HoveredID = n.ID
	} else {
		c.state.HoveredID = ""
	}
}

// PointerDown starts a drag when the press lands on a node: the node is
// pinned with zero velocity and the down position recorded for the
// later click-or-drag decision.
func (c *Controller) PointerDown(x, y float64) {
	c.state.PointerX = x
	c.state.PointerY = y

	n := c.hitTest(x, y)
	if n == nil {
		return
	}
	c.state.DraggedID = n.ID
	c.state.HoveredID = ""
	c.state.DownX = x
	c.state.DownY = y
	n.Pinned = true
	n.VX = 0
	n.VY = 0
}

// PointerUp ends a drag, unpinning the node so physics resumes. A
// release within dragThreshold of the down position is a click and
// fires onSelect once with the entity id; the hub has no entity and
// never fires. The drag is cleared either way.
func (c *Controller) PointerUp(x, y float64) {
	c.state.PointerX = x
	c.state.PointerY = y
	if c.state.DraggedID == "" {
		return
	}

	n := c.engine.Node(c.state.DraggedID)
	c.state.DraggedID = ""
	if n == nil {
		return
	}
	n.Pinned = false

	moved := hypot(x-c.state.DownX, y-c.state.DownY)
	if moved < dragThreshold && n.Entity != nil && c.onSelect != nil {
		c.onSelect(n.ID)
	}

	// Pointer may still rest on a node after release
	if hit := c.hitTest(x, y); hit != nil {
		c.state.HoveredID = hit.ID
	}
}

// CancelDrag force-resets to the idle state. Used on teardown so an
// unmount mid-drag cannot leave a node pinned.
func (c *Controller) CancelDrag() {
	if c.state.DraggedID != "" {
		if n := c.engine.Node(c.state.DraggedID); n != nil {
			n.Pinned = false
		}
	}
	c.state.DraggedID = ""
	c.state.HoveredID = ""
}

// hitTest returns the first node whose disc contains the point, in the
// engine's deterministic order: hub first, then items as inserted.
func (c *Controller) hitTest(x, y float64) *Node {
	for _, n := range c.engine.Nodes() {
		dx := x - n.X
		dy := y - n.Y
		if dx*dx+dy*dy <= n.Radius*n.Radius {
			return n
		}
	}
	return nil
}
