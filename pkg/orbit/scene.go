package orbit

import (
	"image"
	"time"

	"github.com/ha1tch/orbview/pkg/session"
)

// Container is the surface hosting a scene. Size is in logical units;
// Present receives each finished frame's backing image.
type Container interface {
	Size() (w, h float64)
	PixelRatio() float64
	Present(img *image.RGBA)
}

// Scene wires an engine, controller, renderer, and loop together for
// one mounted view. Configure the exported fields before Mount; after
// Unmount the scene ignores every call until mounted again. All
// methods must run on the host's event loop goroutine.
type Scene struct {
	// OnSelect fires when an item node is clicked, with its session id.
	OnSelect func(entityID string)

	// Interval paces the frame loop; zero means DefaultFrameInterval.
	Interval time.Duration

	// Wake, when set, is installed as the loop's wake hook: the ticker
	// posts through it and the host calls Tick back on its own loop.
	Wake func()

	container  Container
	engine     *Engine
	controller *Controller
	renderer   *Renderer
	loop       *Loop

	selected string
	mounted  bool
}

// NewScene returns an unmounted scene.
func NewScene() *Scene {
	return &Scene{}
}

// Mount sizes the viewport from the container, builds the node set
// from the entities, and starts the frame loop. Mounting a mounted
// scene does nothing.
func (s *Scene) Mount(c Container, entities []session.Entity) {
	if s.mounted {
		return
	}
	w, h := c.Size()
	vp := Viewport{Width: w, Height: h, PixelRatio: c.PixelRatio()}

	s.container = c
	s.engine = NewEngine(vp)
	s.engine.Initialize(entities)
	s.controller = NewController(s.engine, s.handleSelect)
	s.renderer = NewRenderer(vp)
	s.loop = NewLoop(s.Interval, s.frame)
	if s.Wake != nil {
		s.loop.SetWake(s.Wake)
	}
	s.mounted = true
	s.loop.Start()
}

// Unmount stops the loop and clears any in-progress drag. Frames and
// select callbacks arriving afterwards are no-ops. Safe to call twice.
func (s *Scene) Unmount() {
	if !s.mounted {
		return
	}
	s.loop.Stop()
	s.controller.CancelDrag()
	s.mounted = false
}

// Mounted reports whether the scene is live.
func (s *Scene) Mounted() bool {
	return s.mounted
}

// Tick runs one frame now. Hosts using the wake hook call this from
// their event loop when the wake arrives.
func (s *Scene) Tick(now time.Time) {
	if !s.mounted {
		return
	}
	s.loop.Tick(now)
}

// frame is the loop body: input snapshot, step, draw, present.
func (s *Scene) frame(dt float64, now time.Time) {
	inter := s.controller.Snapshot()
	inter.SelectedID = s.selected
	s.engine.Step(dt, inter)
	s.renderer.Draw(s.engine.Nodes(), inter, now)
	s.container.Present(s.renderer.Image())
}

// Resize recomputes the logical viewport and reallocates the backing
// store. Node positions are untouched; arriving mid-drag is fine.
func (s *Scene) Resize(w, h float64) {
	if !s.mounted {
		return
	}
	vp := Viewport{Width: w, Height: h, PixelRatio: s.container.PixelRatio()}
	s.engine.SetViewport(vp)
	s.renderer.Resize(vp)
}

// Reconcile swaps in a fresh entity snapshot and evicts render caches
// for removed nodes. Returns the ids added and removed.
func (s *Scene) Reconcile(entities []session.Entity) (added, removed []string) {
	if !s.mounted {
		return nil, nil
	}
	added, removed = s.engine.Reconcile(entities)
	for _, id := range removed {
		s.renderer.Evict(id)
	}
	return added, removed
}

// SetSelected records the host-owned selection fed into each draw.
func (s *Scene) SetSelected(id string) {
	s.selected = id
}

// PointerMove forwards a pointer move in logical coordinates.
func (s *Scene) PointerMove(x, y float64) {
	if !s.mounted {
		return
	}
	s.controller.PointerMove(x, y)
}

// PointerDown forwards a press in logical coordinates.
func (s *Scene) PointerDown(x, y float64) {
	if !s.mounted {
		return
	}
	s.controller.PointerDown(x, y)
}

// PointerUp forwards a release in logical coordinates.
func (s *Scene) PointerUp(x, y float64) {
	if !s.mounted {
		return
	}
	s.controller.PointerUp(x, y)
}

// HoveredEntity returns the session under the pointer, or nil.
func (s *Scene) HoveredEntity() *session.Entity {
	if !s.mounted {
		return nil
	}
	return s.controller.HoveredEntity()
}

// Engine exposes the layout engine for snapshot export and tests.
func (s *Scene) Engine() *Engine {
	return s.engine
}

func (s *Scene) handleSelect(id string) {
	if !s.mounted || s.OnSelect == nil {
		return
	}
	s.OnSelect(id)
}
