// orbview is the interactive terminal viewer: it mounts an orbit scene
// over a tcell screen and keeps it in sync with the session store.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/orbview/internal/config"
	"github.com/ha1tch/orbview/pkg/orbit"
	"github.com/ha1tch/orbview/pkg/session"
)

// refreshTick marks the interrupt events posted by the store refresh
// ticker, as opposed to the frame wake-ups which carry nil data.
type refreshTick struct{}

// Viewer owns the screen, the mounted scene, and the store handle.
// Everything below runs on the event loop goroutine; the only other
// goroutines are the two tickers, and they touch nothing but PostEvent.
type Viewer struct {
	screen tcell.Screen
	scene  *orbit.Scene
	store  *session.Store
	cfg    *config.Config
	ratio  float64

	// Frame state
	frame  *image.RGBA // last presented renderer frame, device pixels
	scaled *image.RGBA // cell-grid resample buffer

	// Pointer state
	mouseDown bool

	// Selection
	selectedID string
	detail     *session.Entity

	// Display options
	paused   bool
	showHelp bool

	// Status message
	message   string
	messageAt time.Time
}

func main() {
	var (
		flagConfig = flag.String("config", "", "config file (default: user config dir)")
		flagDB     = flag.String("db", "", "session database path")
		flagRatio  = flag.Float64("ratio", 0, "backing-store pixel ratio (overrides config)")
		flagFPS    = flag.Int("fps", 0, "frame rate (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "orbview: %v\n", err)
		os.Exit(1)
	}
	if *flagRatio > 0 {
		cfg.Viewer.PixelRatio = *flagRatio
	}
	if *flagFPS > 0 {
		cfg.Viewer.FPS = *flagFPS
	}

	dbPath := *flagDB
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}
	if dbPath == "" {
		dbPath, err = session.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "orbview: %v\n", err)
			os.Exit(1)
		}
	}

	st, err := session.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "orbview: open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	entities, err := st.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "orbview: list sessions: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "orbview: create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "orbview: init screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.Clear()

	v := &Viewer{
		screen: screen,
		store:  st,
		cfg:    cfg,
		ratio:  cfg.Viewer.PixelRatio,
	}

	scene := orbit.NewScene()
	scene.Interval = cfg.Viewer.FrameInterval()
	scene.OnSelect = v.onSelect
	scene.Wake = func() {
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
	v.scene = scene
	scene.Mount(v, entities)

	// Slower ticker: re-list the store and reconcile the scene so
	// sessions added or removed elsewhere show up while we run.
	go func() {
		ticker := time.NewTicker(cfg.Viewer.RefreshInterval())
		defer ticker.Stop()
		for range ticker.C {
			screen.PostEvent(tcell.NewEventInterrupt(refreshTick{}))
		}
	}()

	v.run()

	scene.Unmount()
	screen.Fini()
}

func (v *Viewer) run() {
	for {
		v.draw()
		v.screen.Show()

		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
			w, h := v.logicalSize()
			v.scene.Resize(w, h)
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			v.handleMouse(ev)
		case *tcell.EventInterrupt:
			if _, ok := ev.Data().(refreshTick); ok {
				v.reload(false)
			} else if !v.paused {
				v.scene.Tick(time.Now())
			}
		}
	}
}

// handleKey returns true when the viewer should quit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		if v.showHelp {
			v.showHelp = false
		} else {
			v.clearSelection()
		}
		return false
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return true
	case 'p', 'P':
		v.paused = !v.paused
		if v.paused {
			v.say("physics paused")
		} else {
			v.say("physics resumed")
		}
	case 'r', 'R':
		v.reload(true)
	case 'w', 'W':
		v.writeSnapshot()
	case '?':
		v.showHelp = !v.showHelp
	}
	return false
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	lx, ly := cellToLogical(x, y)

	held := ev.Buttons()&tcell.Button1 != 0
	switch {
	case held && !v.mouseDown:
		v.mouseDown = true
		v.scene.PointerDown(lx, ly)
	case held:
		v.scene.PointerMove(lx, ly)
	case v.mouseDown:
		v.mouseDown = false
		v.scene.PointerUp(lx, ly)
	default:
		v.scene.PointerMove(lx, ly)
	}
}

// cellToLogical maps a screen cell to the logical centre of the two
// pixel rows it covers. Each cell is one column wide and two rows tall.
func cellToLogical(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(2*y) + 1
}

// logicalSize derives the logical viewport from the screen: one column
// per unit across, two units per row, minus the status bar row.
func (v *Viewer) logicalSize() (float64, float64) {
	cols, rows := v.screen.Size()
	if cols < 1 {
		cols = 1
	}
	if rows < 2 {
		rows = 2
	}
	return float64(cols), float64(2 * (rows - 1))
}

// Size implements orbit.Container.
func (v *Viewer) Size() (float64, float64) {
	return v.logicalSize()
}

// PixelRatio implements orbit.Container.
func (v *Viewer) PixelRatio() float64 {
	return v.ratio
}

// Present implements orbit.Container. The scene ticks on this
// goroutine, so holding the renderer's image between frames is safe.
func (v *Viewer) Present(img *image.RGBA) {
	v.frame = img
}

func (v *Viewer) onSelect(id string) {
	v.selectedID = id
	v.scene.SetSelected(id)
	if n := v.scene.Engine().Node(id); n != nil {
		v.detail = n.Entity
	}
}

func (v *Viewer) clearSelection() {
	v.selectedID = ""
	v.scene.SetSelected("")
	v.detail = nil
}

// reload re-lists the store and reconciles the scene. Manual reloads
// report what changed; the periodic refresh stays quiet.
func (v *Viewer) reload(manual bool) {
	entities, err := v.store.List()
	if err != nil {
		v.say("reload failed: %v", err)
		return
	}
	added, removed := v.scene.Reconcile(entities)
	if v.selectedID != "" {
		if n := v.scene.Engine().Node(v.selectedID); n != nil {
			v.detail = n.Entity
		} else {
			v.clearSelection()
		}
	}
	if manual {
		v.say("reloaded %d sessions (+%d -%d)", len(entities), len(added), len(removed))
	}
}

// writeSnapshot exports the current session set as a settled PNG in the
// working directory, using the configured export defaults.
func (v *Viewer) writeSnapshot() {
	name := fmt.Sprintf("orbview-%s.png", time.Now().Format("20060102-150405"))
	f, err := os.Create(name)
	if err != nil {
		v.say("snapshot failed: %v", err)
		return
	}
	defer f.Close()

	opts := orbit.DefaultSnapshotOptions()
	opts.Width = v.cfg.Export.Width
	opts.Height = v.cfg.Export.Height
	opts.Scale = v.cfg.Export.Scale
	opts.Steps = v.cfg.Export.Steps

	if err := orbit.WritePNG(f, v.sessionEntities(), opts); err != nil {
		v.say("snapshot failed: %v", err)
		return
	}
	v.say("wrote %s", name)
}

func (v *Viewer) sessionEntities() []session.Entity {
	var out []session.Entity
	for _, n := range v.scene.Engine().Nodes() {
		if n.Kind == orbit.KindItem && n.Entity != nil {
			out = append(out, *n.Entity)
		}
	}
	return out
}

func (v *Viewer) say(format string, args ...any) {
	v.message = fmt.Sprintf(format, args...)
	v.messageAt = time.Now()
}
