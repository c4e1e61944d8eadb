package orbit

import (
	"sync"
	"time"
)

// DefaultFrameInterval paces the viewer at 30 frames per second.
const DefaultFrameInterval = time.Second / 30

// maxFrameDt caps the simulated step after long stalls (a suspended
// terminal, a debugger pause) so the physics never leaps.
const maxFrameDt = 0.25

// Loop paces the simulation. Start runs a ticker goroutine that either
// calls Tick itself or, when a wake hook is installed, posts through it
// so the host's event loop invokes Tick on its own goroutine and the
// whole frame stays single-threaded.
type Loop struct {
	interval time.Duration
	frame    func(dt float64, now time.Time)
	wake     func()

	mu       sync.Mutex
	stop     chan struct{}
	running  bool
	disposed bool
	last     time.Time
}

// NewLoop returns a stopped loop that will call frame once per
// interval. A non-positive interval falls back to the default.
func NewLoop(interval time.Duration, frame func(dt float64, now time.Time)) *Loop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Loop{interval: interval, frame: frame}
}

// SetWake installs the host wake hook. Must be called before Start.
func (l *Loop) SetWake(wake func()) {
	l.wake = wake
}

// Start begins ticking. Starting twice, or after Stop, does nothing.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running || l.disposed {
		return
	}
	l.running = true
	l.stop = make(chan struct{})
	go l.run(l.stop)
}

func (l *Loop) run(stop chan struct{}) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if l.wake != nil {
				l.wake()
			} else {
				l.Tick(time.Now())
			}
		}
	}
}

// Tick runs one frame at the given clock reading. dt comes from the
// previous tick, clamped against stalls; the first tick uses the
// nominal interval. Ticks after Stop are no-ops.
func (l *Loop) Tick(now time.Time) {
	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return
	}
	last := l.last
	l.last = now
	l.mu.Unlock()

	dt := l.interval.Seconds()
	if !last.IsZero() {
		dt = now.Sub(last).Seconds()
	}
	if dt <= 0 {
		return
	}
	if dt > maxFrameDt {
		dt = maxFrameDt
	}
	l.frame(dt, now)
}

// Stop halts the ticker and disposes the loop for good. Calling it
// twice, or before Start, is harmless; a mounted scene builds a fresh
// loop rather than restarting a stopped one.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.disposed = true
	if l.running {
		close(l.stop)
		l.running = false
	}
}
