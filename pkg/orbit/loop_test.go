package orbit

import (
	"math"
	"testing"
	"time"
)

// frameRecorder captures frame invocations driven by explicit Tick
// calls, the way a host event loop drives a mounted scene.
type frameRecorder struct {
	calls int
	dts   []float64
}

func (fr *frameRecorder) frame(dt float64, now time.Time) {
	fr.calls++
	fr.dts = append(fr.dts, dt)
}

func TestTickFirstFrameUsesInterval(t *testing.T) {
	fr := &frameRecorder{}
	l := NewLoop(time.Second/10, fr.frame)

	l.Tick(time.Unix(100, 0))

	if fr.calls != 1 {
		t.Fatalf("frame called %d times, want 1", fr.calls)
	}
	if math.Abs(fr.dts[0]-0.1) > 1e-9 {
		t.Errorf("first dt = %v, want the nominal 0.1", fr.dts[0])
	}
}

func TestTickComputesDelta(t *testing.T) {
	fr := &frameRecorder{}
	l := NewLoop(time.Second/10, fr.frame)

	t0 := time.Unix(100, 0)
	l.Tick(t0)
	l.Tick(t0.Add(50 * time.Millisecond))

	if fr.calls != 2 {
		t.Fatalf("frame called %d times, want 2", fr.calls)
	}
	if math.Abs(fr.dts[1]-0.05) > 1e-9 {
		t.Errorf("second dt = %v, want 0.05", fr.dts[1])
	}
}

func TestTickSkipsNonAdvancingClock(t *testing.T) {
	fr := &frameRecorder{}
	l := NewLoop(time.Second/10, fr.frame)

	t0 := time.Unix(100, 0)
	l.Tick(t0)
	l.Tick(t0) // same reading
	l.Tick(t0.Add(-time.Second))

	if fr.calls != 1 {
		t.Errorf("frame called %d times, want only the advancing tick", fr.calls)
	}
}

func TestTickClampsStalls(t *testing.T) {
	fr := &frameRecorder{}
	l := NewLoop(time.Second/10, fr.frame)

	t0 := time.Unix(100, 0)
	l.Tick(t0)
	l.Tick(t0.Add(10 * time.Second))

	if fr.dts[1] != maxFrameDt {
		t.Errorf("stalled dt = %v, want clamped to %v", fr.dts[1], maxFrameDt)
	}
}

func TestTickAfterStop(t *testing.T) {
	fr := &frameRecorder{}
	l := NewLoop(time.Second/10, fr.frame)

	t0 := time.Unix(100, 0)
	l.Tick(t0)
	l.Stop()
	l.Tick(t0.Add(time.Second))

	if fr.calls != 1 {
		t.Errorf("frame called %d times after stop, want 1", fr.calls)
	}
}

func TestStopIdempotent(t *testing.T) {
	l := NewLoop(time.Second/10, func(dt float64, now time.Time) {})

	// Stop before Start, twice, then a Start that must stay dead
	l.Stop()
	l.Stop()
	l.Start()
	l.Stop()
}

func TestZeroIntervalDefaults(t *testing.T) {
	fr := &frameRecorder{}
	l := NewLoop(0, fr.frame)

	l.Tick(time.Unix(100, 0))

	want := DefaultFrameInterval.Seconds()
	if math.Abs(fr.dts[0]-want) > 1e-9 {
		t.Errorf("first dt = %v, want default interval %v", fr.dts[0], want)
	}
}

func TestStartTicksFrames(t *testing.T) {
	fired := make(chan struct{}, 1)
	l := NewLoop(time.Millisecond, func(dt float64, now time.Time) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	l.Start()
	defer l.Stop()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("no frame within 2s of Start")
	}
}

func TestWakeHookReplacesDirectTick(t *testing.T) {
	frames := 0
	woke := make(chan struct{}, 1)

	l := NewLoop(time.Millisecond, func(dt float64, now time.Time) {
		frames++
	})
	l.SetWake(func() {
		select {
		case woke <- struct{}{}:
		default:
		}
	})

	l.Start()
	select {
	case <-woke:
	case <-time.After(2 * time.Second):
		l.Stop()
		t.Fatal("wake hook never posted")
	}
	l.Stop()

	// With a wake hook the loop never runs frames itself; the host
	// calls Tick, and this test never did.
	if frames != 0 {
		t.Errorf("loop ran %d frames directly despite the wake hook", frames)
	}
}
