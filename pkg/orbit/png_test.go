package orbit

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestWritePNGDimensions(t *testing.T) {
	opts := SnapshotOptions{Width: 200, Height: 150, Scale: 1, Steps: 20}

	var buf bytes.Buffer
	if err := WritePNG(&buf, makeEntities(3), opts); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("decoded %dx%d, want 200x150", b.Dx(), b.Dy())
	}
}

func TestWritePNGSupersampled(t *testing.T) {
	opts := SnapshotOptions{Width: 200, Height: 150, Scale: 2, Steps: 10, Labels: true, Title: "Sessions"}

	var buf bytes.Buffer
	if err := WritePNG(&buf, makeEntities(2), opts); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	// Supersampling changes the render path, not the output size
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("decoded %dx%d, want 200x150", b.Dx(), b.Dy())
	}

	// A corner pixel is untouched background, within resampling rounding
	got := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	if absInt(int(got.R)-int(canvasBg.R)) > 1 ||
		absInt(int(got.G)-int(canvasBg.G)) > 1 ||
		absInt(int(got.B)-int(canvasBg.B)) > 1 {
		t.Errorf("corner pixel = %v, want background %v", got, canvasBg)
	}
}

func TestRenderPNGFitsViewportAspect(t *testing.T) {
	// A live terminal-shaped viewport exported into 800x600 keeps its
	// aspect: fit = 800/240, giving an 800x533 image
	e := NewEngine(Viewport{Width: 240, Height: 160, PixelRatio: 1})
	e.Initialize(makeEntities(2))

	var buf bytes.Buffer
	opts := SnapshotOptions{Width: 800, Height: 600, Scale: 1, Steps: 0}
	if err := RenderPNG(&buf, e, opts); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 800 || b.Dy() != 533 {
		t.Errorf("decoded %dx%d, want 800x533", b.Dx(), b.Dy())
	}
}

func TestRenderPNGEmptyViewport(t *testing.T) {
	e := NewEngine(Viewport{})

	var buf bytes.Buffer
	err := RenderPNG(&buf, e, DefaultSnapshotOptions())
	if err == nil {
		t.Fatal("empty viewport rendered without error")
	}
	if !strings.Contains(err.Error(), "empty viewport") {
		t.Errorf("error = %q, want it to name the empty viewport", err)
	}
	if buf.Len() != 0 {
		t.Errorf("%d bytes written despite the error", buf.Len())
	}
}

func TestSettleStaysInBounds(t *testing.T) {
	e := NewEngine(testViewport())
	e.Initialize(makeEntities(5))
	Settle(e, 500)

	p := e.Physics
	vp := e.Viewport()
	for _, n := range e.Nodes() {
		if n.X < p.BoundaryMargin || n.X > vp.Width-p.BoundaryMargin ||
			n.Y < p.BoundaryMargin || n.Y > vp.Height-p.BoundaryMargin {
			t.Errorf("node %q settled out of bounds at (%.1f, %.1f)", n.ID, n.X, n.Y)
		}
		if s := n.Speed(); s > p.MaxVelocity {
			t.Errorf("node %q still moving at %.2f after settling", n.ID, s)
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestTruncateLabel(t *testing.T) {
	if got := truncateLabel("short", 22); got != "short" {
		t.Errorf("short name truncated to %q", got)
	}
	if got := truncateLabel("exactly-twenty-two-ch!", 22); got != "exactly-twenty-two-ch!" {
		t.Errorf("22-rune name truncated to %q", got)
	}

	long := "a very long session display name"
	got := truncateLabel(long, 22)
	if len([]rune(got)) != 22 {
		t.Errorf("truncated to %d runes, want 22", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated name %q missing ellipsis", got)
	}

	// Multi-byte names truncate on rune boundaries
	got = truncateLabel("セッションのなまえがながい", 8)
	if len([]rune(got)) != 8 {
		t.Errorf("multi-byte truncation gave %d runes, want 8", len([]rune(got)))
	}
}
