package orbit

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteSVGDocument(t *testing.T) {
	opts := SnapshotOptions{Width: 200, Height: 150, Steps: 20, Labels: true}

	var buf bytes.Buffer
	if err := WriteSVG(&buf, makeEntities(2), opts); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `<svg width="200" height="150"`) {
		t.Error("document missing the sized svg element")
	}
	if !strings.Contains(out, "</svg>") {
		t.Error("document not closed")
	}

	// One radial gradient per node, in defs
	if !strings.Contains(out, "<defs>") {
		t.Error("document missing defs")
	}
	for _, id := range []string{"disc-hub", "disc-sess-0", "disc-sess-1"} {
		if !strings.Contains(out, `<radialGradient id="`+id+`"`) {
			t.Errorf("no gradient defined for %s", id)
		}
		if !strings.Contains(out, "fill:url(#"+id+")") {
			t.Errorf("no disc referencing gradient %s", id)
		}
	}

	// Spokes are rounded two-part lines
	if !strings.Contains(out, "<line") {
		t.Error("document has no connection lines")
	}
	if !strings.Contains(out, "stroke-linecap:round") {
		t.Error("spoke style missing the rounded cap")
	}

	// Labels carry the session names
	for _, name := range []string{"Session 0", "Session 1"} {
		if !strings.Contains(out, ">"+name+"<") {
			t.Errorf("no label text for %q", name)
		}
	}
}

func TestWriteSVGTitle(t *testing.T) {
	opts := SnapshotOptions{Width: 200, Height: 150, Steps: 5, Title: "Orbit snapshot"}

	var buf bytes.Buffer
	if err := WriteSVG(&buf, makeEntities(1), opts); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	if !strings.Contains(buf.String(), ">Orbit snapshot<") {
		t.Error("title text not rendered")
	}
}

func TestWriteSVGNoLabels(t *testing.T) {
	opts := SnapshotOptions{Width: 200, Height: 150, Steps: 5}

	var buf bytes.Buffer
	if err := WriteSVG(&buf, makeEntities(1), opts); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	if strings.Contains(buf.String(), ">Session 0<") {
		t.Error("labels rendered despite Labels being off")
	}
}

func TestRenderSVGEmptyViewport(t *testing.T) {
	e := NewEngine(Viewport{})

	var buf bytes.Buffer
	if err := RenderSVG(&buf, e, DefaultSnapshotOptions()); err == nil {
		t.Fatal("empty viewport rendered without error")
	}
}

func TestCSSColor(t *testing.T) {
	if got := cssColor(canvasBg); got != "#1e1e2e" {
		t.Errorf("cssColor = %q, want #1e1e2e", got)
	}
	if got := cssColor(hubBase); got != "#bd93f9" {
		t.Errorf("cssColor = %q, want #bd93f9", got)
	}
}
