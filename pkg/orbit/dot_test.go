package orbit

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateDOTStructure(t *testing.T) {
	e := NewEngine(testViewport())
	e.Initialize(makeEntities(2))

	out := GenerateDOT(e, "")

	if !strings.HasPrefix(out, "graph orbview {") {
		t.Error("output does not open an undirected graph")
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Error("output not closed")
	}
	if !strings.Contains(out, "layout=neato;") {
		t.Error("neato layout not pinned")
	}

	for _, id := range []string{HubID, "sess-0", "sess-1"} {
		if !strings.Contains(out, `"`+id+`" [shape=circle`) {
			t.Errorf("no node statement for %q", id)
		}
	}

	// Hub spokes as undirected edges
	for _, id := range []string{"sess-0", "sess-1"} {
		if !strings.Contains(out, `"hub" -- "`+id+`";`) {
			t.Errorf("no spoke edge to %q", id)
		}
	}

	// Every node carries a pinned position
	if got := strings.Count(out, `pos="`); got != 3 {
		t.Errorf("%d pinned positions, want 3", got)
	}

	// Item labels come from the session names
	if !strings.Contains(out, `label="Session 0"`) {
		t.Error("item label missing the session name")
	}
	// The hub draws unlabelled in its accent colour
	if !strings.Contains(out, `label="", fillcolor="#bd93f9"`) {
		t.Error("hub node not rendered blank in the hub accent")
	}
}

func TestGenerateDOTTitle(t *testing.T) {
	e := NewEngine(testViewport())
	e.Initialize(nil)

	out := GenerateDOT(e, "Session orbit")
	if !strings.Contains(out, `label="Session orbit";`) {
		t.Error("title not set as the graph label")
	}
	if !strings.Contains(out, `labelloc="t";`) {
		t.Error("title not anchored to the top")
	}

	if strings.Contains(GenerateDOT(e, ""), "labelloc") {
		t.Error("untitled graph still sets labelloc")
	}
}

func TestGenerateDOTFlipsY(t *testing.T) {
	e := NewEngine(testViewport())
	e.Initialize(makeEntities(1))

	// Logical y grows downward, DOT y grows upward: a node at the top
	// of a 160-high viewport sits at 160/20 = 8 neato inches
	n := e.Node("sess-0")
	n.X = 20
	n.Y = 0

	out := GenerateDOT(e, "")
	if !strings.Contains(out, `pos="1.00,8.00!"`) {
		t.Errorf("top-of-viewport node position wrong:\n%s", out)
	}
}

func TestGenerateDOTEscapesLabels(t *testing.T) {
	e := NewEngine(testViewport())
	e.Initialize(makeEntities(1))
	e.Node("sess-0").Entity.DisplayName = `say "hi" \ bye`

	out := GenerateDOT(e, `title "quoted"`)
	if !strings.Contains(out, `label="say \"hi\" \\ bye"`) {
		t.Error("item label not escaped")
	}
	if !strings.Contains(out, `label="title \"quoted\"";`) {
		t.Error("graph title not escaped")
	}
}

func TestGenerateDOTProximityStyle(t *testing.T) {
	e := NewEngine(testViewport())
	e.Initialize(makeEntities(2))

	// Park the two items well within the proximity threshold
	e.Node("sess-0").X, e.Node("sess-0").Y = 40, 40
	e.Node("sess-1").X, e.Node("sess-1").Y = 60, 40

	out := GenerateDOT(e, "")
	if !strings.Contains(out, `"sess-0" -- "sess-1" [style=dotted];`) {
		t.Error("proximity edge not rendered dotted")
	}
}

func TestWriteDOT(t *testing.T) {
	var buf bytes.Buffer
	opts := SnapshotOptions{Width: 240, Height: 160, Steps: 20}
	if err := WriteDOT(&buf, makeEntities(3), opts); err != nil {
		t.Fatalf("WriteDOT: %v", err)
	}

	out := buf.String()
	for _, id := range []string{"sess-0", "sess-1", "sess-2"} {
		if !strings.Contains(out, `"`+id+`"`) {
			t.Errorf("output missing node %q", id)
		}
	}
}

func TestEscapeDOT(t *testing.T) {
	if got := escapeDOT("plain"); got != "plain" {
		t.Errorf("escapeDOT(plain) = %q", got)
	}
	if got := escapeDOT(`a"b`); got != `a\"b` {
		t.Errorf("escapeDOT quote = %q", got)
	}
	if got := escapeDOT(`a\b`); got != `a\\b` {
		t.Errorf("escapeDOT backslash = %q", got)
	}
}
