package orbit

import (
	"fmt"
	"io"
	"strings"

	"github.com/ha1tch/orbview/pkg/session"
)

// dotPosScale converts logical units to neato inches.
const dotPosScale = 1.0 / 20

// GenerateDOT converts the engine's layout to Graphviz DOT with pinned
// neato positions, so rendered output matches the settled view.
func GenerateDOT(e *Engine, title string) string {
	var sb strings.Builder

	sb.WriteString("graph orbview {\n")
	sb.WriteString("    layout=neato;\n")
	sb.WriteString("    bgcolor=\"#1e1e2e\";\n")
	sb.WriteString("    node [fontname=\"Helvetica\", fontsize=10, style=filled, fontcolor=\"#1e1e2e\"];\n")
	sb.WriteString("    edge [color=\"#6b80bf\"];\n")
	sb.WriteString("\n")

	if title != "" {
		sb.WriteString("    labelloc=\"t\";\n")
		sb.WriteString("    fontcolor=\"#f8f8f2\";\n")
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", escapeDOT(title)))
		sb.WriteString("\n")
	}

	vp := e.Viewport()
	pos := func(n *Node) string {
		// DOT's y axis points up
		return fmt.Sprintf("%.2f,%.2f!", n.X*dotPosScale, (vp.Height-n.Y)*dotPosScale)
	}

	for _, n := range e.Nodes() {
		if n.Kind == KindHub {
			sb.WriteString(fmt.Sprintf("    \"%s\" [shape=circle, width=0.8, label=\"\", fillcolor=\"%s\", pos=\"%s\"];\n",
				escapeDOT(n.ID), cssColor(baseColor(n)), pos(n)))
			continue
		}
		label := n.ID
		if n.Entity != nil {
			label = n.Entity.DisplayName
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" [shape=circle, width=0.5, label=\"%s\", fillcolor=\"%s\", pos=\"%s\"];\n",
			escapeDOT(n.ID), escapeDOT(truncateLabel(label, 22)), cssColor(baseColor(n)), pos(n)))
	}
	sb.WriteString("\n")

	for _, c := range DeriveConnections(e.Nodes()) {
		if c.Hub {
			sb.WriteString(fmt.Sprintf("    \"%s\" -- \"%s\";\n", escapeDOT(c.From.ID), escapeDOT(c.To.ID)))
		} else {
			sb.WriteString(fmt.Sprintf("    \"%s\" -- \"%s\" [style=dotted];\n", escapeDOT(c.From.ID), escapeDOT(c.To.ID)))
		}
	}

	sb.WriteString("}\n")

	return sb.String()
}

// WriteDOT lays the entities out from scratch, settles, and writes the
// layout as a DOT document.
func WriteDOT(w io.Writer, entities []session.Entity, opts SnapshotOptions) error {
	vp := Viewport{Width: float64(opts.Width), Height: float64(opts.Height), PixelRatio: 1}
	e := NewEngine(vp)
	e.Initialize(entities)
	Settle(e, opts.Steps)

	_, err := io.WriteString(w, GenerateDOT(e, opts.Title))
	return err
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
