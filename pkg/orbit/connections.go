package orbit

// proximityThreshold is the item-to-item distance, in logical units,
// under which a faint connection line is drawn between two items.
const proximityThreshold = 42.0

// Connection is one line to draw this frame. Hub connections link the
// hub to every item; proximity connections appear between item pairs
// that drift close together.
type Connection struct {
	From, To *Node
	Hub      bool

	// Strength is 0..1 and drives line opacity. Hub connections are
	// always 1; proximity connections fade with distance.
	Strength float64
}

// DeriveConnections computes the frame's connection list from scratch:
// hub spokes first, then proximity pairs in node order. Deriving fresh
// each frame keeps the list correct across node additions and removals
// with nothing to invalidate.
func DeriveConnections(nodes []*Node) []Connection {
	var hub *Node
	for _, n := range nodes {
		if n.Kind == KindHub {
			hub = n
			break
		}
	}

	var conns []Connection
	if hub != nil {
		for _, n := range nodes {
			if n.Kind != KindItem {
				continue
			}
			conns = append(conns, Connection{From: hub, To: n, Hub: true, Strength: 1})
		}
	}

	for i := 0; i < len(nodes); i++ {
		if nodes[i].Kind != KindItem {
			continue
		}
		for j := i + 1; j < len(nodes); j++ {
			if nodes[j].Kind != KindItem {
				continue
			}
			d := nodes[i].DistanceTo(nodes[j])
			if d >= proximityThreshold {
				continue
			}
			conns = append(conns, Connection{
				From:     nodes[i],
				To:       nodes[j],
				Strength: 1 - d/proximityThreshold,
			})
		}
	}
	return conns
}
