package orbit

import (
	"github.com/ha1tch/orbview/pkg/session"
)

// HubID is the reserved id of the central hub node. Session ids never
// collide with it because the store generates UUIDs.
const HubID = "hub"

// NodeKind distinguishes the hub from orbiting items.
type NodeKind int

const (
	KindHub NodeKind = iota
	KindItem
)

// Node is one body in the diagram: the central hub or one session item.
// Positions and velocities are in logical units.
type Node struct {
	ID     string
	Kind   NodeKind
	X, Y   float64
	VX, VY float64
	Radius float64

	// Pinned is true only while the node is dragged. Pinned nodes are
	// excluded from integration but still repel their neighbours.
	Pinned bool

	// Entity holds the session behind an item node; nil for the hub.
	Entity *session.Entity
}

// Speed returns the magnitude of the node's velocity.
func (n *Node) Speed() float64 {
	return hypot(n.VX, n.VY)
}

// DistanceTo returns the distance between two node centres.
func (n *Node) DistanceTo(other *Node) float64 {
	return hypot(other.X-n.X, other.Y-n.Y)
}
