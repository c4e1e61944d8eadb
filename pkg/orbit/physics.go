package orbit

// Node sizes in logical units.
const (
	HubRadius  = 9.0
	ItemRadius = 5.5
)

// Physics holds the layout tuning constants. All values are in logical
// units; velocities are logical units per second.
type Physics struct {
	Repulsion       float64 // pair force = Repulsion / d²
	RepulsionCutoff float64 // pairs further apart than this are skipped
	CenterPull      float64 // item pull toward the viewport centre
	HubPull         float64 // hub restoring pull, stronger so it barely drifts
	OrbitPull       float64 // tangential force around the hub
	Damping         float64 // per-step velocity multiplier, below 1
	MaxVelocity     float64 // speed ceiling
	MinSeparation   float64 // soft target distance between items
	BoundaryMargin  float64 // clamp distance inside each viewport edge
	Bounce          float64 // velocity fraction kept when hitting the boundary
}

// DefaultPhysics returns the tuning used by the interactive viewer.
// Repulsion wins over centre pull at close range so the set spreads
// instead of collapsing; the cutoff is roughly three times the minimum
// separation so far-apart pairs cost nothing.
func DefaultPhysics() Physics {
	return Physics{
		Repulsion:       3000,
		RepulsionCutoff: 80,
		CenterPull:      0.08,
		HubPull:         0.22,
		OrbitPull:       6,
		Damping:         0.90,
		MaxVelocity:     80,
		MinSeparation:   26,
		BoundaryMargin:  12,
		Bounce:          0.3,
	}
}
