package orbit

import (
	"image"
	"image/color"
	"math"
	"time"

	"git.sr.ht/~sbinet/gg"
)

const (
	discRings  = 5
	glowLayers = 3
	glowStep   = 6.0 // logical units per glow layer

	glowPulseHz = 1.6 // hovered glow pulse frequency

	spokeAlpha      = 0x2e
	spokeAlphaHover = 0xa0
	spokeWidth      = 1.2
	spokeWidthHover = 2.0

	// Peak item-item line alpha stays below the spoke baseline so
	// proximity lines never shout over the hub structure.
	proximityAlpha = 0x28
	proximityWidth = 1.0
)

type rampKey struct {
	id     string
	bucket visualBucket
}

// Renderer draws the node set into an RGBA backing store sized
// logical × PixelRatio. One Scale transform on the gg context maps
// logical coordinates to device pixels; nothing else ever sees device
// units. Draw's only side effect is the backing image.
type Renderer struct {
	viewport Viewport
	img      *image.RGBA
	dc       *gg.Context

	// Disc ring ramps keyed by (node id, bucket) and spoke endpoint
	// colours keyed by node id. Entries are built on first use and
	// evicted when the node goes away.
	ramps     map[rampKey][]color.RGBA
	endpoints map[string][2]color.RGBA
}

// NewRenderer returns a renderer with a backing store allocated for
// the given viewport.
func NewRenderer(vp Viewport) *Renderer {
	r := &Renderer{
		ramps:     make(map[rampKey][]color.RGBA),
		endpoints: make(map[string][2]color.RGBA),
	}
	r.Resize(vp)
	return r
}

// Resize reallocates the backing store for a new viewport. Colour
// caches survive; they do not depend on surface size.
func (r *Renderer) Resize(vp Viewport) {
	r.viewport = vp
	w, h := vp.DeviceWidth(), vp.DeviceHeight()
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.dc = gg.NewContextForRGBA(r.img)
	r.dc.Scale(vp.PixelRatio, vp.PixelRatio)
}

// Image returns the backing store holding the last drawn frame.
func (r *Renderer) Image() *image.RGBA {
	return r.img
}

// Evict drops the cached colours for a removed node.
func (r *Renderer) Evict(id string) {
	delete(r.endpoints, id)
	for _, b := range []visualBucket{bucketIdle, bucketHover, bucketSelected} {
		delete(r.ramps, rampKey{id, b})
	}
}

// Draw renders one frame: background, hub spokes, proximity lines,
// then every node as a gradient disc with its glow. Node and
// interaction state are read, never written.
func (r *Renderer) Draw(nodes []*Node, inter Interaction, now time.Time) {
	r.dc.SetColor(canvasBg)
	r.dc.Clear()

	conns := DeriveConnections(nodes)
	for _, c := range conns {
		if c.Hub {
			r.drawSpoke(c, inter)
		}
	}
	for _, c := range conns {
		if !c.Hub {
			r.drawProximity(c)
		}
	}

	for _, n := range nodes {
		r.drawDisc(n, inter, now)
	}
}

// drawSpoke draws one hub-to-item line in two halves, hub tint shading
// into the item tint, brighter and wider while either end is active.
func (r *Renderer) drawSpoke(c Connection, inter Interaction) {
	ends, ok := r.endpoints[c.To.ID]
	if !ok {
		ends = lineEndpoints(c.To)
		r.endpoints[c.To.ID] = ends
	}

	alpha := uint8(spokeAlpha)
	width := float64(spokeWidth)
	if connectionActive(c, inter) {
		alpha = spokeAlphaHover
		width = spokeWidthHover
	}

	mx := (c.From.X + c.To.X) / 2
	my := (c.From.Y + c.To.Y) / 2

	r.setLineWidth(width)
	r.dc.SetColor(withAlpha(ends[0], alpha))
	r.dc.DrawLine(c.From.X, c.From.Y, mx, my)
	r.dc.Stroke()
	r.dc.SetColor(withAlpha(ends[1], alpha))
	r.dc.DrawLine(mx, my, c.To.X, c.To.Y)
	r.dc.Stroke()
}

func (r *Renderer) drawProximity(c Connection) {
	alpha := uint8(float64(proximityAlpha) * c.Strength)
	if alpha == 0 {
		return
	}
	r.setLineWidth(proximityWidth)
	r.dc.SetColor(withAlpha(spokeLine, alpha))
	r.dc.DrawLine(c.From.X, c.From.Y, c.To.X, c.To.Y)
	r.dc.Stroke()
}

func (r *Renderer) drawDisc(n *Node, inter Interaction, now time.Time) {
	bucket := bucketFor(n, inter)
	base := baseColor(n)

	// Glow under the active disc; only the hovered one pulses
	if bucket != bucketIdle {
		intensity := 0.7
		if bucket == bucketHover {
			phase := 2 * math.Pi * glowPulseHz * float64(now.UnixNano()) / float64(time.Second)
			intensity = 0.75 + 0.25*math.Sin(phase)
		}
		for i := glowLayers; i > 0; i-- {
			a := uint8(clamp(20*float64(i)*intensity, 0, 255))
			r.dc.SetColor(withAlpha(base, a))
			r.dc.DrawCircle(n.X, n.Y, n.Radius+float64(i)*glowStep)
			r.dc.Fill()
		}
	}

	ramp, ok := r.ramps[rampKey{n.ID, bucket}]
	if !ok {
		ramp = discRamp(base, bucket, discRings)
		r.ramps[rampKey{n.ID, bucket}] = ramp
	}

	// Rings are origin-centred so the cached ramp stays valid as the
	// node moves; the translate puts them in place.
	r.dc.Push()
	r.dc.Translate(n.X, n.Y)
	step := n.Radius / discRings
	for i, col := range ramp {
		r.dc.SetColor(col)
		r.dc.DrawCircle(0, -float64(i)*step*0.25, n.Radius-float64(i)*step)
		r.dc.Fill()
	}
	r.dc.Pop()

	r.setLineWidth(1.2)
	r.dc.SetColor(withAlpha(base, 0xa0))
	r.dc.DrawCircle(n.X, n.Y, n.Radius)
	r.dc.Stroke()
}

// connectionActive reports whether either endpoint is hovered or
// dragged, which brightens the spoke.
func connectionActive(c Connection, inter Interaction) bool {
	if inter.HoveredID != "" && (c.From.ID == inter.HoveredID || c.To.ID == inter.HoveredID) {
		return true
	}
	if inter.DraggedID != "" && (c.From.ID == inter.DraggedID || c.To.ID == inter.DraggedID) {
		return true
	}
	return false
}

// gg transforms path points but not stroke widths, so widths are
// scaled to device pixels by hand.
func (r *Renderer) setLineWidth(w float64) {
	r.dc.SetLineWidth(w * r.viewport.PixelRatio)
}
