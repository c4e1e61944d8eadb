// SVG snapshot export mirroring the raster renderer's look, with real
// radial gradients standing in for the ring ramps.

package orbit

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/ha1tch/orbview/pkg/session"
)

// WriteSVG lays the entities out from scratch, settles, and writes the
// frame as an SVG document.
func WriteSVG(w io.Writer, entities []session.Entity, opts SnapshotOptions) error {
	vp := Viewport{Width: float64(opts.Width), Height: float64(opts.Height), PixelRatio: 1}
	e := NewEngine(vp)
	e.Initialize(entities)
	Settle(e, opts.Steps)
	return RenderSVG(w, e, opts)
}

// RenderSVG writes the engine's current layout as an SVG document,
// fitted into the target size preserving aspect.
func RenderSVG(w io.Writer, e *Engine, opts SnapshotOptions) error {
	vp := e.Viewport()
	if vp.Width <= 0 || vp.Height <= 0 {
		return fmt.Errorf("render svg: empty viewport")
	}

	fit := math.Min(float64(opts.Width)/vp.Width, float64(opts.Height)/vp.Height)
	width := int(vp.Width * fit)
	height := int(vp.Height * fit)
	nodes := e.Nodes()

	canvas := svg.New(w)
	canvas.Start(width, height)

	canvas.Def()
	for _, n := range nodes {
		discGradient(canvas, n)
	}
	canvas.DefEnd()

	canvas.Rect(0, 0, width, height, "fill:"+cssColor(canvasBg))

	conns := DeriveConnections(nodes)
	for _, c := range conns {
		if c.Hub {
			drawSpokeSVG(canvas, c, fit)
		}
	}
	for _, c := range conns {
		if !c.Hub {
			drawProximitySVG(canvas, c, fit)
		}
	}

	for _, n := range nodes {
		x := int(n.X * fit)
		y := int(n.Y * fit)
		r := int(n.Radius * fit)
		canvas.Circle(x, y, r, fmt.Sprintf(
			"fill:url(#%s);stroke:%s;stroke-opacity:0.63;stroke-width:%.1f",
			discGradientID(n), cssColor(baseColor(n)), 1.2*fit))

		if opts.Labels && n.Entity != nil {
			canvas.Text(x, y+r+14, truncateLabel(n.Entity.DisplayName, 22),
				fmt.Sprintf("fill:%s;font-size:12px;font-family:system-ui,sans-serif;text-anchor:middle", cssColor(labelInk)))
		}
	}

	if opts.Title != "" {
		canvas.Text(width/2, 24, opts.Title,
			fmt.Sprintf("fill:%s;font-size:16px;font-family:system-ui,sans-serif;text-anchor:middle", cssColor(labelInk)))
	}

	canvas.End()
	return nil
}

func discGradientID(n *Node) string {
	return "disc-" + n.ID
}

// discGradient defines a node's radial fill, lit from the upper left
// using the same Lab ramp as the raster renderer.
func discGradient(canvas *svg.SVG, n *Node) {
	ramp := discRamp(baseColor(n), bucketIdle, discRings)
	core := ramp[len(ramp)-1]
	rim := ramp[0]
	canvas.RadialGradient(discGradientID(n), 50, 50, 55, 38, 38, []svg.Offcolor{
		{Offset: 0, Color: cssColor(core), Opacity: 1},
		{Offset: 100, Color: cssColor(rim), Opacity: 1},
	})
}

func drawSpokeSVG(canvas *svg.SVG, c Connection, fit float64) {
	ends := lineEndpoints(c.To)
	op := float64(spokeAlpha) / 255

	x1, y1 := int(c.From.X*fit), int(c.From.Y*fit)
	x2, y2 := int(c.To.X*fit), int(c.To.Y*fit)
	mx, my := (x1+x2)/2, (y1+y2)/2

	style := "stroke:%s;stroke-width:%.1f;stroke-opacity:%.2f;stroke-linecap:round"
	canvas.Line(x1, y1, mx, my, fmt.Sprintf(style, cssColor(ends[0]), spokeWidth*fit, op))
	canvas.Line(mx, my, x2, y2, fmt.Sprintf(style, cssColor(ends[1]), spokeWidth*fit, op))
}

func drawProximitySVG(canvas *svg.SVG, c Connection, fit float64) {
	op := float64(proximityAlpha) / 255 * c.Strength
	if op <= 0 {
		return
	}
	canvas.Line(int(c.From.X*fit), int(c.From.Y*fit), int(c.To.X*fit), int(c.To.Y*fit),
		fmt.Sprintf("stroke:%s;stroke-width:%.1f;stroke-opacity:%.2f", cssColor(spokeLine), proximityWidth*fit, op))
}

func cssColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
