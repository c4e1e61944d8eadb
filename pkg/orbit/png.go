// Static PNG export: settles the simulation headlessly and renders one
// frame, supersampled then downsampled for smooth output.

package orbit

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"git.sr.ht/~sbinet/gg"

	"github.com/ha1tch/orbview/pkg/session"
)

// SnapshotOptions configures static export.
type SnapshotOptions struct {
	Width  int     // target width in pixels
	Height int     // target height in pixels
	Scale  float64 // supersampling factor before the downsample
	Steps  int     // settle iterations before the frame is taken
	Labels bool    // draw session names under the discs
	Title  string
}

// DefaultSnapshotOptions returns sensible defaults for export.
func DefaultSnapshotOptions() SnapshotOptions {
	return SnapshotOptions{
		Width:  800,
		Height: 600,
		Scale:  2,
		Steps:  600,
		Labels: true,
	}
}

// settleDT matches the interactive frame pace.
const settleDT = 1.0 / 30

// Settle advances the engine with no interaction until the layout has
// calmed down.
func Settle(e *Engine, steps int) {
	for i := 0; i < steps; i++ {
		e.Step(settleDT, Interaction{})
	}
}

// WritePNG lays the entities out from scratch, settles, and writes one
// frame as a PNG.
func WritePNG(w io.Writer, entities []session.Entity, opts SnapshotOptions) error {
	vp := Viewport{Width: float64(opts.Width), Height: float64(opts.Height), PixelRatio: 1}
	e := NewEngine(vp)
	e.Initialize(entities)
	Settle(e, opts.Steps)
	return RenderPNG(w, e, opts)
}

// RenderPNG writes the engine's current layout as a PNG frame. The
// logical viewport is fitted into the target size preserving aspect,
// so a live terminal-sized layout exports cleanly at image scale.
func RenderPNG(w io.Writer, e *Engine, opts SnapshotOptions) error {
	vp := e.Viewport()
	if vp.Width <= 0 || vp.Height <= 0 {
		return fmt.Errorf("render png: empty viewport")
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}

	fit := math.Min(float64(opts.Width)/vp.Width, float64(opts.Height)/vp.Height)
	super := vp
	super.PixelRatio = fit * opts.Scale

	r := NewRenderer(super)
	r.Draw(e.Nodes(), Interaction{}, time.Now())
	img := r.Image()

	if opts.Labels {
		drawNodeLabels(img, e.Nodes(), super.PixelRatio, opts.Scale)
	}
	if opts.Title != "" {
		drawTitle(img, opts.Title, opts.Scale)
	}

	// Downsample by the supersampling factor
	outW := int(vp.Width * fit)
	outH := int(vp.Height * fit)
	final := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.CatmullRom.Scale(final, final.Bounds(), img, img.Bounds(), draw.Over, nil)

	return png.Encode(w, final)
}

// labelFace builds a Go Regular face at the given point size.
func labelFace(size float64) font.Face {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err) // embedded font always parses
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		panic(err)
	}
	return face
}

// drawNodeLabels writes each session name under its disc. Positions
// are converted to device pixels by hand so glyph size is independent
// of the logical viewport.
func drawNodeLabels(img *image.RGBA, nodes []*Node, ratio, scale float64) {
	dc := gg.NewContextForRGBA(img)
	dc.SetFontFace(labelFace(11 * scale))
	dc.SetColor(labelInk)

	for _, n := range nodes {
		if n.Entity == nil {
			continue
		}
		name := truncateLabel(n.Entity.DisplayName, 22)
		x := n.X * ratio
		y := (n.Y+n.Radius)*ratio + 5*scale
		dc.DrawStringAnchored(name, x, y, 0.5, 1)
	}
}

func drawTitle(img *image.RGBA, title string, scale float64) {
	dc := gg.NewContextForRGBA(img)
	dc.SetFontFace(labelFace(14 * scale))
	dc.SetColor(labelInk)
	dc.DrawStringAnchored(title, float64(img.Bounds().Dx())/2, 24*scale, 0.5, 0.5)
}

func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
