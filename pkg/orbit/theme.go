package orbit

import (
	"hash/fnv"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Canvas palette: dark blue-grey ground, soft purple hub, item hues
// derived per session id so a session keeps its colour across frames
// and refreshes.
var (
	canvasBg  = color.RGBA{0x1e, 0x1e, 0x2e, 0xff} // deep blue-grey
	hubBase   = color.RGBA{0xbd, 0x93, 0xf9, 0xff} // soft purple
	spokeLine = color.RGBA{0x6b, 0x80, 0xbf, 0xff} // desaturated blue
	rampCore  = color.RGBA{0xf8, 0xf8, 0xf2, 0xff} // off-white, disc highlight
	labelInk  = color.RGBA{0xf8, 0xf8, 0xf2, 0xff} // off-white
)

// visualBucket selects which cached disc gradient a node draws with.
type visualBucket int

const (
	bucketIdle visualBucket = iota
	bucketHover
	bucketSelected
)

// bucketFor maps a node's interaction state to its gradient bucket.
// A dragged node renders as hovered; hover wins over selection.
func bucketFor(n *Node, inter Interaction) visualBucket {
	if inter.HoveredID == n.ID || inter.DraggedID == n.ID {
		return bucketHover
	}
	if inter.SelectedID == n.ID {
		return bucketSelected
	}
	return bucketIdle
}

// baseColor returns the stable fill colour for a node: the hub accent,
// or a hue hashed from the session id.
func baseColor(n *Node) color.RGBA {
	if n.Kind == KindHub {
		return hubBase
	}
	h := fnv.New32a()
	h.Write([]byte(n.ID))
	hue := float64(h.Sum32() % 360)
	r, g, b := colorful.Hsv(hue, 0.55, 0.92).RGB255()
	return color.RGBA{r, g, b, 0xff}
}

// discRamp builds the ring colours for one disc, outermost first,
// blending in Lab space from a darkened rim to a lightened core so the
// disc reads as lit from within. Hover and selection brighten the whole
// ramp by different amounts.
func discRamp(base color.RGBA, bucket visualBucket, rings int) []color.RGBA {
	b, _ := colorful.MakeColor(base)
	bg, _ := colorful.MakeColor(canvasBg)
	core, _ := colorful.MakeColor(rampCore)

	rim := b.BlendLab(bg, 0.35)
	top := b.BlendLab(core, 0.4)
	switch bucket {
	case bucketHover:
		rim = b.BlendLab(bg, 0.1)
		top = b.BlendLab(core, 0.6)
	case bucketSelected:
		rim = b.BlendLab(bg, 0.2)
		top = b.BlendLab(core, 0.5)
	}

	ramp := make([]color.RGBA, rings)
	for i := range ramp {
		t := float64(i) / float64(rings-1)
		r, g, bl := rim.BlendLab(top, t).RGB255()
		ramp[i] = color.RGBA{r, g, bl, 0xff}
	}
	return ramp
}

// lineEndpoints returns the spoke gradient endpoints for an item id:
// hub tint at the hub end shading into the item's own colour.
func lineEndpoints(n *Node) [2]color.RGBA {
	return [2]color.RGBA{hubBase, baseColor(n)}
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	return color.RGBA{c.R, c.G, c.B, a}
}
