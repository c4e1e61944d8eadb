package orbit

// Viewport describes the logical drawing surface and its backing-store
// density. All physics, hit-testing, and layout math use logical units;
// only the renderer's backing image is scaled by PixelRatio. Mixing the
// two spaces is a bug: feeding device pixels into the engine drives
// every node toward one corner on dense displays.
type Viewport struct {
	Width      float64
	Height     float64
	PixelRatio float64
}

// Center returns the logical centre of the viewport.
func (v Viewport) Center() (float64, float64) {
	return v.Width / 2, v.Height / 2
}

// DeviceWidth returns the backing-store width in device pixels.
func (v Viewport) DeviceWidth() int {
	return int(v.Width * v.PixelRatio)
}

// DeviceHeight returns the backing-store height in device pixels.
func (v Viewport) DeviceHeight() int {
	return int(v.Height * v.PixelRatio)
}
