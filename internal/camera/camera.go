// Package camera holds the viewport offset and zoom, and the affine mapping
// between world and screen space.
package camera

import (
	"errors"
	"fmt"
	"math"
)

var ErrScaleBounds = errors.New("camera: invalid scale bounds")

// Camera is the world-space point shown at the centre of the screen and
// the zoom factor. Scale always stays within [MinScale, MaxScale].
type Camera struct {
	X, Y     float64
	Scale    float64
	MinScale float64
	MaxScale float64
}

// New returns a camera at the origin with the given initial scale.
func New(scale, minScale, maxScale float64) (*Camera, error) {
	if !(minScale > 0 && minScale <= maxScale) || math.IsInf(maxScale, 0) {
		return nil, fmt.Errorf("%w: min=%v max=%v", ErrScaleBounds, minScale, maxScale)
	}
	if !(minScale <= scale && scale <= maxScale) {
		return nil, fmt.Errorf("%w: scale %v outside [%v, %v]", ErrScaleBounds, scale, minScale, maxScale)
	}
	return &Camera{Scale: scale, MinScale: minScale, MaxScale: maxScale}, nil
}

// Zoom multiplies the scale by factor. A result outside the bounds is
// rejected and the camera is left unchanged.
func (c *Camera) Zoom(factor float64) bool {
	next := c.Scale * factor
	if !(c.MinScale <= next && next <= c.MaxScale) {
		return false
	}
	c.Scale = next
	return true
}

// Pan shifts the view by a screen-space drag. Dividing by the scale keeps
// the content under the cursor at any zoom.
func (c *Camera) Pan(dx, dy float64) {
	c.X -= dx / c.Scale
	c.Y -= dy / c.Scale
}

// Reset centres the view on the origin at scale 1, or at the nearest bound
// if 1 is not allowed.
func (c *Camera) Reset() {
	c.X, c.Y = 0, 0
	c.Scale = min(max(1.0, c.MinScale), c.MaxScale)
}
