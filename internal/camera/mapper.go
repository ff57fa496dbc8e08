package camera

// WorldToScreen maps a world point into a w×h viewport.
func WorldToScreen(x, y float64, c Camera, w, h float64) (float64, float64) {
	sx := (x-c.X)*c.Scale + w/2
	sy := (y-c.Y)*c.Scale + h/2
	return sx, sy
}

// ScreenToWorld is the inverse of WorldToScreen.
func ScreenToWorld(sx, sy float64, c Camera, w, h float64) (float64, float64) {
	x := (sx-w/2)/c.Scale + c.X
	y := (sy-h/2)/c.Scale + c.Y
	return x, y
}
