package analysis

import "math"

// Revolutions unwraps a sequence of bearings (radians) and returns the
// signed number of full turns, counter-clockwise in screen space positive.
func Revolutions(bearings []float64) float64 {
	if len(bearings) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(bearings); i++ {
		d := bearings[i] - bearings[i-1]
		for d > math.Pi {
			d -= 2 * math.Pi
		}
		for d < -math.Pi {
			d += 2 * math.Pi
		}
		total += d
	}
	return total / (2 * math.Pi)
}
