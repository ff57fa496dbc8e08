// Package analysis characterises recorded orbits.
//
//   - [PowerSpectrum]: magnitude spectrum of a series, zero-padded by the caller
//   - [DominantPeriod]: strongest non-DC period of a series, in samples
//   - [Revolutions]: signed turns around a centre from a sequence of bearings
//
// A bound orbit shows up as a clear peak in the distance spectrum:
//
//	period, ok := analysis.DominantPeriod(distances)
//	if ok {
//	    // one radial oscillation every period ticks
//	}
package analysis
