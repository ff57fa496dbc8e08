// Package viz renders a simulation World in the terminal.
//
// The package implements a live view using the Bubble Tea framework:
//
//   - [Model]: the interactive view, ticking the world at the configured rate
//   - [Renderer]: paints bodies, trails and overlays onto a [Canvas]
//   - [Canvas]: Braille-based pixel canvas with per-cell colour
//   - Theme selection with 5 built-in HUD colour schemes
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Generate a new system
//	C     - Clear the station trail
//	F     - Random impulse
//	V / G - Toggle force vectors / gravity grid
//	0     - Reset camera
//	I     - Toggle info panel
//	T     - Cycle color themes
//	?     - Show help overlay
//
// Left click fires toward the cursor, right drag pans and the wheel zooms.
package viz
