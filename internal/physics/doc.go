// Package physics provides the body registry and the gravity integrator.
//
// A simulation is a slice of [*Body] values. Static bodies attract but never
// move; dynamic bodies are advanced once per tick by [Gravity.Advance]:
//
//   - [Body]: mass point with radius, static flag and bounded [Trail]
//   - [Gravity]: pairwise attraction with a one-unit distance floor
//   - [Impulse]: instantaneous thruster kick returning the exhaust heading
//
// # Ticks
//
// There is no time step. One call to [Gravity.Advance] is one tick and the
// accumulated acceleration is added to the velocity directly:
//
//	g := physics.NewGravity(cfg.G)
//	for range ticks {
//	    g.Advance(bodies)
//	}
package physics
