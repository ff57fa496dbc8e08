// Package particles simulates thruster exhaust.
//
// A thrust episode starts with [System.Ignite] and lasts [EpisodeTicks]
// calls to [System.Tick]. While it runs, every tick emits [PerTick] puffs
// behind the emitter. When it ends, every live puff is dropped at once.
//
// # Tick order
//
// Each Tick first ages and compacts the existing particles, then counts the
// episode down (clearing everything on expiry), then emits. Freshly emitted
// particles are therefore observed with their full life, and a particle
// emitted with life L is gone after exactly L further ticks. The tick on
// which an episode expires still emits one final batch after the clear.
//
// All randomness is drawn from a [Source]; a seeded *rand.Rand satisfies it.
package particles
