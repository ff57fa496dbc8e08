// Package sim drives one simulation instance tick by tick.
//
// A [World] owns the body registry, the particle system and the camera.
// Input methods ([World.Thrust], [World.Zoom], [World.Pan], ...) take effect
// immediately, so everything called between two ticks is applied before the
// next [World.Tick]. A tick then integrates gravity and advances particles,
// both gated by pause. Renderers only read.
//
// # Thread Safety
//
// World is NOT thread-safe. The live view and headless runs each own one.
package sim
