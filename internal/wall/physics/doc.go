// Package physics owns the gallery wall's simulation state: one [Object]
// per live media record, advanced by [World.Step] once per display frame.
//
// A step applies, in order, for every free object:
//
//   - semi-implicit Euler integration (position += velocity)
//   - per-frame damping
//   - boundary clamp and reflect, scaled by restitution
//   - one pass of pairwise separation with an equal-and-opposite impulse
//   - idle jitter, so the wall never looks static
//
// Held objects are driven directly by the input controller and skipped
// entirely. The math is tuned to look alive, not to be a rigid-body solver:
// separation runs a single pass and tiles may overlap between frames.
//
// World is single-threaded by design; the bubbletea update loop is the only
// caller.
package physics
