// Package effect defines the contract every visual effect implements.
//
// An effect is a [Module] record of plain functions:
//
//   - Defaults: the full parameter set, internal keys included
//   - Schema: user-facing descriptors in display order
//   - Generate: one-shot SVG output
//   - Init: per-input precomputation into an opaque [State]
//   - DrawFrame: redraw of a [surface.Surface] at an elapsed time
//
// # Purity
//
// Init must not read the clock, and DrawFrame must depend only on its
// state and elapsed time. The standalone export re-runs each effect's
// Script (a JavaScript rendition of Init and DrawFrame) detached from this
// process, so state may not point back at the grid or any shared value.
//
// Generate and DrawFrame(Init(...), 0) place the same primitives.
package effect
