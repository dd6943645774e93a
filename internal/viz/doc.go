// Package viz provides the terminal preview for effects.
//
// The preview is a Bubble Tea program: a [driver.Controller] draws each
// frame at the configured rate and a [Canvas] turns the inked pixels into
// braille, two dots wide and four tall per cell.
//
// # Key Bindings
//
//	Space     - Pause/Resume the frame (the clock keeps running)
//	Tab       - Next parameter, Shift+Tab for the previous one
//	Up/Down   - Step the selected parameter within its schema range
//	E         - Next effect; this reconstructs the controller
//	T         - Cycle color themes
//	?         - Show help overlay
package viz
