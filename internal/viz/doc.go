// Package viz renders running simulations in the terminal.
//
// The package implements a live view using the Bubble Tea framework:
//
//   - [Model]: Bubble Tea program advancing a session at 60 Hz
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//
// Bodies appear as circle outlines at their world radius, with a fading
// dot trail behind each one. A side panel tracks elapsed time, sub-step
// counts, carry and total energy.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	T     - Reverse the direction of time
//	R     - Reset to initial state
//	G     - Toggle gravity
//	+/-   - Zoom in/out
//	?     - Show help overlay
package viz
