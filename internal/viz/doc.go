// Package viz hosts sketches in the terminal.
//
// The package implements a TUI using the Bubble Tea framework:
//
//   - [Model]: runs one sketch, feeding it mouse gestures and ticks
//   - [Canvas]: Braille-based pixel canvas, coloured per cell
//   - [Surface]: draws sketch frames onto a Canvas
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset the sketch
//	C     - Toggle colour
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
