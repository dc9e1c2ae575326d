// Package viz plays sort traces in the terminal.
//
// The player is a Bubble Tea program that pulls one step per tick from a
// trace generator and draws it as colored Braille bars:
//
//   - [Player]: algorithm menu plus the playback view
//   - [Canvas]: Braille-based pixel canvas, one bar per character column
//   - Themes derived from the render palettes
//
// # Key Bindings
//
//	Space   - Pause/Resume playback
//	N/Right - Single step while paused
//	+/-     - Faster/slower
//	R       - Restart the trace from scratch
//	T       - Cycle color themes
//	Esc     - Back to the algorithm menu
//	Q       - Quit
//
// The player never looks ahead or back in the trace; restarting builds a new
// generator over the same input.
package viz
