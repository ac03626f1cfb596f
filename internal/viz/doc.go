// Package viz renders chains in the terminal.
//
// Static output uses asciigraph line plots and lipgloss-styled tables:
//
//   - [Trace]: sample trace of one coordinate, or several chains overlaid
//   - [ACF]: autocorrelation against lag
//   - [Histogram]: horizontal bar histogram of a marginal
//   - [Scatter]: Braille scatter of two coordinates on a [Canvas]
//
// [Replay] is a Bubble Tea program that steps through a stored chain.
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	←/→   - Step one sample back/forward
//	+/-   - Change playback speed
//	R     - Restart from the first sample
//	Q     - Quit
package viz
