// Package analysis provides post-hoc analysis of simulation runs.
//
// The package characterizes recorded or freshly stepped trajectories:
//
//   - [PowerSpectrum]: one-sided magnitude spectrum of a coordinate series
//   - [GeneratePhasePortrait]: position-velocity trajectory of one body
//   - [PortraitFromSeries]: the same portrait from stored run columns
//
// # Oscillation Detection
//
// A body bouncing between partners shows up as a sharp spectral peak at
// the bounce frequency:
//
//	sp := analysis.PowerSpectrum(xs, 60)
//	peaks := sp.Peaks(3)
package analysis
