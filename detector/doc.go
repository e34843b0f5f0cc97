// Package detector decides when the editor must swap capability sets.
//
// A Detector remembers the last context it reported and emits a SwapCommand
// only when a position report lands in a different context. Repeated reports
// in the same context are no-ops, so cursor movement inside one fence does not
// rebuild highlighting or completion state.
package detector
