// Package buffer implements the pure, rune-accurate document model.
//
// Coordinates are 0-based (Row, Col) in runes.
// Ranges are half-open selections in document coordinates: [Start, End).
// Absolute offsets count runes, with each line break counted as one rune.
package buffer
