// Package mdfence detects fenced code regions in markdown documents and swaps
// editor capabilities (highlighting and completion) as the cursor moves
// between prose and code.
//
// The core lives in the fence, capability, detector and completion packages.
// The editor package provides a Bubble Tea editing surface and the session
// package wires the two together.
package mdfence
