// Package fence locates fenced code regions around a cursor offset.
//
// A fence opens on a line that, once trimmed, is three backticks optionally
// followed by a language word ("```go" or "``` go"), and closes on the next
// line that is exactly three backticks. Fences do not nest. A bare line of
// three backticks closes the fence open above it when read top-down, and opens
// an untagged fence otherwise.
//
// Locate is a pure function of (document, offset). Scanner caches marker
// classification across snapshots and only reclassifies when an edit touches
// a marker line.
package fence
