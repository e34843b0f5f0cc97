package fence

import (
	"sync"

	"github.com/iw2rmb/mdfence/buffer"
)

// Scanner answers Locate queries against a stream of snapshots of one
// document. It keeps the last marker classification and reuses it while edits
// leave marker lines alone. A Scanner is safe for concurrent use.
type Scanner struct {
	mu       sync.Mutex
	idx      *Index
	rebuilds int
	compared int
}

func NewScanner() *Scanner { return &Scanner{} }

// Locate has the same contract as the package-level Locate.
func (s *Scanner) Locate(doc *buffer.Snapshot, offset int) (Fence, bool, error) {
	return s.Index(doc).Locate(offset)
}

// Index returns the classification for doc, reusing the cached one when
// possible.
func (s *Scanner) Index(doc *buffer.Snapshot) *Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index(doc, 0, doc.LineCount()-1)
}

// IndexEdited is Index for a snapshot that one text change of the same buffer
// derived from the cached one, touching rows first..last of doc. When that
// holds only those rows are compared; otherwise it falls back to Index.
func (s *Scanner) IndexEdited(doc *buffer.Snapshot, first, last int) *Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idx == nil || !follows(s.idx.doc, doc) {
		first, last = 0, doc.LineCount()-1
	}
	return s.index(doc, first, last)
}

func (s *Scanner) index(doc *buffer.Snapshot, first, last int) *Index {
	switch {
	case s.idx == nil:
	case s.idx.doc == doc:
		return s.idx
	case s.markersUnchanged(doc, first, last):
		s.idx = s.idx.rebase(doc)
		return s.idx
	}
	s.idx = NewIndex(doc)
	s.rebuilds++
	return s.idx
}

// Rebuilds reports how many full classifications the scanner has run.
func (s *Scanner) Rebuilds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuilds
}

// RowsCompared reports how many rows the scanner has compared against a cached
// snapshot.
func (s *Scanner) RowsCompared() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compared
}

// Reset drops the cached classification.
func (s *Scanner) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idx = nil
}

// markersUnchanged reports whether doc has the same row count as the indexed
// snapshot and every changed row in first..last is a non-marker line before
// and after. Rows outside the range are taken as equal.
func (s *Scanner) markersUnchanged(doc *buffer.Snapshot, first, last int) bool {
	ix := s.idx
	prev := ix.doc
	if prev.LineCount() != doc.LineCount() {
		return false
	}
	first = max(first, 0)
	last = min(last, doc.LineCount()-1)
	for row := first; row <= last; row++ {
		s.compared++
		before, after := prev.Line(row), doc.Line(row)
		if before == after {
			continue
		}
		if ix.isMarkerRow(row) || mayBeMarker(before) || mayBeMarker(after) {
			return false
		}
	}
	return true
}

// follows reports whether doc is the text version right after prev's.
func follows(prev, doc *buffer.Snapshot) bool {
	return doc.Version() == prev.Version()+1
}
