package buffer

type OffsetClampMode uint8

const (
	// OffsetError rejects offsets and positions outside the document.
	OffsetError OffsetClampMode = iota
	// OffsetClamp moves them onto the nearest valid value.
	OffsetClamp
)

type ConvertPolicy struct {
	ClampMode OffsetClampMode
}

// PosFromRuneOffset converts an absolute rune offset through the current
// snapshot.
func (b *Buffer) PosFromRuneOffset(off int, p ConvertPolicy) (Pos, bool) {
	s := b.Snapshot()
	switch p.ClampMode {
	case OffsetClamp:
		off = min(max(off, 0), s.Len())
	case OffsetError:
	default:
		return Pos{}, false
	}
	pos, err := s.PosFromOffset(off)
	return pos, err == nil
}

// RuneOffsetFromPos converts a row/column position through the current
// snapshot.
func (b *Buffer) RuneOffsetFromPos(pos Pos, p ConvertPolicy) (int, bool) {
	switch p.ClampMode {
	case OffsetClamp:
		pos = b.clampPos(pos)
	case OffsetError:
	default:
		return 0, false
	}
	off, err := b.Snapshot().OffsetFromPos(pos)
	return off, err == nil
}
