package storage

import "encoding/binary"

// Header lives at page offset 0 and never moves, so the root can always be
// found through it after the root splits.
type Header struct {
	RootOffset PageOffset
}

const rootOffset int = 0

func NewHeader(root PageOffset) *Header {
	return &Header{RootOffset: root}
}

func (h *Header) Encode(p *Page) {
	p.reset()
	binary.LittleEndian.PutUint32(p[rootOffset:rootOffset+OffsetSize], uint32(h.RootOffset))
}

func DecodeHeader(p *Page) *Header {
	return &Header{
		RootOffset: PageOffset(binary.LittleEndian.Uint32(p[rootOffset : rootOffset+OffsetSize])),
	}
}
