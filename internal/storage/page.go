package storage

import "lukechampine.com/uint128"

// Pages are fixed 4096-byte buffers. Offset 0 always holds the Header, every
// other page is a node whose first byte is the type tag.
//
// Node layout (little-endian):
//   - Byte 0:       type tag (0 = internal, 1 = leaf)
//   - Bytes 1-7:    reserved
//   - Bytes 8-9:    id count (uint16)
//   - Bytes 10-15:  reserved
//   - Bytes 16-:    ids, 16 bytes each
//   - Internal only, from byte 3264: child offsets, 4 bytes each
const (
	PageSize  = 4096
	PageAlign = 64
)

// ID is the 128-bit identifier stored in the set.
type ID = uint128.Uint128

const IDSize = 16

type PageType uint8

const (
	PageTypeInternal PageType = iota
	PageTypeLeaf
)

func (pt PageType) String() string {
	switch pt {
	case PageTypeInternal:
		return "Internal"
	case PageTypeLeaf:
		return "Leaf"
	default:
		return "Unknown"
	}
}

// PageOffset is an index into the page table.
type PageOffset uint32

const (
	HeaderOffset PageOffset = 0
	NullOffset   PageOffset = 0xFFFFFFFF
)

const OffsetSize = 4

const (
	LeafNodeMaxLen     = 255
	InternalNodeMaxLen = 203
)

const (
	typeOffset     int = 0
	countOffset    int = 8
	idsOffset      int = 16
	childrenOffset     = idsOffset + InternalNodeMaxLen*IDSize

	headerSize       = OffsetSize
	leafNodeSize     = idsOffset + LeafNodeMaxLen*IDSize
	internalNodeSize = childrenOffset + (InternalNodeMaxLen+1)*OffsetSize
)

// Layout checks: a leaf fills the page exactly, an internal node fits and has
// no room for one more key and child.
const (
	_ = uint(PageSize - leafNodeSize)
	_ = uint(leafNodeSize - PageSize)
	_ = uint(PageSize - internalNodeSize)
	_ = uint(internalNodeSize + IDSize + OffsetSize - PageSize - 1)
	_ = uint(PageSize - headerSize)
)

type Page [PageSize]byte

// NewPage allocates a zeroed page. Objects of PageSize bytes come from the
// runtime's page-sized size class, so the buffer is PageAlign aligned.
func NewPage() *Page {
	return new(Page)
}

func (p *Page) Type() PageType {
	return PageType(p[typeOffset])
}

func (p *Page) IsLeaf() bool {
	return p.Type() == PageTypeLeaf
}

func (p *Page) reset() {
	*p = Page{}
}

func putID(b []byte, id ID) {
	id.PutBytes(b[:IDSize])
}

func readID(b []byte) ID {
	return uint128.FromBytes(b[:IDSize])
}
