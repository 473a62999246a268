package storage

import "fmt"

// Node is the decoded form of a page: *Header, *LeafNode or *InternalNode.
type Node interface {
	Encode(p *Page)
}

// DecodePage interprets p by position: offset 0 is the header, any other
// offset is a leaf or internal node selected by the type tag.
func DecodePage(off PageOffset, p *Page) (Node, error) {
	if off == HeaderOffset {
		return DecodeHeader(p), nil
	}

	switch p.Type() {
	case PageTypeLeaf:
		return decodeLeafNode(p)
	case PageTypeInternal:
		return decodeInternalNode(p)
	default:
		return nil, fmt.Errorf("DecodePage: page %d has tag %d: %w", off, p[typeOffset], ErrCorruptTree)
	}
}
