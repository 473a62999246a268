package storage

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// LeafNode holds the set's identifiers sorted ascending. Equal ids are kept,
// a repeated insert lands after the existing occurrences.
type LeafNode struct {
	count uint16
	ids   [LeafNodeMaxLen]ID
}

func NewLeafNode() *LeafNode {
	return &LeafNode{}
}

func newLeafNodeFromIDs(sorted []ID) *LeafNode {
	if len(sorted) > LeafNodeMaxLen {
		panic(fmt.Sprintf("newLeafNodeFromIDs: %d ids exceed capacity %d", len(sorted), LeafNodeMaxLen))
	}

	leaf := NewLeafNode()
	leaf.count = uint16(len(sorted))
	copy(leaf.ids[:], sorted)
	return leaf
}

func (n *LeafNode) Len() int {
	return int(n.count)
}

// IDs returns the live ids. The slice aliases the node.
func (n *LeafNode) IDs() []ID {
	return n.ids[:n.count]
}

func (n *LeafNode) IsFull() bool {
	return n.count == LeafNodeMaxLen
}

// IndexToInsert returns the first position holding an id greater than id.
func (n *LeafNode) IndexToInsert(id ID) int {
	return sort.Search(int(n.count), func(i int) bool {
		return n.ids[i].Cmp(id) > 0
	})
}

func (n *LeafNode) Contains(id ID) bool {
	i := sort.Search(int(n.count), func(i int) bool {
		return n.ids[i].Cmp(id) >= 0
	})
	return i < int(n.count) && n.ids[i].Equals(id)
}

// Count returns how many times id is stored in this leaf.
func (n *LeafNode) Count(id ID) int {
	lo := sort.Search(int(n.count), func(i int) bool {
		return n.ids[i].Cmp(id) >= 0
	})
	return n.IndexToInsert(id) - lo
}

// Only call on a leaf that is not full
func (n *LeafNode) Insert(id ID) {
	if n.IsFull() {
		panic("LeafNode.Insert: leaf is full")
	}

	idx := n.IndexToInsert(id)
	copy(n.ids[idx+1:n.count+1], n.ids[idx:n.count])
	n.ids[idx] = id
	n.count++
}

// InsertAndSplit adds id to a full leaf and splits the 256 ids in half. The
// receiver keeps the lower half in place; the upper half is returned as a new
// leaf together with its first id, which the parent uses as separator.
func (n *LeafNode) InsertAndSplit(id ID) (*LeafNode, ID) {
	if !n.IsFull() {
		panic("LeafNode.InsertAndSplit: leaf is not full")
	}

	idx := n.IndexToInsert(id)

	var all [LeafNodeMaxLen + 1]ID
	copy(all[:idx], n.ids[:idx])
	all[idx] = id
	copy(all[idx+1:], n.ids[idx:])

	mid := len(all) / 2
	right := newLeafNodeFromIDs(all[mid:])
	*n = *newLeafNodeFromIDs(all[:mid])

	return right, right.ids[0]
}

func (n *LeafNode) Encode(p *Page) {
	p.reset()
	p[typeOffset] = byte(PageTypeLeaf)
	binary.LittleEndian.PutUint16(p[countOffset:countOffset+2], n.count)

	for i := 0; i < int(n.count); i++ {
		off := idsOffset + i*IDSize
		putID(p[off:], n.ids[i])
	}
}

func decodeLeafNode(p *Page) (*LeafNode, error) {
	if p.Type() != PageTypeLeaf {
		return nil, fmt.Errorf("decodeLeafNode: tag %d: %w", p[typeOffset], ErrCorruptTree)
	}

	count := binary.LittleEndian.Uint16(p[countOffset : countOffset+2])
	if count > LeafNodeMaxLen {
		return nil, fmt.Errorf("decodeLeafNode: count %d: %w: %w", count, ErrCorruptTree, ErrPageFull)
	}

	leaf := &LeafNode{count: count}
	for i := 0; i < int(count); i++ {
		leaf.ids[i] = readID(p[idsOffset+i*IDSize:])
	}
	return leaf, nil
}
