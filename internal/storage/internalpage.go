package storage

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// InternalNode routes descent: children[i] holds keys below ids[i], the last
// live child holds keys at or above the last separator.
type InternalNode struct {
	count    uint16
	ids      [InternalNodeMaxLen]ID
	children [InternalNodeMaxLen + 1]PageOffset
}

// NewInternalNode builds the one-key, two-child node used as a new root.
func NewInternalNode(center ID, left, right PageOffset) *InternalNode {
	return newInternalNodeFromIDs([]ID{center}, []PageOffset{left, right})
}

func newInternalNodeFromIDs(ids []ID, children []PageOffset) *InternalNode {
	if len(ids)+1 != len(children) {
		panic(fmt.Sprintf("newInternalNodeFromIDs: %d ids need %d children, got %d", len(ids), len(ids)+1, len(children)))
	}
	if len(ids) > InternalNodeMaxLen {
		panic(fmt.Sprintf("newInternalNodeFromIDs: %d ids exceed capacity %d", len(ids), InternalNodeMaxLen))
	}

	node := &InternalNode{count: uint16(len(ids))}
	copy(node.ids[:], ids)
	for i := range node.children {
		node.children[i] = NullOffset
	}
	copy(node.children[:], children)
	return node
}

func (n *InternalNode) Len() int {
	return int(n.count)
}

// Keys returns the live separators. The slice aliases the node.
func (n *InternalNode) Keys() []ID {
	return n.ids[:n.count]
}

// Children returns the count+1 live child offsets. The slice aliases the node.
func (n *InternalNode) Children() []PageOffset {
	return n.children[:n.count+1]
}

func (n *InternalNode) IsFull() bool {
	return n.count == InternalNodeMaxLen
}

func (n *InternalNode) indexToInsert(id ID) int {
	return sort.Search(int(n.count), func(i int) bool {
		return n.ids[i].Cmp(id) > 0
	})
}

// FindOffsetToInsert returns the child whose subtree id belongs to.
func (n *InternalNode) FindOffsetToInsert(id ID) PageOffset {
	return n.children[n.indexToInsert(id)]
}

// Insert places id at its sorted position and right immediately after it.
// Only call on a node that is not full.
func (n *InternalNode) Insert(id ID, right PageOffset) {
	if n.IsFull() {
		panic("InternalNode.Insert: node is full")
	}

	idx := n.indexToInsert(id)
	count := int(n.count)

	copy(n.ids[idx+1:count+1], n.ids[idx:count])
	copy(n.children[idx+2:count+2], n.children[idx+1:count+1])

	n.ids[idx] = id
	n.children[idx+1] = right
	n.count++
}

// InsertSplit adds (id, right) to a full node giving 204 keys and 205
// children, then promotes the key at index 102. The receiver keeps the 102
// keys and 103 children to its left; the 101 keys and 102 children to its
// right move to the returned node. The promoted key stays in neither half.
func (n *InternalNode) InsertSplit(id ID, right PageOffset) (*InternalNode, ID) {
	if !n.IsFull() {
		panic("InternalNode.InsertSplit: node is not full")
	}

	idx := n.indexToInsert(id)

	var ids [InternalNodeMaxLen + 1]ID
	copy(ids[:idx], n.ids[:idx])
	ids[idx] = id
	copy(ids[idx+1:], n.ids[idx:])

	var children [InternalNodeMaxLen + 2]PageOffset
	copy(children[:idx+1], n.children[:idx+1])
	children[idx+1] = right
	copy(children[idx+2:], n.children[idx+1:])

	center := len(ids) / 2
	centerID := ids[center]

	rightNode := newInternalNodeFromIDs(ids[center+1:], children[center+1:])
	*n = *newInternalNodeFromIDs(ids[:center], children[:center+1])

	return rightNode, centerID
}

func (n *InternalNode) Encode(p *Page) {
	p.reset()
	p[typeOffset] = byte(PageTypeInternal)
	binary.LittleEndian.PutUint16(p[countOffset:countOffset+2], n.count)

	for i := 0; i < int(n.count); i++ {
		putID(p[idsOffset+i*IDSize:], n.ids[i])
	}

	for i, child := range n.children {
		off := childrenOffset + i*OffsetSize
		binary.LittleEndian.PutUint32(p[off:off+OffsetSize], uint32(child))
	}
}

func decodeInternalNode(p *Page) (*InternalNode, error) {
	if p.Type() != PageTypeInternal {
		return nil, fmt.Errorf("decodeInternalNode: tag %d: %w", p[typeOffset], ErrCorruptTree)
	}

	count := binary.LittleEndian.Uint16(p[countOffset : countOffset+2])
	if count > InternalNodeMaxLen {
		return nil, fmt.Errorf("decodeInternalNode: count %d: %w: %w", count, ErrCorruptTree, ErrPageFull)
	}

	node := &InternalNode{count: count}
	for i := 0; i < int(count); i++ {
		node.ids[i] = readID(p[idsOffset+i*IDSize:])
	}
	for i := range node.children {
		off := childrenOffset + i*OffsetSize
		node.children[i] = PageOffset(binary.LittleEndian.Uint32(p[off : off+OffsetSize]))
	}
	return node, nil
}
