package storage

import (
	"fmt"

	"go.idset/internal/logger"
)

// IDSet is an ordered set of 128-bit ids stored as a paged B+ tree. Page 0 is
// the header pointing at the root; the tree only grows, one page per split.
//
// Repeated inserts of the same id are kept, so the set behaves as a multiset
// (see Count). An IDSet is not safe for concurrent use.
type IDSet struct {
	pager *Pager
	log   *logger.Logger
	size  int
}

// New returns an empty set with no node cache and no logging.
func New() *IDSet {
	return NewIDSet(nil, nil)
}

// NewIDSet returns an empty set: a header at page 0 pointing at an empty root
// leaf at page 1. cache and log may be nil.
func NewIDSet(cache *NodeCache, log *logger.Logger) *IDSet {
	if log == nil {
		log = logger.Discard()
	}

	pager := NewPager(cache, log)
	pager.AllocateNode(NewHeader(1))
	pager.AllocateNode(NewLeafNode())

	return &IDSet{
		pager: pager,
		log:   log,
	}
}

// Len returns the number of ids inserted, counting repeats.
func (s *IDSet) Len() int {
	return s.size
}

func (s *IDSet) NumPages() int {
	return s.pager.NumPages()
}

func (s *IDSet) RootOffset() (PageOffset, error) {
	header, err := s.pager.readHeader()
	if err != nil {
		return NullOffset, err
	}
	return header.RootOffset, nil
}

func (s *IDSet) Contains(id ID) (bool, error) {
	_, leaf, _, err := s.findLeafNodeToInsert(id)
	if err != nil {
		return false, fmt.Errorf("Contains: %w", err)
	}
	return leaf.Contains(id), nil
}

// Count returns how many times id was inserted. A leaf split keeps the
// separator in the right leaf, so equal ids may sit on both sides of a
// separator; every child whose range can hold id is searched.
func (s *IDSet) Count(id ID) (int, error) {
	root, err := s.RootOffset()
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}

	total := 0
	queue := []PageOffset{root}
	for len(queue) > 0 {
		off := queue[0]
		queue = queue[1:]

		n, err := s.pager.ReadNode(off)
		if err != nil {
			return 0, fmt.Errorf("Count: %w", err)
		}

		switch node := n.(type) {
		case *LeafNode:
			total += node.Count(id)
		case *InternalNode:
			keys := node.Keys()
			for i, child := range node.Children() {
				if i > 0 && keys[i-1].Cmp(id) > 0 {
					continue
				}
				if i < len(keys) && keys[i].Cmp(id) < 0 {
					continue
				}
				queue = append(queue, child)
			}
		default:
			return 0, fmt.Errorf("Count: page %d: %w", off, ErrCorruptTree)
		}
	}
	return total, nil
}

// Height returns the number of levels from the root down to the leaves.
func (s *IDSet) Height() (int, error) {
	off, err := s.RootOffset()
	if err != nil {
		return 0, err
	}

	height := 1
	for {
		n, err := s.pager.ReadNode(off)
		if err != nil {
			return 0, err
		}
		internal, ok := n.(*InternalNode)
		if !ok {
			return height, nil
		}
		if height > s.pager.NumPages() {
			return 0, fmt.Errorf("Height: %w", ErrCorruptTree)
		}
		off = internal.Children()[0]
		height++
	}
}
