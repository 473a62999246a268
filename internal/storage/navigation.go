package storage

import "fmt"

// Stack of internal node offsets visited on the way down, root first. Split
// propagation pops the nearest parent first.
type ParentStack struct {
	items []PageOffset
}

func (s *ParentStack) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *ParentStack) Len() int {
	return len(s.items)
}

func (s *ParentStack) Push(off PageOffset) {
	s.items = append(s.items, off)
}

func (s *ParentStack) Pop() (PageOffset, bool) {
	if !s.IsEmpty() {
		off := s.items[len(s.items)-1]
		s.items = s.items[:len(s.items)-1]
		return off, true
	}
	return NullOffset, false
}

// Offsets returns the recorded ancestors, root first.
func (s *ParentStack) Offsets() []PageOffset {
	return append([]PageOffset(nil), s.items...)
}

// Single function to walk from the root to the leaf responsible for id,
// recording every internal node on the way
func (s *IDSet) findLeafNodeToInsert(id ID) (PageOffset, *LeafNode, *ParentStack, error) {
	header, err := s.pager.readHeader()
	if err != nil {
		return NullOffset, nil, nil, err
	}

	curr := header.RootOffset
	stack := &ParentStack{}

	for {
		// Every level adds a page, so a longer walk means a cycle
		if stack.Len() >= s.pager.NumPages() {
			s.log.Errorf("findLeafNodeToInsert: descent exceeded %d levels", stack.Len())
			return NullOffset, nil, nil, fmt.Errorf("findLeafNodeToInsert: cycle at page %d: %w", curr, ErrCorruptTree)
		}
		if curr == HeaderOffset {
			return NullOffset, nil, nil, fmt.Errorf("findLeafNodeToInsert: child points at header: %w", ErrCorruptTree)
		}

		n, err := s.pager.ReadNode(curr)
		if err != nil {
			return NullOffset, nil, nil, err
		}

		switch node := n.(type) {
		case *LeafNode:
			return curr, node, stack, nil

		case *InternalNode:
			stack.Push(curr)
			curr = node.FindOffsetToInsert(id)

		default:
			return NullOffset, nil, nil, fmt.Errorf("findLeafNodeToInsert: page %d: %w", curr, ErrCorruptTree)
		}
	}
}
