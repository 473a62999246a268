package storage

import "fmt"

// growRoot puts a new one-key root above the two halves of the old root and
// repoints the header at it. This is the only place the tree gains a level.
func (s *IDSet) growRoot(centerID ID, leftOffset, rightOffset PageOffset) error {
	root := NewInternalNode(centerID, leftOffset, rightOffset)
	rootOffset := s.pager.AllocateNode(root)

	header, err := s.pager.readHeader()
	if err != nil {
		return fmt.Errorf("growRoot: %w", err)
	}

	prev := header.RootOffset
	header.RootOffset = rootOffset
	if err := s.pager.WriteNode(HeaderOffset, header); err != nil {
		return fmt.Errorf("growRoot: %w", err)
	}

	s.log.Debugf("growRoot: root %d -> %d", prev, rootOffset)
	return nil
}
