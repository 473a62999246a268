package storage

import "fmt"

// Entry point into insertion logic
func (s *IDSet) Insert(id ID) error {
	leafOffset, leaf, parents, err := s.findLeafNodeToInsert(id)
	if err != nil {
		return fmt.Errorf("Insert: %w", err)
	}

	if !leaf.IsFull() {
		leaf.Insert(id)
		if err := s.pager.WriteNode(leafOffset, leaf); err != nil {
			return fmt.Errorf("Insert: %w", err)
		}
		s.size++
		return nil
	}

	// The leaf keeps its offset as the left half, the right half gets a new page
	right, centerID := leaf.InsertAndSplit(id)
	if err := s.pager.WriteNode(leafOffset, leaf); err != nil {
		return fmt.Errorf("Insert: %w", err)
	}
	rightOffset := s.pager.AllocateNode(right)
	s.size++

	s.log.Debugf("Insert: split leaf %d -> %d, separator %s", leafOffset, rightOffset, centerID)

	if err := s.propagateSplit(parents, centerID, leafOffset, rightOffset); err != nil {
		return fmt.Errorf("Insert: %w", err)
	}
	return nil
}

func (s *IDSet) propagateSplit(
	parents *ParentStack,
	centerID ID,
	leftOffset,
	rightOffset PageOffset,
) error {

	for {
		parentOffset, ok := parents.Pop()

		// The node that just split was the root
		if !ok {
			return s.growRoot(centerID, leftOffset, rightOffset)
		}

		parent, err := s.pager.readInternal(parentOffset)
		if err != nil {
			return err
		}

		if !parent.IsFull() {
			parent.Insert(centerID, rightOffset)
			return s.pager.WriteNode(parentOffset, parent)
		}

		newRight, newCenterID := parent.InsertSplit(centerID, rightOffset)
		if err := s.pager.WriteNode(parentOffset, parent); err != nil {
			return err
		}
		rightOffset = s.pager.AllocateNode(newRight)

		s.log.Debugf("propagateSplit: split internal %d -> %d, promoted %s", parentOffset, rightOffset, newCenterID)

		centerID = newCenterID
		leftOffset = parentOffset
	}
}
