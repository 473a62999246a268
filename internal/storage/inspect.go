package storage

import (
	"fmt"
	"io"
)

type Stats struct {
	Pages     int
	Leaves    int
	Internals int
	Height    int
	IDs       int
	Cache     CacheMetrics
}

// LayoutSize reports how many bytes of a page a node type actually uses.
type LayoutSize struct {
	Name string
	Used int
	Page int
}

// Sizes returns the encoded layout of every page type.
func Sizes() []LayoutSize {
	return []LayoutSize{
		{Name: "InternalNode", Used: internalNodeSize, Page: PageSize},
		{Name: "LeafNode", Used: leafNodeSize, Page: PageSize},
		{Name: "Header", Used: headerSize, Page: PageSize},
	}
}

func (s *IDSet) Stats() (Stats, error) {
	stats := Stats{
		Pages: s.pager.NumPages(),
		IDs:   s.size,
		Cache: s.pager.cache.Metrics(),
	}

	err := s.walk(func(off PageOffset, n Node, depth int) error {
		switch n.(type) {
		case *LeafNode:
			stats.Leaves++
			if depth+1 > stats.Height {
				stats.Height = depth + 1
			}
		case *InternalNode:
			stats.Internals++
		}
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("Stats: %w", err)
	}
	return stats, nil
}

// walk visits every node reachable from the root breadth first.
func (s *IDSet) walk(fn func(off PageOffset, n Node, depth int) error) error {
	root, err := s.RootOffset()
	if err != nil {
		return err
	}

	level := []PageOffset{root}
	for depth := 0; len(level) > 0; depth++ {
		if depth > s.pager.NumPages() {
			return fmt.Errorf("walk: depth %d: %w", depth, ErrCorruptTree)
		}

		var next []PageOffset
		for _, off := range level {
			n, err := s.pager.ReadNode(off)
			if err != nil {
				return err
			}
			if err := fn(off, n, depth); err != nil {
				return err
			}
			if internal, ok := n.(*InternalNode); ok {
				next = append(next, internal.Children()...)
			}
		}
		level = next
	}
	return nil
}

// bounds limits the ids a subtree may hold. Both ends are inclusive because a
// leaf split leaves the separator in the right leaf while repeated ids equal
// to it can remain on the left.
type bounds struct {
	lo, hi       ID
	hasLo, hasHi bool
}

func (b bounds) holds(id ID) bool {
	if b.hasLo && id.Cmp(b.lo) < 0 {
		return false
	}
	if b.hasHi && id.Cmp(b.hi) > 0 {
		return false
	}
	return true
}

// Verify checks the structural invariants of the whole tree: sorted keys,
// routing bounds, capacity, child counts, equal leaf depth, no page reachable
// twice, no orphaned page, and the id total.
func (s *IDSet) Verify() error {
	root, err := s.RootOffset()
	if err != nil {
		return fmt.Errorf("Verify: %w", err)
	}

	v := &verifier{
		set:       s,
		seen:      make(map[PageOffset]bool),
		leafDepth: -1,
	}
	if err := v.visit(root, bounds{}, 0); err != nil {
		s.log.Errorf("Verify: %v", err)
		return fmt.Errorf("Verify: %w", err)
	}

	if len(v.seen) != s.pager.NumPages()-1 {
		return fmt.Errorf("Verify: %d of %d node pages reachable: %w", len(v.seen), s.pager.NumPages()-1, ErrCorruptTree)
	}
	if v.ids != s.size {
		return fmt.Errorf("Verify: leaves hold %d ids, expected %d: %w", v.ids, s.size, ErrCorruptTree)
	}
	return nil
}

type verifier struct {
	set       *IDSet
	seen      map[PageOffset]bool
	leafDepth int
	ids       int
}

func (v *verifier) visit(off PageOffset, b bounds, depth int) error {
	if off == HeaderOffset || off == NullOffset {
		return fmt.Errorf("child offset %d: %w", off, ErrCorruptTree)
	}
	if v.seen[off] {
		return fmt.Errorf("page %d reachable twice: %w", off, ErrCorruptTree)
	}
	v.seen[off] = true

	n, err := v.set.pager.ReadNode(off)
	if err != nil {
		return err
	}

	switch node := n.(type) {
	case *LeafNode:
		if v.leafDepth == -1 {
			v.leafDepth = depth
		} else if v.leafDepth != depth {
			return fmt.Errorf("leaf %d at depth %d, others at %d: %w", off, depth, v.leafDepth, ErrCorruptTree)
		}
		ids := node.IDs()
		if err := checkKeys(off, ids, b); err != nil {
			return err
		}
		v.ids += len(ids)
		return nil

	case *InternalNode:
		keys := node.Keys()
		if len(keys) == 0 {
			return fmt.Errorf("internal %d has no keys: %w", off, ErrCorruptTree)
		}
		if err := checkKeys(off, keys, b); err != nil {
			return err
		}
		for i := len(keys) + 1; i < len(node.children); i++ {
			if node.children[i] != NullOffset {
				return fmt.Errorf("internal %d has child %d beyond count %d: %w", off, i, len(keys), ErrCorruptTree)
			}
		}

		for i, child := range node.Children() {
			cb := b
			if i > 0 {
				cb.lo, cb.hasLo = keys[i-1], true
			}
			if i < len(keys) {
				cb.hi, cb.hasHi = keys[i], true
			}
			if err := v.visit(child, cb, depth+1); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("page %d is not a node: %w", off, ErrCorruptTree)
	}
}

func checkKeys(off PageOffset, keys []ID, b bounds) error {
	for i, k := range keys {
		if i > 0 && keys[i-1].Cmp(k) > 0 {
			return fmt.Errorf("page %d keys out of order at %d: %w", off, i, ErrCorruptTree)
		}
		if !b.holds(k) {
			return fmt.Errorf("page %d key %s outside parent range: %w", off, k, ErrCorruptTree)
		}
	}
	return nil
}

// Inspect writes a level-by-level dump of the tree to w.
func (s *IDSet) Inspect(w io.Writer) error {
	p := func(format string, args ...any) { fmt.Fprintf(w, format, args...) }

	root, err := s.RootOffset()
	if err != nil {
		return err
	}

	p("Page 0 (header): root = %d, pages = %d, ids = %d\n", root, s.pager.NumPages(), s.size)

	level := -1
	return s.walk(func(off PageOffset, n Node, depth int) error {
		if depth != level {
			level = depth
			p("Level %d:\n", depth)
		}

		switch node := n.(type) {
		case *InternalNode:
			p("  [page %d] INTERNAL keys=%d children=%v\n", off, node.Len(), node.Children())
			p("    separators: %s\n", summarize(node.Keys()))
		case *LeafNode:
			p("  [page %d] LEAF ids=%d %s\n", off, node.Len(), summarize(node.IDs()))
		}
		return nil
	})
}

func summarize(ids []ID) string {
	switch len(ids) {
	case 0:
		return "[]"
	case 1:
		return fmt.Sprintf("[%s]", ids[0])
	case 2:
		return fmt.Sprintf("[%s %s]", ids[0], ids[1])
	default:
		return fmt.Sprintf("[%s .. %s]", ids[0], ids[len(ids)-1])
	}
}
