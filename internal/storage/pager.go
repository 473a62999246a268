package storage

import (
	"fmt"

	"go.idset/internal/logger"
)

// Pager owns the page table. Pages are append-only: an offset, once handed
// out, names the same page for the life of the set.
type Pager struct {
	pages []*Page
	cache *NodeCache
	log   *logger.Logger
}

func NewPager(cache *NodeCache, log *logger.Logger) *Pager {
	if log == nil {
		log = logger.Discard()
	}
	return &Pager{
		cache: cache,
		log:   log,
	}
}

func (pager *Pager) NumPages() int {
	return len(pager.pages)
}

func (pager *Pager) ReadPage(off PageOffset) (*Page, error) {
	if int64(off) >= int64(len(pager.pages)) {
		return nil, fmt.Errorf("ReadPage: offset %d (pages=%d): %w", off, len(pager.pages), ErrInvalidPointer)
	}
	return pager.pages[off], nil
}

// WritePage copies p over the page at off.
func (pager *Pager) WritePage(off PageOffset, p *Page) error {
	dst, err := pager.ReadPage(off)
	if err != nil {
		return err
	}
	*dst = *p
	return nil
}

// AllocatePage appends p to the table and returns its offset.
func (pager *Pager) AllocatePage(p *Page) PageOffset {
	if uint64(len(pager.pages)) >= uint64(NullOffset) {
		panic("AllocatePage: page table exhausted")
	}
	off := PageOffset(len(pager.pages))
	pager.pages = append(pager.pages, p)
	return off
}

func (pager *Pager) ReadNode(off PageOffset) (Node, error) {
	if n, ok := pager.cache.Get(off); ok {
		return n, nil
	}

	p, err := pager.ReadPage(off)
	if err != nil {
		return nil, err
	}

	n, err := DecodePage(off, p)
	if err != nil {
		pager.log.Errorf("ReadNode: %v", err)
		return nil, err
	}

	pager.cache.Put(off, n)
	return n, nil
}

// WriteNode encodes n into the page at off, keeping the offset.
func (pager *Pager) WriteNode(off PageOffset, n Node) error {
	p, err := pager.ReadPage(off)
	if err != nil {
		return err
	}
	n.Encode(p)
	pager.cache.Put(off, n)
	return nil
}

func (pager *Pager) AllocateNode(n Node) PageOffset {
	p := NewPage()
	n.Encode(p)
	off := pager.AllocatePage(p)
	pager.cache.Put(off, n)
	return off
}

func (pager *Pager) readLeaf(off PageOffset) (*LeafNode, error) {
	n, err := pager.ReadNode(off)
	if err != nil {
		return nil, err
	}
	leaf, ok := n.(*LeafNode)
	if !ok {
		return nil, fmt.Errorf("readLeaf: page %d is not a leaf: %w", off, ErrCorruptTree)
	}
	return leaf, nil
}

func (pager *Pager) readInternal(off PageOffset) (*InternalNode, error) {
	n, err := pager.ReadNode(off)
	if err != nil {
		return nil, err
	}
	internal, ok := n.(*InternalNode)
	if !ok {
		return nil, fmt.Errorf("readInternal: page %d is not an internal node: %w", off, ErrCorruptTree)
	}
	return internal, nil
}

func (pager *Pager) readHeader() (*Header, error) {
	n, err := pager.ReadNode(HeaderOffset)
	if err != nil {
		return nil, err
	}
	h, ok := n.(*Header)
	if !ok {
		return nil, fmt.Errorf("readHeader: %w", ErrCorruptTree)
	}
	return h, nil
}
