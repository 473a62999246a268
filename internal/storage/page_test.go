package storage

import (
	"encoding/binary"
	"errors"
	"testing"
	"unsafe"

	"lukechampine.com/uint128"
)

func TestLayoutSizes(t *testing.T) {
	if leafNodeSize != PageSize {
		t.Fatalf("leaf layout uses %d bytes, expected %d", leafNodeSize, PageSize)
	}
	if internalNodeSize > PageSize {
		t.Fatalf("internal layout uses %d bytes, page is %d", internalNodeSize, PageSize)
	}
	if childrenOffset != 3264 {
		t.Fatalf("children start at %d, expected 3264", childrenOffset)
	}

	for _, size := range Sizes() {
		if size.Page != PageSize {
			t.Errorf("%s: page size %d", size.Name, size.Page)
		}
		if size.Used > size.Page {
			t.Errorf("%s: uses %d of %d bytes", size.Name, size.Used, size.Page)
		}
	}

	var p Page
	if len(p) != PageSize {
		t.Fatalf("page is %d bytes", len(p))
	}
}

var pageSink []*Page

func TestPageAlignment(t *testing.T) {
	for i := 0; i < 16; i++ {
		p := NewPage()
		pageSink = append(pageSink, p)
		if addr := uintptr(unsafe.Pointer(p)); addr%PageAlign != 0 {
			t.Fatalf("page %d at %#x is not %d-byte aligned", i, addr, PageAlign)
		}
	}
}

func TestHeaderEncoding(t *testing.T) {
	p := NewPage()
	p[100] = 0xff

	NewHeader(42).Encode(p)

	if got := binary.LittleEndian.Uint32(p[0:4]); got != 42 {
		t.Fatalf("root offset bytes = %d, expected 42", got)
	}
	if p[100] != 0 {
		t.Fatalf("header padding not zeroed")
	}
	if h := DecodeHeader(p); h.RootOffset != 42 {
		t.Fatalf("decoded root = %d, expected 42", h.RootOffset)
	}
}

func TestLeafEncoding(t *testing.T) {
	leaf := NewLeafNode()
	leaf.Insert(uint128.From64(7))
	leaf.Insert(uint128.New(1, 2))

	p := NewPage()
	leaf.Encode(p)

	if p[0] != 1 {
		t.Fatalf("leaf tag = %d, expected 1", p[0])
	}
	if got := binary.LittleEndian.Uint16(p[8:10]); got != 2 {
		t.Fatalf("count = %d, expected 2", got)
	}
	if lo := binary.LittleEndian.Uint64(p[16:24]); lo != 7 {
		t.Fatalf("first id low word = %d, expected 7", lo)
	}
	if lo, hi := binary.LittleEndian.Uint64(p[32:40]), binary.LittleEndian.Uint64(p[40:48]); lo != 1 || hi != 2 {
		t.Fatalf("second id = (%d, %d), expected (1, 2)", lo, hi)
	}

	n, err := DecodePage(1, p)
	if err != nil {
		t.Fatal(err)
	}
	decoded, ok := n.(*LeafNode)
	if !ok {
		t.Fatalf("decoded %T, expected *LeafNode", n)
	}
	if decoded.Len() != 2 || !decoded.Contains(uint128.New(1, 2)) {
		t.Fatalf("decoded leaf %v", decoded.IDs())
	}
}

func TestInternalEncoding(t *testing.T) {
	node := NewInternalNode(uint128.From64(50), 1, 2)

	p := NewPage()
	node.Encode(p)

	if p[0] != 0 {
		t.Fatalf("internal tag = %d, expected 0", p[0])
	}
	if got := binary.LittleEndian.Uint32(p[childrenOffset+4 : childrenOffset+8]); got != 2 {
		t.Fatalf("second child = %d, expected 2", got)
	}
	if got := binary.LittleEndian.Uint32(p[childrenOffset+8 : childrenOffset+12]); got != uint32(NullOffset) {
		t.Fatalf("unused child slot = %#x, expected NULL", got)
	}

	n, err := DecodePage(3, p)
	if err != nil {
		t.Fatal(err)
	}
	decoded, ok := n.(*InternalNode)
	if !ok {
		t.Fatalf("decoded %T, expected *InternalNode", n)
	}
	if decoded.Len() != 1 || decoded.FindOffsetToInsert(uint128.From64(50)) != 2 {
		t.Fatalf("decoded node keys=%v children=%v", decoded.Keys(), decoded.Children())
	}
}

func TestDecodeCorruptPages(t *testing.T) {
	p := NewPage()
	p[0] = 9
	if _, err := DecodePage(1, p); !errors.Is(err, ErrCorruptTree) {
		t.Fatalf("unknown tag: got %v, expected ErrCorruptTree", err)
	}

	p = NewPage()
	p[0] = byte(PageTypeLeaf)
	binary.LittleEndian.PutUint16(p[8:10], LeafNodeMaxLen+1)
	if _, err := DecodePage(1, p); !errors.Is(err, ErrCorruptTree) || !errors.Is(err, ErrPageFull) {
		t.Fatalf("oversized leaf: got %v, expected ErrCorruptTree and ErrPageFull", err)
	}

	p = NewPage()
	p[0] = byte(PageTypeInternal)
	binary.LittleEndian.PutUint16(p[8:10], InternalNodeMaxLen+1)
	if _, err := DecodePage(1, p); !errors.Is(err, ErrCorruptTree) {
		t.Fatalf("oversized internal: got %v, expected ErrCorruptTree", err)
	}
}

func TestPagerBounds(t *testing.T) {
	pager := NewPager(nil, nil)
	if off := pager.AllocatePage(NewPage()); off != 0 {
		t.Fatalf("first page at %d, expected 0", off)
	}

	if _, err := pager.ReadPage(1); !errors.Is(err, ErrInvalidPointer) {
		t.Fatalf("ReadPage(1): got %v, expected ErrInvalidPointer", err)
	}
	if err := pager.WritePage(5, NewPage()); !errors.Is(err, ErrInvalidPointer) {
		t.Fatalf("WritePage(5): got %v, expected ErrInvalidPointer", err)
	}
	if _, err := pager.ReadNode(NullOffset); !errors.Is(err, ErrInvalidPointer) {
		t.Fatalf("ReadNode(NULL): got %v, expected ErrInvalidPointer", err)
	}
}
