package storage

import (
	"testing"

	"lukechampine.com/uint128"
)

// fullInternal returns a node with keys 10, 20, ... 2030 and children 100..303.
func fullInternal() *InternalNode {
	node := NewInternalNode(uint128.From64(10), 100, 101)
	for i := uint64(2); i <= InternalNodeMaxLen; i++ {
		node.Insert(uint128.From64(i*10), PageOffset(100+i))
	}
	return node
}

func TestInternalRouting(t *testing.T) {
	node := NewInternalNode(uint128.From64(100), 1, 2)
	node.Insert(uint128.From64(200), 3)
	node.Insert(uint128.From64(50), 4)

	// keys 50 100 200, children 1 4 2 3
	cases := []struct {
		id   uint64
		want PageOffset
	}{
		{0, 1},
		{49, 1},
		{50, 4},
		{99, 4},
		{100, 2},
		{199, 2},
		{200, 3},
		{1 << 62, 3},
	}
	for _, c := range cases {
		if got := node.FindOffsetToInsert(uint128.From64(c.id)); got != c.want {
			t.Errorf("FindOffsetToInsert(%d) = %d, expected %d", c.id, got, c.want)
		}
	}

	if n := len(node.Children()); n != node.Len()+1 {
		t.Fatalf("%d children for %d keys", n, node.Len())
	}
}

func TestInternalInsertFull(t *testing.T) {
	node := fullInternal()
	if !node.IsFull() {
		t.Fatalf("node with %d keys not full", node.Len())
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("Insert on a full node did not panic")
		}
	}()
	node.Insert(uint128.From64(5), 999)
}

func TestInternalInsertSplit(t *testing.T) {
	node := fullInternal()

	// 2035 lands at the end: 204 keys 10..2030, 2035
	right, center := node.InsertSplit(uint128.From64(2035), 999)

	if node.Len() != 102 || len(node.Children()) != 103 {
		t.Fatalf("left has %d keys / %d children, expected 102/103", node.Len(), len(node.Children()))
	}
	if right.Len() != 101 || len(right.Children()) != 102 {
		t.Fatalf("right has %d keys / %d children, expected 101/102", right.Len(), len(right.Children()))
	}

	// index 102 of 10, 20, ... is 1030
	if !center.Equals64(1030) {
		t.Fatalf("promoted %s, expected 1030", center)
	}
	for _, k := range node.Keys() {
		if k.Equals(center) {
			t.Fatalf("promoted key kept in left half")
		}
	}
	for _, k := range right.Keys() {
		if k.Equals(center) {
			t.Fatalf("promoted key kept in right half")
		}
	}

	if !node.Keys()[101].Equals64(1020) || !right.Keys()[0].Equals64(1040) {
		t.Fatalf("halves end/start at %s/%s", node.Keys()[101], right.Keys()[0])
	}
	if right.Children()[101] != 999 {
		t.Fatalf("new child at %d, expected last", right.Children()[101])
	}
	// children 100..303: left takes 100..202, right starts at 203
	if node.Children()[102] != 202 || right.Children()[0] != 203 {
		t.Fatalf("children split at %d/%d", node.Children()[102], right.Children()[0])
	}
	for i := 103; i < len(node.children); i++ {
		if node.children[i] != NullOffset {
			t.Fatalf("left child slot %d = %d, expected NULL", i, node.children[i])
		}
	}
}

func TestInternalInsertSplitMiddle(t *testing.T) {
	node := fullInternal()

	// 1025 sorts between 1020 and 1030 and becomes index 102
	right, center := node.InsertSplit(uint128.From64(1025), 999)

	if !center.Equals64(1025) {
		t.Fatalf("promoted %s, expected 1025", center)
	}
	// the child paired with 1025 starts the right half
	if right.Children()[0] != 999 {
		t.Fatalf("right first child %d, expected 999", right.Children()[0])
	}
	if !right.Keys()[0].Equals64(1030) {
		t.Fatalf("right first key %s, expected 1030", right.Keys()[0])
	}
}
