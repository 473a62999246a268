package ident

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"lukechampine.com/uint128"
)

// Generator hands out unique ids: a snowflake id in the high word and a
// per-generator sequence in the low word.
type Generator struct {
	node *snowflake.Node
	seq  uint64
}

func NewGenerator(node int64) (*Generator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("NewGenerator: %w", err)
	}
	return &Generator{node: n}, nil
}

func (g *Generator) Next() uint128.Uint128 {
	g.seq++
	return uint128.New(g.seq, uint64(g.node.Generate().Int64()))
}
