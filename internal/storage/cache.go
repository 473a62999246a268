package storage

import (
	"github.com/dgraph-io/ristretto/v2"
)

// NodeCache keeps decoded nodes keyed by page offset so hot pages skip the
// decode step. The page table stays authoritative: a rejected admission only
// costs a re-decode.
type NodeCache struct {
	cache *ristretto.Cache[uint64, Node]
}

type CacheOptions struct {
	MaxNodes int64
	Counters int64
}

type CacheMetrics struct {
	Hits   uint64
	Misses uint64
	Ratio  float64
}

func NewNodeCache(opts CacheOptions) (*NodeCache, error) {
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = 4096
	}
	if opts.Counters <= 0 {
		opts.Counters = opts.MaxNodes * 10
	}

	c, err := ristretto.NewCache(&ristretto.Config[uint64, Node]{
		NumCounters:        opts.Counters,
		MaxCost:            opts.MaxNodes,
		BufferItems:        64,
		Metrics:            true,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	return &NodeCache{cache: c}, nil
}

func (c *NodeCache) Get(off PageOffset) (Node, bool) {
	if c == nil {
		return nil, false
	}
	return c.cache.Get(uint64(off))
}

// Put stores n for off and waits for the write buffer to drain, so a later
// Get never observes an older node for the same offset.
func (c *NodeCache) Put(off PageOffset, n Node) {
	if c == nil {
		return
	}
	c.cache.Set(uint64(off), n, 1)
	c.cache.Wait()
}

func (c *NodeCache) Metrics() CacheMetrics {
	if c == nil || c.cache.Metrics == nil {
		return CacheMetrics{}
	}
	m := c.cache.Metrics
	return CacheMetrics{
		Hits:   m.Hits(),
		Misses: m.Misses(),
		Ratio:  m.Ratio(),
	}
}

func (c *NodeCache) Close() {
	if c == nil {
		return
	}
	c.cache.Close()
}
