package storage

import "errors"

var (
	// tree
	ErrCorruptTree = errors.New("idset is corrupt")
	// pager
	ErrInvalidPointer = errors.New("invalid page pointer")
	// nodes
	ErrPageFull = errors.New("not enough space in page")
)
