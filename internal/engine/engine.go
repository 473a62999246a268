package engine

import (
	"fmt"

	"go.idset/internal/ident"
	"go.idset/internal/logger"
	"go.idset/internal/storage"
)

// Engine resolves textual identifiers and forwards them to the set.
type Engine struct {
	set       *storage.IDSet
	gen       *ident.Generator
	log       *logger.Logger
	hashNames bool
}

func NewEngine(set *storage.IDSet, gen *ident.Generator, log *logger.Logger, hashNames bool) *Engine {
	return &Engine{
		set:       set,
		gen:       gen,
		log:       log,
		hashNames: hashNames,
	}
}

func (e *Engine) resolve(key string) (storage.ID, error) {
	id, hashed, err := ident.Resolve(key, e.hashNames)
	if err != nil {
		return storage.ID{}, fmt.Errorf("invalid id %q: %w", key, err)
	}
	if hashed {
		e.log.Debugf("resolve: %q hashed to %s", key, ident.FormatHex(id))
	}
	return id, nil
}

func (e *Engine) Insert(key string) (storage.ID, error) {
	id, err := e.resolve(key)
	if err != nil {
		return storage.ID{}, err
	}
	if err := e.set.Insert(id); err != nil {
		e.log.Errorf("Insert %s: %v", ident.Format(id), err)
		return storage.ID{}, err
	}
	return id, nil
}

func (e *Engine) Contains(key string) (storage.ID, bool, error) {
	id, err := e.resolve(key)
	if err != nil {
		return storage.ID{}, false, err
	}
	ok, err := e.set.Contains(id)
	return id, ok, err
}

func (e *Engine) Count(key string) (storage.ID, int, error) {
	id, err := e.resolve(key)
	if err != nil {
		return storage.ID{}, 0, err
	}
	n, err := e.set.Count(id)
	return id, n, err
}

// Generate inserts n freshly generated ids and returns them.
func (e *Engine) Generate(n int) ([]storage.ID, error) {
	if e.gen == nil {
		return nil, fmt.Errorf("no id generator configured")
	}
	ids := make([]storage.ID, 0, n)
	for range n {
		id := e.gen.Next()
		if err := e.set.Insert(id); err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
