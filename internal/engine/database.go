package engine

import (
	"io"

	"go.idset/internal/storage"
)

type Database struct {
	name    string
	engine  *Engine
	set     *storage.IDSet
	cache   *storage.NodeCache
	logFile io.Closer
}

func (db *Database) Name() string {
	return db.name
}

func (db *Database) Insert(key string) (storage.ID, error) {
	return db.engine.Insert(key)
}

func (db *Database) Contains(key string) (storage.ID, bool, error) {
	return db.engine.Contains(key)
}

func (db *Database) Count(key string) (storage.ID, int, error) {
	return db.engine.Count(key)
}

func (db *Database) Generate(n int) ([]storage.ID, error) {
	return db.engine.Generate(n)
}

func (db *Database) Len() int {
	return db.set.Len()
}

func (db *Database) Stats() (storage.Stats, error) {
	return db.set.Stats()
}

func (db *Database) Verify() error {
	return db.set.Verify()
}

func (db *Database) Inspect(w io.Writer) error {
	return db.set.Inspect(w)
}

func (db *Database) Close() error {
	db.cache.Close()
	if db.logFile != nil {
		return db.logFile.Close()
	}
	return nil
}
