// Package inmem provides a session store living in memory only
package inmem

import (
	"github.com/skybi/tools-sys/internal/hashmap"
	"github.com/skybi/tools-sys/internal/session"
)

// Store implements session.Store using a thread safe map
type Store struct {
	values *hashmap.NormalMap[string, string]
}

var _ session.Store = (*Store)(nil)

// New creates a new empty in-memory store
func New() *Store {
	return &Store{
		values: hashmap.NewNormal[string, string](),
	}
}

// NewOf creates a new in-memory store holding a copy of the given values
func NewOf(values map[string]string) *Store {
	return &Store{
		values: hashmap.NewNormalOf(values),
	}
}

// Get returns the value stored under the given key and whether it exists
func (store *Store) Get(key string) (string, bool) {
	return store.values.Lookup(key)
}

// Set stores a value under the given key
func (store *Store) Set(key, value string) error {
	store.values.Set(key, value)
	return nil
}

// Remove removes the value stored under the given key
func (store *Store) Remove(key string) error {
	store.values.Unset(key)
	return nil
}

// Snapshot returns a copy of all stored values
func (store *Store) Snapshot() map[string]string {
	return store.values.Snapshot()
}
