// Package file provides a session store persisting its values as a JSON object on disk
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/skybi/tools-sys/internal/session"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// Store implements session.Store by mirroring a JSON object stored in a single file.
// Every mutation rewrites the whole file atomically.
type Store struct {
	path string

	mtx    sync.RWMutex
	values map[string]string
}

var _ session.Store = (*Store)(nil)

// Open opens the store located at the given path.
// A missing file results in an empty store; so does a malformed one, which is logged.
func Open(path string) (*Store, error) {
	store := &Store{
		path:   path,
		values: make(map[string]string),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &store.values); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("ignoring malformed session file")
			store.values = make(map[string]string)
		}
	}
	return store, nil
}

// Path returns the location of the underlying file
func (store *Store) Path() string {
	return store.path
}

// Get returns the value stored under the given key and whether it exists
func (store *Store) Get(key string) (string, bool) {
	store.mtx.RLock()
	defer store.mtx.RUnlock()
	value, ok := store.values[key]
	return value, ok
}

// Set stores a value under the given key and writes the file
func (store *Store) Set(key, value string) error {
	store.mtx.Lock()
	defer store.mtx.Unlock()

	previous, existed := store.values[key]
	store.values[key] = value
	if err := store.flush(); err != nil {
		if existed {
			store.values[key] = previous
		} else {
			delete(store.values, key)
		}
		return err
	}
	return nil
}

// Remove removes the value stored under the given key and writes the file
func (store *Store) Remove(key string) error {
	store.mtx.Lock()
	defer store.mtx.Unlock()

	previous, existed := store.values[key]
	if !existed {
		return nil
	}
	delete(store.values, key)
	if err := store.flush(); err != nil {
		store.values[key] = previous
		return err
	}
	return nil
}

// flush writes the current values to a temporary file and renames it to the store path
func (store *Store) flush() error {
	raw, err := json.MarshalIndent(store.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session values: %w", err)
	}

	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary session file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temporary session file: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("restricting session file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary session file: %w", err)
	}

	if err := os.Rename(tmpName, store.path); err != nil {
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}
