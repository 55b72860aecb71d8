// Package store implements the flat-file persistence layer. Each named
// collection is a single JSON array on disk, read and written whole.
// The interface is deliberately small so a real embedded database could
// later replace the file implementation without touching the callers.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrPersist wraps any failure to write a collection back to disk.
// Handlers translate it into an HTTP 500; it is never swallowed.
var ErrPersist = errors.New("cannot persist collection")

// Identifiable is implemented by every record kept in a collection so
// that NextID can assign fresh identifiers.
type Identifiable interface {
	RecordID() int64
}

// Collection is a named set of homogeneous records persisted together.
// All access is whole-collection: Load returns every record, Save
// replaces every record. Update runs a read-modify-write step while
// holding the collection's lock, which serializes concurrent writers —
// two concurrent creates can no longer race on id assignment or drop
// each other's save.
type Collection[T Identifiable] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, records []T) error
	Update(ctx context.Context, fn func(records []T) ([]T, error)) error
}

// FileCollection persists one collection as <dir>/<name>.json. A mutex
// per collection guards every read and write; Load on a missing file
// creates it as an empty array first.
type FileCollection[T Identifiable] struct {
	name string
	path string
	mu   sync.Mutex
}

// NewFileCollection prepares the collection file under dir, creating
// the directory when needed. The file itself is created lazily on the
// first Load or Save.
func NewFileCollection[T Identifiable](dir, name string) (*FileCollection[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}
	return &FileCollection[T]{
		name: name,
		path: filepath.Join(dir, name+".json"),
	}, nil
}

// Load reads the whole collection. A missing file is not an error: it
// is created as an empty array and an empty slice is returned. Any
// other read or parse failure is reported to the caller instead of
// being masked as an empty collection — pretending that corrupt data
// is empty would let the next Save erase it.
func (c *FileCollection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Save replaces the whole collection on disk.
func (c *FileCollection[T]) Save(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, records)
}

// Update applies fn to the current records and persists whatever fn
// returns. The lock is held for the full read-modify-write cycle. When
// fn returns an error nothing is written and the error is passed
// through unchanged, so repositories can abort with their own
// sentinels (not found, duplicate email) without touching the file.
func (c *FileCollection[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	records, err = fn(records)
	if err != nil {
		return err
	}
	return c.save(ctx, records)
}

func (c *FileCollection[T]) load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		// Auto-create so the next reader sees a valid empty array.
		if err := c.writeFile([]byte("[]\n")); err != nil {
			return nil, fmt.Errorf("store: create collection %s: %w", c.name, err)
		}
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read collection %s: %w", c.name, err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("store: parse collection %s: %w", c.name, err)
	}
	return records, nil
}

func (c *FileCollection[T]) save(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPersist, c.name, err)
	}
	if err := c.writeFile(append(data, '\n')); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersist, c.name, err)
	}
	return nil
}

// writeFile writes through a temp file and renames it into place so a
// crash mid-write never leaves a truncated collection behind.
func (c *FileCollection[T]) writeFile(data []byte) error {
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}

// NextID returns the identifier for a record appended to records:
// one past the current maximum, or 1 for an empty collection. Callers
// must invoke it inside Update so the assignment is race-free.
func NextID[T Identifiable](records []T) int64 {
	var max int64
	for _, r := range records {
		if id := r.RecordID(); id > max {
			max = id
		}
	}
	return max + 1
}
