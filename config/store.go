package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

var (
	collections   = make(map[string]*Collection)
	collectionsMu sync.Mutex
)

// CorruptError reports a collection file whose contents are not valid JSON.
type CorruptError struct {
	Collection string
	Err        error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("collection %q is corrupt: %v", e.Collection, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// Collection is a JSON array file holding every record of one entity type.
// All access goes through its lock, so read-modify-write cycles are
// serialized per collection.
type Collection struct {
	name string
	path string
	mu   sync.RWMutex
}

// DataDir returns the directory holding the collection files.
func DataDir() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}
	return "./data"
}

// GetCollection returns the collection handle for the given name, creating
// the data directory and an empty file on first use. Handles are cached per
// file path so every caller shares the same lock.
func GetCollection(name string) *Collection {
	path := filepath.Join(DataDir(), name+".json")

	collectionsMu.Lock()
	defer collectionsMu.Unlock()

	if c, ok := collections[path]; ok {
		return c
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		panic(fmt.Sprintf("Failed to create data directory: %v", err))
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			panic(fmt.Sprintf("Failed to initialize %s: %v", path, err))
		}
	}

	c := &Collection{name: name, path: path}
	collections[path] = c
	return c
}

// Read parses the whole collection file into v.
func (c *Collection) Read(v any) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.read(v)
}

func (c *Collection) read(v any) error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &CorruptError{Collection: c.name, Err: err}
	}
	return nil
}

// Write replaces the whole collection file with v. The data is written to a
// temp file in the same directory and renamed over the live file, so a crash
// mid-write cannot truncate the collection.
func (c *Collection) Write(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(v)
}

func (c *Collection) write(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), c.name+"-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.path)
}

// Update runs a read-modify-write cycle under the write lock. It reads the
// collection into v, calls fn, and persists whatever fn returns. A nil
// return from fn skips the write (for example an update that matched
// nothing).
func (c *Collection) Update(v any, fn func() (any, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.read(v); err != nil {
		return err
	}
	out, err := fn()
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return c.write(out)
}

// NextID returns the next identifier for the collection from a monotonic
// counter persisted in a sidecar file. Ids assigned to since-deleted records
// are never handed out again. currentMax seeds the counter the first time
// around, so legacy files that predate the sidecar keep their sequence.
func (c *Collection) NextID(currentMax int) (int, error) {
	seq := currentMax
	if data, err := os.ReadFile(c.seqPath()); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil && n > seq {
			seq = n
		}
	}

	id := seq + 1
	if err := os.WriteFile(c.seqPath(), []byte(strconv.Itoa(id)), 0o644); err != nil {
		return 0, err
	}
	return id, nil
}

// Reset truncates the collection to an empty array and discards its id
// counter. Used by the seeding procedure.
func (c *Collection) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.write([]any{}); err != nil {
		return err
	}
	if err := os.Remove(c.seqPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *Collection) seqPath() string {
	return strings.TrimSuffix(c.path, ".json") + ".seq"
}
