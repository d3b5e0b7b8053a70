package util

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// SnapshotCache remembers the last seen contents of a set of files so
// callers can tell real content changes apart from no-op filesystem
// events (touch, metadata-only writes, editors rewriting identical
// bytes). Files are read through a memory map when possible, with a
// plain read fallback.
//
// Thread-safe.
type SnapshotCache struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewSnapshotCache returns an empty cache.
func NewSnapshotCache() *SnapshotCache {
	return &SnapshotCache{files: make(map[string][]byte)}
}

// Changed reports whether path's contents differ from the cached
// snapshot, updating the snapshot. The first observation of a path
// reports true. A path that has disappeared reports true once and
// drops the snapshot.
func (c *SnapshotCache) Changed(path string) (bool, error) {
	data, err := readFileContents(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.mu.Lock()
			_, had := c.files[path]
			delete(c.files, path)
			c.mu.Unlock()
			return had, nil
		}
		return false, fmt.Errorf("snapshot %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	prev, ok := c.files[path]
	if ok && bytes.Equal(prev, data) {
		return false, nil
	}
	c.files[path] = data
	return true, nil
}

// Forget drops the snapshot for path.
func (c *SnapshotCache) Forget(path string) {
	c.mu.Lock()
	delete(c.files, path)
	c.mu.Unlock()
}

// Len returns the number of cached snapshots.
func (c *SnapshotCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.files)
}

// readFileContents maps the file and copies its bytes out, falling
// back to os.ReadFile when mmap fails (empty files, exotic
// filesystems).
func readFileContents(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() == 0 {
		return []byte{}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return os.ReadFile(path)
	}
	defer m.Unmap()
	data := make([]byte, len(m))
	copy(data, m)
	return data, nil
}
