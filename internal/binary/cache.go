package binary

import "sync"

// PathCache is the in-memory half of the acquisition cache: a process-wide
// single-assignment cell memoizing a resolved binary path. It is
// write-once-read-many: the first writer wins and later writes are silently
// discarded. TrySet never fails, it only reports whether the value was
// stored. The cell carries no cross-process meaning.
type PathCache interface {
	// Get returns the memoized path, if one was ever stored.
	Get() (string, bool)
	// TrySet stores the path if the cell is still empty and reports
	// whether this call was the winning write.
	TrySet(path string) bool
}

type memoryCache struct {
	mu   sync.Mutex
	path string
	set  bool
}

// NewPathCache returns an empty single-assignment path cell.
func NewPathCache() PathCache {
	return &memoryCache{}
}

func (c *memoryCache) Get() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path, c.set
}

func (c *memoryCache) TrySet(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.set {
		return false
	}
	c.path = path
	c.set = true
	return true
}

type nopCache struct{}

// NopPathCache returns a PathCache that stores nothing, for callers that
// want every acquisition to re-check the disk.
func NopPathCache() PathCache {
	return nopCache{}
}

func (nopCache) Get() (string, bool)  { return "", false }
func (nopCache) TrySet(string) bool   { return false }
