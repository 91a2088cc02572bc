// Package assets handles model loading and caching.
package assets

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/Faultbox/meshweld/internal/model"
)

// ErrNotFound is returned by Get for unknown ids.
var ErrNotFound = errors.New("asset not found")

// Entry is a loaded model and the id it was registered under.
type Entry struct {
	ID    uuid.UUID
	Path  string
	Model *model.Model
}

// Manager loads models through a Loader and caches them by path.
type Manager struct {
	loader *model.Loader
	cache  *Cache
	byID   map[uuid.UUID]*Entry
	mu     sync.RWMutex
}

// NewManager creates a new asset manager. A nil loader behaves like the zero
// model.Loader.
func NewManager(loader *model.Loader) *Manager {
	if loader == nil {
		loader = &model.Loader{}
	}
	return &Manager{
		loader: loader,
		cache:  NewCache(),
		byID:   make(map[uuid.UUID]*Entry),
	}
}

// Load returns the cached entry for path, loading it on first use.
// Failed loads are not cached.
func (m *Manager) Load(path string) (*Entry, error) {
	key := filepath.Clean(path)

	// Check cache first
	if e, ok := m.cache.Get(key); ok {
		return e, nil
	}

	mdl, err := m.loader.Load(path)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another goroutine may have loaded the same path meanwhile.
	if e, ok := m.cache.Peek(key); ok {
		return e, nil
	}
	e := &Entry{ID: uuid.New(), Path: key, Model: mdl}
	m.cache.Set(key, e)
	m.byID[e.ID] = e
	return e, nil
}

// Get returns the entry registered under id.
func (m *Manager) Get(id uuid.UUID) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

// LoadAll loads paths with up to workers concurrent loads. Entries are
// returned in the order of paths; a failed path leaves a nil entry and its
// error is joined into the result.
func (m *Manager) LoadAll(paths []string, workers int) ([]*Entry, error) {
	if workers < 1 {
		workers = 1
	}

	entries := make([]*Entry, len(paths))
	errs := make([]error, len(paths))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entries[i], errs[i] = m.Load(paths[i])
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return entries, errors.Join(errs...)
}

// Len returns the number of cached models.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops all cached models.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byID = make(map[uuid.UUID]*Entry)
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded models.
type Cache struct {
	data map[string]*Entry
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*Entry),
	}
}

// Get retrieves an item from cache and counts the lookup.
func (c *Cache) Get(key string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return e, ok
}

// Peek retrieves an item without touching the statistics.
func (c *Cache) Peek(key string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.data[key]
	return e, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = e
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*Entry)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
