// Package assets loads scene meshes from disk and from built-in primitives.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned when no root holds the requested mesh.
var ErrNotFound = errors.New("asset not found")

// BuiltinPrefix selects a generated primitive instead of a file.
const BuiltinPrefix = "builtin:"

// Descriptor names a mesh: a path relative to an asset root, an absolute
// path, or BuiltinPrefix followed by a primitive name.
type Descriptor string

// Source decodes mesh data. Implementations must be safe to call from any
// goroutine; no GPU resources are touched.
type Source interface {
	Load(desc Descriptor) (*Mesh, error)
}

// Manager resolves descriptors against a list of root directories.
type Manager struct {
	roots []string
	cache *Cache
	mu    sync.RWMutex
}

// Compile-time interface check
var _ Source = (*Manager)(nil)

// NewManager creates a manager searching the given roots.
func NewManager(roots ...string) *Manager {
	return &Manager{
		roots: append([]string(nil), roots...),
		cache: NewCache(),
	}
}

// AddRoot adds a directory to search.
// Roots are searched in reverse order (last added = highest priority).
func (m *Manager) AddRoot(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("asset root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("asset root %s: not a directory", dir)
	}

	m.mu.Lock()
	m.roots = append(m.roots, dir)
	m.mu.Unlock()
	return nil
}

// Load returns the mesh for desc, decoding it on first use.
func (m *Manager) Load(desc Descriptor) (*Mesh, error) {
	key := string(desc)
	if mesh, ok := m.cache.Get(key); ok {
		return mesh, nil
	}

	var (
		mesh *Mesh
		err  error
	)
	if name, ok := strings.CutPrefix(key, BuiltinPrefix); ok {
		mesh, err = Builtin(name)
	} else {
		mesh, err = m.loadFile(key)
	}
	if err != nil {
		return nil, err
	}

	m.cache.Set(key, mesh)
	return mesh, nil
}

// CacheStats reports cache hits and misses since the last Purge.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

// Purge drops every cached mesh; later loads decode again.
func (m *Manager) Purge() {
	m.cache.Clear()
}

func (m *Manager) loadFile(name string) (*Mesh, error) {
	if filepath.IsAbs(name) {
		return ReadMeshFile(name)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		path := filepath.Join(m.roots[i], name)
		if _, err := os.Stat(path); err == nil {
			return ReadMeshFile(path)
		}
	}
	return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Cache is a simple in-memory cache for decoded meshes.
type Cache struct {
	data map[string]*Mesh
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*Mesh),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*Mesh, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mesh, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return mesh, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, mesh *Mesh) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = mesh
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*Mesh)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
