package pointcloud

import (
	"math/rand/v2"
	"sync"
)

// Cache is a concurrency-safe store of point sets keyed by regeneration epoch.
// Each epoch's set is generated once from (seed, epoch), so any frame can be
// rendered independently and still see the same points as its neighbours.
type Cache struct {
	mu      sync.RWMutex
	items   map[int]*Set
	n       int
	scale   float32
	seed    uint64
	palette Palette
}

// NewCache creates a cache producing sets of n points.
func NewCache(n int, scale float32, seed uint64, palette Palette) *Cache {
	return &Cache{
		items:   make(map[int]*Set),
		n:       n,
		scale:   scale,
		seed:    seed,
		palette: palette,
	}
}

// Get returns the set for epoch, generating it on first use.
func (c *Cache) Get(epoch int) (*Set, error) {
	// Fast path: read lock
	c.mu.RLock()
	if s, ok := c.items[epoch]; ok {
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	// Slow path: generate outside the lock
	s, err := New(c.n)
	if err != nil {
		return nil, err
	}
	s.Randomize(rand.New(rand.NewPCG(c.seed, uint64(epoch))), c.scale, c.palette)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[epoch]; ok {
		return existing, nil
	}
	c.items[epoch] = s
	return s, nil
}

// Evict drops every epoch below keep. Frames are rendered roughly in order,
// so old epochs are never needed again.
func (c *Cache) Evict(keep int) {
	c.mu.Lock()
	for e := range c.items {
		if e < keep {
			delete(c.items, e)
		}
	}
	c.mu.Unlock()
}

// Drop removes one epoch's set. A later Get regenerates the same points.
func (c *Cache) Drop(epoch int) {
	c.mu.Lock()
	delete(c.items, epoch)
	c.mu.Unlock()
}

// Len returns the number of sets currently held.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
