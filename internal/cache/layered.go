package cache

import "time"

// LayeredCache reads through memory then disk, promoting disk hits back
// into memory. Writes land in both layers.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache builds the standard two-layer arrangement used for
// news search responses.
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Get checks memory first, then disk. A disk hit is promoted to memory
// at the memory layer's default TTL.
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	val, found := c.disk.Get(key)
	if !found {
		return nil, false
	}
	_ = c.memory.Set(key, val, 0)
	return val, true
}

// Set writes to both layers; the first layer to fail reports the error.
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

// Delete removes key from both layers.
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear empties both layers.
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
