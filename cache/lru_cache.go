// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cache

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"
)

// LRUCache is a size-bounded cache for immutable values. Concurrent fetches
// for the same key are deduplicated. A value fetched while its key was removed
// is returned to the callers of that fetch but not cached.
type LRUCache[K comparable, V any] struct {
	cache   *lru.Cache
	sfGroup singleflight.Group

	// lock guards generation together with the adds and removes it orders
	lock       sync.Mutex
	generation uint64
}

// NewLRUCache creates a cache holding at most size values.
// size should be > 0, or an error returned.
func NewLRUCache[K comparable, V any](size int) (*LRUCache[K, V], error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &LRUCache[K, V]{cache: cache}, nil
}

// Get checks if the cached value exists for a given key, otherwise fetches
// the value using fetchFunc. If [invalidate] is true, the value will be cleared
// from the cache prior to fetching. Failed fetches are not cached.
func (c *LRUCache[K, V]) Get(key K, fetchFunc func(K) (V, error), invalidate bool) (V, error) {
	if invalidate {
		c.Remove(key)
	} else if value, ok := c.cache.Get(key); ok {
		return value.(V), nil
	}

	v, err, _ := c.sfGroup.Do(keyToString(key), func() (interface{}, error) {
		c.lock.Lock()
		generation := c.generation
		c.lock.Unlock()

		newValue, fetchErr := fetchFunc(key)
		if fetchErr != nil {
			return *new(V), fetchErr
		}

		c.lock.Lock()
		defer c.lock.Unlock()
		if c.generation == generation {
			c.cache.Add(key, newValue)
		}
		return newValue, nil
	})
	if err != nil {
		return *new(V), err
	}
	return v.(V), nil
}

// Peek returns the cached value for key without fetching it.
func (c *LRUCache[K, V]) Peek(key K) (V, bool) {
	value, ok := c.cache.Peek(key)
	if !ok {
		return *new(V), false
	}
	return value.(V), true
}

// Remove drops key from the cache. A fetch already in flight is not cached and
// later calls to Get start a new fetch.
func (c *LRUCache[K, V]) Remove(key K) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.generation++
	c.cache.Remove(key)
	c.sfGroup.Forget(keyToString(key))
}

// Len returns the number of cached values
func (c *LRUCache[K, V]) Len() int {
	return c.cache.Len()
}

// keyToString is defined to allow for both fmt.Stringer and primitive string types.
func keyToString[K comparable](key K) string {
	if s, ok := any(key).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", key)
}
