// Package cache holds short-lived read models in process memory.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// InMemoryCache is a size-bounded LRU whose entries expire after a TTL.
type InMemoryCache struct {
	lru *expirable.LRU[string, any]
}

func NewInMemoryCache(size int, ttl time.Duration) *InMemoryCache {
	return &InMemoryCache{
		lru: expirable.NewLRU[string, any](size, nil, ttl),
	}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (any, bool) {
	return c.lru.Get(key)
}

func (c *InMemoryCache) Set(_ context.Context, key string, value any) {
	c.lru.Add(key, value)
}

func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.lru.Remove(key)
}

// DeletePrefix drops every key starting with prefix.
func (c *InMemoryCache) DeletePrefix(_ context.Context, prefix string) int {
	n := 0
	for _, key := range c.lru.Keys() {
		if strings.HasPrefix(key, prefix) && c.lru.Remove(key) {
			n++
		}
	}
	return n
}

func (c *InMemoryCache) Len() int {
	return c.lru.Len()
}

// Purge empties the cache.
func (c *InMemoryCache) Purge() {
	c.lru.Purge()
}
