package token

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/rfreitas/task-tracker/internal/model"
)

// CacheTTL bounds how long a resolved identity may be served without
// re-verification. It is intentionally much shorter than the token lifetime:
// it limits how long a changed or deleted user record stays effectively
// logged in, without requiring active revocation.
const CacheTTL = time.Hour

// Cache memoizes token string → resolved identity with a TTL. Expired entries
// are treated as absent. Safe for concurrent use without caller locking.
type Cache struct {
	lru *lru.LRU[string, model.Identity]
}

// NewCache constructs a cache holding at most size entries, each valid for ttl.
func NewCache(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = 1024
	}
	return &Cache{lru: lru.NewLRU[string, model.Identity](size, nil, ttl)}
}

// Get returns the identity cached for tokenString, if present and fresh.
func (c *Cache) Get(tokenString string) (model.Identity, bool) {
	return c.lru.Get(tokenString)
}

// Add stores or overwrites the identity for tokenString.
func (c *Cache) Add(tokenString string, id model.Identity) {
	c.lru.Add(tokenString, id)
}

// Purge drops all entries.
func (c *Cache) Purge() {
	c.lru.Purge()
}
