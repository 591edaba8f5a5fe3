package domain

import (
	"sync"
)

// DekCache holds plaintext Data Encryption Keys by chat identifier with
// thread-safe access. Entries live for the process lifetime (no eviction or
// TTL); a dropped cache is rebuilt from the durable chat key store on the next
// lookup. The cache is injected into the key lifecycle use case rather than
// being a package-level singleton, so tests can reset it deterministically.
type DekCache struct {
	keys sync.Map // chat ID → []byte DEK
}

// NewDekCache creates an empty DekCache.
func NewDekCache() *DekCache {
	return &DekCache{}
}

// Get retrieves the cached DEK for a chat, if present. The returned slice is
// a private copy: a later Clear cannot wipe a key a caller is still using.
func (c *DekCache) Get(chatID string) ([]byte, bool) {
	if v, ok := c.keys.Load(chatID); ok {
		dek := v.([]byte)
		out := make([]byte, len(dek))
		copy(out, dek)
		return out, true
	}

	return nil, false
}

// Put stores a private copy of the DEK for a chat. Later Puts for the same
// chat overwrite, which is harmless: once a chat key record exists its DEK
// never changes.
func (c *DekCache) Put(chatID string, dek []byte) {
	stored := make([]byte, len(dek))
	copy(stored, dek)
	c.keys.Store(chatID, stored)
}

// Clear zeroes the cache's own key copies and drops every entry. Slices
// previously handed out by Get are untouched, so in-flight operations keep
// the DEK they already hold; subsequent lookups re-fetch from the durable
// store.
func (c *DekCache) Clear() {
	c.keys.Range(func(key, value any) bool {
		if dek, ok := value.([]byte); ok {
			Zero(dek)
		}
		return true
	})
	c.keys.Clear()
}
