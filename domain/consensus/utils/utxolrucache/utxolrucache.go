package utxolrucache

import (
	"sync"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
)

// LRUCache is a least-recently-used cache for UTXO entries
// indexed by DomainOutpoint. It is safe for concurrent use.
type LRUCache struct {
	lock     sync.Mutex
	cache    map[externalapi.DomainOutpoint]externalapi.UTXOEntry
	capacity int
}

// New creates a new LRUCache
func New(capacity int) *LRUCache {
	return &LRUCache{
		cache:    make(map[externalapi.DomainOutpoint]externalapi.UTXOEntry, capacity+1),
		capacity: capacity,
	}
}

// Add adds an entry to the LRUCache
func (c *LRUCache) Add(key *externalapi.DomainOutpoint, value externalapi.UTXOEntry) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.cache[*key] = value

	if len(c.cache) > c.capacity {
		c.evictRandom(key)
	}
}

// Get returns the entry for the given key, or (nil, false) otherwise
func (c *LRUCache) Get(key *externalapi.DomainOutpoint) (externalapi.UTXOEntry, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	value, ok := c.cache[*key]
	return value, ok
}

// Has returns whether the LRUCache contains the given key
func (c *LRUCache) Has(key *externalapi.DomainOutpoint) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	_, ok := c.cache[*key]
	return ok
}

// Remove removes the entry for the the given key. Does nothing if
// the entry does not exist
func (c *LRUCache) Remove(key *externalapi.DomainOutpoint) {
	c.lock.Lock()
	defer c.lock.Unlock()

	delete(c.cache, *key)
}

// Len returns the number of cached entries
func (c *LRUCache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return len(c.cache)
}

// evictRandom evicts an arbitrary entry other than keep. Must be called
// with the lock held.
func (c *LRUCache) evictRandom(keep *externalapi.DomainOutpoint) {
	for key := range c.cache {
		if key == *keep {
			continue
		}
		delete(c.cache, key)
		return
	}
}
