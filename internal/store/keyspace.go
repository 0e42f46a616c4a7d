// Package store holds the shared, concurrency-safe state every
// connection task reads and mutates: the Keyspace and the Info Store
// (spec.md §3, §4.4, §4.5).
package store

import (
	"sync"
	"time"
)

// entry is a Keyspace Entry (spec.md §3): a string value with an
// optional absolute expiry instant.
type entry struct {
	value  string
	expiry *time.Time
}

// Keyspace is the primary key -> value map, guarded by a single
// exclusive lock held only for the duration of each operation
// (spec.md §4.4, §5). There is no background expiry sweeper: entries
// past their expiry are evicted lazily, on the next read that finds
// them (spec.md §9).
type Keyspace struct {
	mu   sync.Mutex
	data map[string]entry
}

func NewKeyspace() *Keyspace {
	return &Keyspace{data: make(map[string]entry)}
}

// Set inserts or unconditionally overwrites key. ttl, when non-nil, sets
// the entry's expiry to now+ttl; a nil ttl means the entry never expires.
func (k *Keyspace) Set(key, value string, ttl *time.Duration) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e := entry{value: value}
	if ttl != nil {
		exp := time.Now().Add(*ttl)
		e.expiry = &exp
	}
	k.data[key] = e
}

// Get returns the value for key and true, or ("", false) if the key is
// absent or its expiry has passed. An expired entry is deleted as a side
// effect of this read.
func (k *Keyspace) Get(key string) (string, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, ok := k.data[key]
	if !ok {
		return "", false
	}
	if e.expiry != nil && !time.Now().Before(*e.expiry) {
		delete(k.data, key)
		return "", false
	}
	return e.value, true
}
