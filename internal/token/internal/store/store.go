// Package store provides the in-memory token store shared by all
// invocations running in the same warm process.
package store

import (
	"sync"
	"time"

	"github.com/authbridge/gateway-authorizer/internal/token/tokencore"
)

// Store holds cached tokens keyed by credential identity.
// It is safe for concurrent use by multiple goroutines.
//
// The store applies the configured safety margin at read time: a token
// within the margin of its expiry is reported as absent. Writers replace
// any prior entry unconditionally; writes only happen after the caller has
// independently verified staleness, so last-writer-wins is acceptable.
type Store struct {
	mu      sync.RWMutex
	entries map[string]tokencore.CachedToken
	margin  time.Duration
	now     func() time.Time
}

// NewStore creates a new token store with the given safety margin.
func NewStore(margin time.Duration) *Store {
	return &Store{
		entries: make(map[string]tokencore.CachedToken),
		margin:  margin,
		now:     time.Now,
	}
}

// Get retrieves the cached token for the given key.
// Returns false if no token is stored or the stored token is within the
// safety margin of its expiry.
func (s *Store) Get(key string) (tokencore.CachedToken, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return tokencore.CachedToken{}, false
	}

	if !entry.Fresh(s.now(), s.margin) {
		return tokencore.CachedToken{}, false
	}

	return entry, true
}

// Set stores a token under the given key, replacing any prior entry.
func (s *Store) Set(key string, tok tokencore.CachedToken) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = tok
}

// Cleanup removes all stale entries from the store.
// Stale entries are otherwise harmless but accumulate if credential
// identities rotate over a long process lifetime.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.entries {
		if !entry.Fresh(now, s.margin) {
			delete(s.entries, key)
		}
	}
}

// Size returns the number of entries currently in the store, including
// stale entries that have not been cleaned up yet.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
