package store

import (
	"sync"
	"testing"
	"time"

	"github.com/authbridge/gateway-authorizer/internal/token/tokencore"
)

func TestStore_SetAndGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		token   tokencore.CachedToken
		margin  time.Duration
		wantHit bool
	}{
		{
			name:    "fresh token is returned",
			token:   tokencore.CachedToken{Value: "tok", ExpiresAt: time.Now().Add(1 * time.Hour)},
			margin:  30 * time.Second,
			wantHit: true,
		},
		{
			name:    "expired token is treated as absent",
			token:   tokencore.CachedToken{Value: "tok", ExpiresAt: time.Now().Add(-1 * time.Minute)},
			margin:  30 * time.Second,
			wantHit: false,
		},
		{
			name:    "token inside the margin is treated as absent",
			token:   tokencore.CachedToken{Value: "tok", ExpiresAt: time.Now().Add(10 * time.Second)},
			margin:  30 * time.Second,
			wantHit: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewStore(tt.margin)
			s.Set("key", tt.token)

			got, ok := s.Get("key")
			if ok != tt.wantHit {
				t.Fatalf("Get() ok = %v, want %v", ok, tt.wantHit)
			}
			if tt.wantHit && got.Value != tt.token.Value {
				t.Errorf("Get() value = %q, want %q", got.Value, tt.token.Value)
			}
		})
	}
}

func TestStore_GetMissingKey(t *testing.T) {
	t.Parallel()

	s := NewStore(30 * time.Second)

	if _, ok := s.Get("nonexistent"); ok {
		t.Error("Get() on empty store should report absent")
	}
}

func TestStore_SetReplacesPriorEntry(t *testing.T) {
	t.Parallel()

	s := NewStore(30 * time.Second)
	expiry := time.Now().Add(1 * time.Hour)

	s.Set("key", tokencore.CachedToken{Value: "first", ExpiresAt: expiry})
	s.Set("key", tokencore.CachedToken{Value: "second", ExpiresAt: expiry})

	got, ok := s.Get("key")
	if !ok {
		t.Fatal("Get() after Set() reported absent")
	}
	if got.Value != "second" {
		t.Errorf("Get() value = %q, want %q (last writer wins)", got.Value, "second")
	}
}

func TestStore_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	s := NewStore(30 * time.Second)
	expiry := time.Now().Add(1 * time.Hour)

	s.Set("a", tokencore.CachedToken{Value: "tok-a", ExpiresAt: expiry})

	if _, ok := s.Get("b"); ok {
		t.Error("Get() for a different key should report absent")
	}
}

func TestStore_Cleanup(t *testing.T) {
	t.Parallel()

	s := NewStore(30 * time.Second)

	s.Set("stale", tokencore.CachedToken{Value: "old", ExpiresAt: time.Now().Add(-1 * time.Minute)})
	s.Set("fresh", tokencore.CachedToken{Value: "new", ExpiresAt: time.Now().Add(1 * time.Hour)})

	if got := s.Size(); got != 2 {
		t.Fatalf("Size() before cleanup = %d, want 2", got)
	}

	s.Cleanup()

	if got := s.Size(); got != 1 {
		t.Errorf("Size() after cleanup = %d, want 1", got)
	}
	if _, ok := s.Get("fresh"); !ok {
		t.Error("Cleanup() removed a fresh entry")
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewStore(30 * time.Second)
	expiry := time.Now().Add(1 * time.Hour)

	const numGoroutines = 100
	const numOperations = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2) // readers and writers

	// Start writers
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				key := "key" + string(rune('0'+id%10))
				s.Set(key, tokencore.CachedToken{Value: "tok", ExpiresAt: expiry})
			}
		}(i)
	}

	// Start readers
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				key := "key" + string(rune('0'+id%10))
				_, _ = s.Get(key)
			}
		}(i)
	}

	wg.Wait()

	// If we get here without a race detector report, the test passes.
}
