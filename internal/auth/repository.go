// Package auth implements shared-password authentication with opaque,
// server-side session tokens.
package auth

import (
	"sync"
	"time"
)

// Repository is the in-memory session table, keyed by token hash.
//
// Entries are evicted lazily: Lookup drops an expired entry it finds and
// Insert sweeps the whole table. There is no background timer. Nothing is
// persisted; a restart invalidates every session.
type Repository struct {
	mu       sync.Mutex
	sessions map[string]time.Time // token hash -> expiresAt
}

// NewRepository creates an empty session table.
func NewRepository() *Repository {
	return &Repository{sessions: make(map[string]time.Time)}
}

// Insert stores a session and evicts every entry that has expired by now.
func (r *Repository) Insert(tokenHash string, expiresAt, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[tokenHash] = expiresAt
	for hash, exp := range r.sessions {
		if !exp.After(now) {
			delete(r.sessions, hash)
		}
	}
}

// Lookup reports whether an unexpired session exists for tokenHash.
// An expired entry is removed as a side effect.
func (r *Repository) Lookup(tokenHash string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.sessions[tokenHash]
	if !ok {
		return false
	}
	if !exp.After(now) {
		delete(r.sessions, tokenHash)
		return false
	}
	return true
}

// Delete removes a session. Deleting a missing hash is a no-op.
func (r *Repository) Delete(tokenHash string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, tokenHash)
}

// Len returns the number of stored entries, expired ones included.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
