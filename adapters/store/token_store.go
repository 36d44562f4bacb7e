package store

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/somnia-network/govauth/core"
	"github.com/somnia-network/govauth/ports"
)

// MemoryTokenStore is an in-memory TokenStore guarded by its own RWMutex,
// independent of the challenge store's lock.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]core.Token
}

// NewMemoryTokenStore creates a new in-memory token store.
func NewMemoryTokenStore() ports.TokenStore {
	return &MemoryTokenStore{
		tokens: make(map[string]core.Token),
	}
}

// Put stores a token under its id.
func (s *MemoryTokenStore) Put(id string, token core.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[id] = token
}

// Get returns the token stored under id.
func (s *MemoryTokenStore) Get(id string) (core.Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[id]
	return token, ok
}

// Delete removes the token stored under id if present.
func (s *MemoryTokenStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[id]; !ok {
		return false
	}

	delete(s.tokens, id)
	return true
}

// SweepExpired removes every token expired at now.
func (s *MemoryTokenStore) SweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, token := range s.tokens {
		if token.Expired(now) {
			delete(s.tokens, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of stored tokens.
func (s *MemoryTokenStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tokens)
}

// Addresses lists the addresses holding stored tokens. An address holding
// several tokens appears once per token.
func (s *MemoryTokenStore) Addresses() []common.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()

	addresses := make([]common.Address, 0, len(s.tokens))
	for _, token := range s.tokens {
		addresses = append(addresses, token.Address)
	}
	return addresses
}

// ActiveIDs lists the ids of unexpired tokens held by an address.
func (s *MemoryTokenStore) ActiveIDs(address common.Address, now time.Time) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for id, token := range s.tokens {
		if token.Address == address && !token.Expired(now) {
			ids = append(ids, id)
		}
	}
	return ids
}
