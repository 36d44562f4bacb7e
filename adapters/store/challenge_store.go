package store

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/somnia-network/govauth/core"
	"github.com/somnia-network/govauth/ports"
)

// MemoryChallengeStore is an in-memory ChallengeStore guarded by a RWMutex.
// Session state is single-process by design; there is no persistence.
type MemoryChallengeStore struct {
	mu         sync.RWMutex
	challenges map[common.Address]core.Challenge
}

// NewMemoryChallengeStore creates a new in-memory challenge store.
func NewMemoryChallengeStore() ports.ChallengeStore {
	return &MemoryChallengeStore{
		challenges: make(map[common.Address]core.Challenge),
	}
}

// Put stores a challenge, replacing any outstanding one for the address.
func (s *MemoryChallengeStore) Put(challenge core.Challenge) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.challenges[challenge.Address] = challenge
}

// Get returns the stored challenge for an address.
func (s *MemoryChallengeStore) Get(address common.Address) (core.Challenge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	challenge, ok := s.challenges[address]
	return challenge, ok
}

// Consume deletes the challenge iff it still carries the given nonce. The
// write lock linearizes consumption, so of two concurrent callers holding
// the same challenge exactly one observes true.
func (s *MemoryChallengeStore) Consume(address common.Address, nonce string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[address]
	if !ok || challenge.Nonce != nonce {
		return false
	}

	delete(s.challenges, address)
	return true
}

// Delete removes the challenge for an address if present.
func (s *MemoryChallengeStore) Delete(address common.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.challenges[address]; !ok {
		return false
	}

	delete(s.challenges, address)
	return true
}

// SweepExpired removes every challenge expired at now.
func (s *MemoryChallengeStore) SweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for address, challenge := range s.challenges {
		if challenge.Expired(now) {
			delete(s.challenges, address)
			removed++
		}
	}
	return removed
}

// Count returns the number of stored challenges.
func (s *MemoryChallengeStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.challenges)
}

// Addresses lists the addresses with a stored challenge.
func (s *MemoryChallengeStore) Addresses() []common.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()

	addresses := make([]common.Address, 0, len(s.challenges))
	for address := range s.challenges {
		addresses = append(addresses, address)
	}
	return addresses
}
