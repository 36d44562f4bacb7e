package ports

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/somnia-network/govauth/core"
)

// ChallengeStore holds at most one pending challenge per address.
type ChallengeStore interface {
	// Put stores a challenge, replacing any outstanding one for the address.
	Put(challenge core.Challenge)

	// Get returns the stored challenge for an address.
	Get(address common.Address) (core.Challenge, bool)

	// Consume deletes the stored challenge iff it still carries the given
	// nonce. Of two concurrent callers holding the same challenge, exactly
	// one observes true.
	Consume(address common.Address, nonce string) bool

	// Delete removes the challenge for an address if present.
	Delete(address common.Address) bool

	// SweepExpired removes every challenge expired at now and returns how
	// many were removed.
	SweepExpired(now time.Time) int

	// Count returns the number of stored challenges.
	Count() int

	// Addresses lists the addresses with a stored challenge.
	Addresses() []common.Address
}

// TokenStore holds issued session tokens keyed by their opaque id.
type TokenStore interface {
	// Put stores a token under its id.
	Put(id string, token core.Token)

	// Get returns the token stored under id.
	Get(id string) (core.Token, bool)

	// Delete removes the token stored under id if present.
	Delete(id string) bool

	// SweepExpired removes every token expired at now and returns how many
	// were removed.
	SweepExpired(now time.Time) int

	// Count returns the number of stored tokens.
	Count() int

	// Addresses lists the addresses holding stored tokens.
	Addresses() []common.Address

	// ActiveIDs lists the ids of unexpired tokens held by an address.
	ActiveIDs(address common.Address, now time.Time) []string
}
