package core

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Challenge represents a pending authentication challenge. At most one
// challenge is live per address; issuing a new one replaces the old.
type Challenge struct {
	Nonce     string         // Random nonce embedded in the message
	Message   string         // Rendered message the wallet must sign
	Address   common.Address // Address the challenge was issued to
	IssuedAt  time.Time      // When the challenge was created
	ExpiresAt time.Time      // When the challenge expires
}

// Expired reports whether the challenge has passed its expiry at now.
func (c Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Token represents an issued session credential. It is addressed by an
// opaque random id held by the client; the id is generated independently
// and never derived from these fields.
type Token struct {
	Address   common.Address // Address that proved key ownership
	IssuedAt  time.Time      // When the token was issued
	ExpiresAt time.Time      // When the token expires
	Nonce     string         // Nonce of the consumed challenge, kept for audit linkage
}

// Expired reports whether the token has passed its expiry at now.
func (t Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Stats is a point-in-time snapshot of store occupancy.
type Stats struct {
	ActiveChallenges int `json:"active_challenges"`
	ActiveTokens     int `json:"active_tokens"`
	TotalAddresses   int `json:"total_addresses"`
}
