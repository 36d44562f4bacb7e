package store

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somnia-network/govauth/core"
)

func newToken(addr common.Address, ttl time.Duration) core.Token {
	now := time.Now()
	return core.Token{
		Address:   addr,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		Nonce:     "abcd",
	}
}

func TestTokenStorePutGetDelete(t *testing.T) {
	s := NewMemoryTokenStore()
	addr := common.HexToAddress("0x01")

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Put("id-1", newToken(addr, time.Hour))

	got, ok := s.Get("id-1")
	require.True(t, ok)
	assert.Equal(t, addr, got.Address)

	assert.True(t, s.Delete("id-1"))
	assert.False(t, s.Delete("id-1"))
	assert.Equal(t, 0, s.Count())
}

func TestTokenStoreSweepExpired(t *testing.T) {
	s := NewMemoryTokenStore()
	addr := common.HexToAddress("0x02")

	s.Put("live", newToken(addr, time.Hour))
	s.Put("stale", newToken(addr, -time.Second))

	removed := s.SweepExpired(time.Now())
	assert.Equal(t, 1, removed)

	_, ok := s.Get("live")
	assert.True(t, ok)
	_, ok = s.Get("stale")
	assert.False(t, ok)
}

func TestTokenStoreActiveIDs(t *testing.T) {
	s := NewMemoryTokenStore()
	a := common.HexToAddress("0x03")
	b := common.HexToAddress("0x04")

	s.Put("a-live", newToken(a, time.Hour))
	s.Put("a-stale", newToken(a, -time.Second))
	s.Put("b-live", newToken(b, time.Hour))

	ids := s.ActiveIDs(a, time.Now())
	assert.ElementsMatch(t, []string{"a-live"}, ids)

	assert.Empty(t, s.ActiveIDs(common.HexToAddress("0x05"), time.Now()))
}

func TestTokenStoreAddresses(t *testing.T) {
	s := NewMemoryTokenStore()
	a := common.HexToAddress("0x06")
	b := common.HexToAddress("0x07")

	s.Put("one", newToken(a, time.Hour))
	s.Put("two", newToken(b, time.Hour))

	assert.ElementsMatch(t, []common.Address{a, b}, s.Addresses())
}
