package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/somnia-network/govauth/core"
	"github.com/somnia-network/govauth/ports"
)

const (
	// DefaultChallengeTTL is how long a challenge stays valid.
	DefaultChallengeTTL = 5 * time.Minute

	// DefaultSessionTTL is how long an issued token stays valid.
	DefaultSessionTTL = 24 * time.Hour

	// DefaultSweepInterval is how often the background sweeper runs.
	DefaultSweepInterval = 5 * time.Minute
)

// Config holds the tunables of the authentication service.
type Config struct {
	MessageTemplate string
	ChallengeTTL    time.Duration
	SessionTTL      time.Duration
}

// AuthService orchestrates the challenge/response protocol: it issues
// challenges, verifies signed responses and manages the lifecycle of the
// session tokens it hands out. It is the only component that mutates the
// stores.
type AuthService struct {
	verifier   ports.Verifier
	challenges ports.ChallengeStore
	tokens     ports.TokenStore
	events     ports.EventPublisher
	log        *slog.Logger

	messageTemplate string
	challengeTTL    time.Duration
	sessionTTL      time.Duration
}

// NewAuthService creates a new authentication service. Zero values in cfg
// fall back to the defaults.
func NewAuthService(
	verifier ports.Verifier,
	challenges ports.ChallengeStore,
	tokens ports.TokenStore,
	events ports.EventPublisher,
	log *slog.Logger,
	cfg Config,
) *AuthService {
	if cfg.MessageTemplate == "" {
		cfg.MessageTemplate = core.DefaultMessageTemplate
	}
	if cfg.ChallengeTTL <= 0 {
		cfg.ChallengeTTL = DefaultChallengeTTL
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if log == nil {
		log = slog.Default()
	}

	return &AuthService{
		verifier:        verifier,
		challenges:      challenges,
		tokens:          tokens,
		events:          events,
		log:             log,
		messageTemplate: cfg.MessageTemplate,
		challengeTTL:    cfg.ChallengeTTL,
		sessionTTL:      cfg.SessionTTL,
	}
}

// CreateChallenge issues a new challenge for address, replacing any
// outstanding one. The returned message is what the wallet must sign; the
// nonce is an opaque confirmation value.
func (s *AuthService) CreateChallenge(address string) (core.Challenge, error) {
	addr, err := core.ParseAddress(address)
	if err != nil {
		return core.Challenge{}, err
	}

	nonce, err := s.verifier.GenerateNonce()
	if err != nil {
		return core.Challenge{}, fmt.Errorf("failed to create challenge: %w", err)
	}

	now := time.Now()
	message := core.RenderMessage(s.messageTemplate, nonce, addr, now)
	if err := core.ValidateMessage(message); err != nil {
		return core.Challenge{}, err
	}

	challenge := core.Challenge{
		Nonce:     nonce,
		Message:   message,
		Address:   addr,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.challengeTTL),
	}
	s.challenges.Put(challenge)

	// Opportunistic cleanup keeps the map bounded between sweeper runs.
	s.challenges.SweepExpired(now)

	return challenge, nil
}

// Authenticate verifies a signed challenge response and, on success, issues
// a session token. Every expected rejection is reported through the result's
// Reason; recovery from any of them is requesting a new challenge.
func (s *AuthService) Authenticate(ctx context.Context, address, message, signature string) *core.AuthResult {
	addr, err := core.ParseAddress(address)
	if err != nil {
		return core.Failure(core.ReasonInvalidAddress)
	}

	challenge, ok := s.challenges.Get(addr)
	if !ok {
		return core.Failure(core.ReasonNoChallenge)
	}

	now := time.Now()
	if challenge.Expired(now) {
		s.challenges.Delete(addr)
		return core.Failure(core.ReasonChallengeExpired)
	}

	// Byte-exact match keeps a client from signing a weaker statement than
	// the one that was issued.
	if message != challenge.Message {
		return core.Failure(core.ReasonMessageMismatch)
	}

	// Recovery is CPU-bound and runs outside both store locks.
	match, err := s.verifier.VerifyForAddress(message, signature, addr)
	if err != nil {
		s.log.Debug("signature verification failed", "address", addr.Hex(), "err", err)
		return core.Failure(core.ReasonVerificationError)
	}
	if !match {
		return core.Failure(core.ReasonSignatureInvalid)
	}

	// Compare-and-delete on the nonce: of two concurrent attempts against
	// the same challenge, exactly one gets past this point.
	if !s.challenges.Consume(addr, challenge.Nonce) {
		return core.Failure(core.ReasonNoChallenge)
	}

	tokenID := uuid.NewString()
	token := core.Token{
		Address:   addr,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
		Nonce:     challenge.Nonce,
	}
	s.tokens.Put(tokenID, token)
	s.tokens.SweepExpired(now)

	if s.events != nil {
		if err := s.events.PublishLogin(ctx, addr.Hex(), tokenID); err != nil {
			s.log.Warn("failed to publish login event", "err", err)
		}
	}

	s.log.Info("user authenticated", "address", addr.Hex())

	return &core.AuthResult{
		Success:   true,
		TokenID:   tokenID,
		Address:   addr,
		ExpiresAt: token.ExpiresAt,
	}
}

// VerifyToken looks up a token by its opaque id. Expired tokens are reported
// as absent but left in place; removal is the sweeper's job.
func (s *AuthService) VerifyToken(tokenID string) (core.Token, bool) {
	token, ok := s.tokens.Get(tokenID)
	if !ok || token.Expired(time.Now()) {
		return core.Token{}, false
	}
	return token, true
}

// RevokeToken removes a token by id. Revoking an absent token returns false,
// so the operation is idempotent.
func (s *AuthService) RevokeToken(ctx context.Context, tokenID string) bool {
	token, ok := s.tokens.Get(tokenID)
	if !ok {
		return false
	}
	if !s.tokens.Delete(tokenID) {
		return false
	}

	if s.events != nil {
		if err := s.events.PublishRevoke(ctx, token.Address.Hex(), tokenID); err != nil {
			s.log.Warn("failed to publish revoke event", "err", err)
		}
	}

	s.log.Info("token revoked", "address", token.Address.Hex())
	return true
}

// TokensForAddress lists the active token ids held by one address.
func (s *AuthService) TokensForAddress(address common.Address) []string {
	return s.tokens.ActiveIDs(address, time.Now())
}

// Sweep removes expired challenges and tokens from both stores. Safe to call
// concurrently with any other operation.
func (s *AuthService) Sweep() (challenges, tokens int) {
	now := time.Now()
	challenges = s.challenges.SweepExpired(now)
	tokens = s.tokens.SweepExpired(now)
	if challenges > 0 || tokens > 0 {
		s.log.Debug("swept expired entries", "challenges", challenges, "tokens", tokens)
	}
	return challenges, tokens
}

// RunSweeper sweeps on a fixed interval until ctx is cancelled. Call Sweep
// directly to trigger a pass without waiting.
func (s *AuthService) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Stats returns a snapshot of store occupancy. The counts from the two
// independently locked stores are eventually consistent with each other.
func (s *AuthService) Stats() core.Stats {
	addresses := make(map[common.Address]struct{})
	for _, addr := range s.challenges.Addresses() {
		addresses[addr] = struct{}{}
	}
	for _, addr := range s.tokens.Addresses() {
		addresses[addr] = struct{}{}
	}

	return core.Stats{
		ActiveChallenges: s.challenges.Count(),
		ActiveTokens:     s.tokens.Count(),
		TotalAddresses:   len(addresses),
	}
}
