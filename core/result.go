package core

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// FailureReason identifies why an authentication attempt was rejected.
type FailureReason string

const (
	// ReasonInvalidAddress means the submitted address did not parse.
	ReasonInvalidAddress FailureReason = "invalid_address"

	// ReasonNoChallenge means no challenge is stored for the address.
	ReasonNoChallenge FailureReason = "no_challenge"

	// ReasonChallengeExpired means the stored challenge passed its expiry.
	ReasonChallengeExpired FailureReason = "challenge_expired"

	// ReasonMessageMismatch means the submitted message differs from the
	// message that was issued with the challenge.
	ReasonMessageMismatch FailureReason = "message_mismatch"

	// ReasonSignatureInvalid means recovery succeeded but the signer is not
	// the claimed address.
	ReasonSignatureInvalid FailureReason = "signature_invalid"

	// ReasonVerificationError means the signature could not be decoded or
	// the public key could not be recovered.
	ReasonVerificationError FailureReason = "verification_error"
)

// AuthResult is the outcome of an authentication attempt. Expected
// rejections are reported through Reason rather than as errors so callers
// can render each one distinctly.
type AuthResult struct {
	Success   bool
	TokenID   string
	Address   common.Address
	ExpiresAt time.Time
	Reason    FailureReason
}

// Failure builds a rejected AuthResult with the given reason.
func Failure(reason FailureReason) *AuthResult {
	return &AuthResult{Reason: reason}
}
