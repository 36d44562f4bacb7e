package eth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/somnia-network/govauth/core"
	"github.com/somnia-network/govauth/ports"
)

const (
	// signatureLength is r (32) + s (32) + recovery id (1).
	signatureLength = 65

	// personalMessagePrefix is the EIP-191 domain separator. Prefixing the
	// message length before hashing keeps signed authentication payloads
	// from ever colliding with raw transaction payloads.
	personalMessagePrefix = "\x19Ethereum Signed Message:\n"

	nonceBytes = 8
)

// Verifier recovers Ethereum addresses from personal-sign secp256k1
// signatures. It holds no state and is safe for concurrent use.
type Verifier struct{}

// NewVerifier creates a new signature verifier.
func NewVerifier() ports.Verifier {
	return &Verifier{}
}

// RecoverAddress recovers the signer of message from a 65-byte r‖s‖v hex
// signature, hashed with the EIP-191 personal-sign scheme.
func (v *Verifier) RecoverAddress(message, signature string) (common.Address, error) {
	sig, err := decodeSignature(signature)
	if err != nil {
		return common.Address{}, err
	}

	// Wallets emit a recovery id of 27/28, secp256k1 wants 0/1.
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	if sig[64] > 1 {
		return common.Address{}, fmt.Errorf("%w: recovery failed", core.ErrInvalidSignature)
	}

	pubKey, err := crypto.SigToPub(PersonalHash(message), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: recovery failed", core.ErrInvalidSignature)
	}

	// Keccak256 of the uncompressed public key without its format byte,
	// last 20 bytes. Must stay bit-for-bit compatible with externally
	// held accounts.
	return crypto.PubkeyToAddress(*pubKey), nil
}

// VerifyForAddress recovers the signer of message and compares it to
// expected. Verification errors are returned, never coerced to false.
func (v *Verifier) VerifyForAddress(message, signature string, expected common.Address) (bool, error) {
	recovered, err := v.RecoverAddress(message, signature)
	if err != nil {
		return false, err
	}
	return recovered == expected, nil
}

// GenerateNonce returns a cryptographically random 64-bit value rendered as
// 16 lowercase hex characters.
func (v *Verifier) GenerateNonce() (string, error) {
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ValidFormat reports whether signature is exactly 130 hex characters after
// stripping an optional 0x prefix.
func (v *Verifier) ValidFormat(signature string) bool {
	sig := strings.TrimPrefix(signature, "0x")
	if len(sig) != 2*signatureLength {
		return false
	}
	for _, c := range sig {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

// PersonalHash hashes message with the EIP-191 personal-sign prefix.
func PersonalHash(message string) []byte {
	prefixed := fmt.Sprintf("%s%d%s", personalMessagePrefix, len(message), message)
	return crypto.Keccak256([]byte(prefixed))
}

func decodeSignature(signature string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(signature, "0x"))
	if err != nil || len(raw) != signatureLength {
		return nil, fmt.Errorf("%w: malformed", core.ErrInvalidSignature)
	}
	return raw, nil
}

func isHexDigit(c rune) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}
