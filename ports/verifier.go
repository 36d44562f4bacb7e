package ports

import "github.com/ethereum/go-ethereum/common"

// Verifier recovers signing addresses from signed messages. Implementations
// must be stateless and safe for concurrent use.
type Verifier interface {
	// GenerateNonce returns a fresh random nonce for a challenge message.
	GenerateNonce() (string, error)

	// RecoverAddress recovers the address that signed message.
	RecoverAddress(message, signature string) (common.Address, error)

	// VerifyForAddress recovers the signer and compares it to expected.
	// Verification errors are returned, never coerced to false.
	VerifyForAddress(message, signature string, expected common.Address) (bool, error)

	// ValidFormat reports whether signature looks like a well-formed
	// signature without decoding it.
	ValidFormat(signature string) bool
}
