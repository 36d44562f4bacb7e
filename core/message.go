package core

import (
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// MaxMessageLength caps the size of a message accepted for signing.
const MaxMessageLength = 1000

// Message templates offered to deployments. Substitution is literal
// placeholder replacement, not a template language.
const (
	DefaultMessageTemplate = "Sign this message to authenticate with Somnia Governance Engine: {nonce}"

	TimestampMessageTemplate = "Authenticate with Somnia Governance Engine\nNonce: {nonce}\nTimestamp: {timestamp}"

	DomainMessageTemplate = "governance.somnia.network wants you to sign in with your Ethereum account:\n{address}\n\nSign this message to authenticate.\n\nNonce: {nonce}"
)

// RenderMessage substitutes the {nonce}, {address} and {timestamp}
// placeholders in template.
func RenderMessage(template, nonce string, address common.Address, now time.Time) string {
	msg := strings.ReplaceAll(template, "{nonce}", nonce)
	msg = strings.ReplaceAll(msg, "{address}", address.Hex())
	msg = strings.ReplaceAll(msg, "{timestamp}", strconv.FormatInt(now.Unix(), 10))
	return msg
}

// ValidateMessage rejects empty or oversized messages before any
// cryptographic work happens.
func ValidateMessage(message string) error {
	if message == "" {
		return ErrMessageEmpty
	}
	if len(message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

// ParseAddress validates and normalizes an address string to its canonical
// 20-byte form. Comparison anywhere else happens on the parsed value only.
func ParseAddress(address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, ErrInvalidAddress
	}
	return common.HexToAddress(address), nil
}
