package core

import "errors"

var (
	ErrInvalidAddress   = errors.New("invalid ethereum address")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrMessageEmpty     = errors.New("message cannot be empty")
	ErrMessageTooLong   = errors.New("message too long")
)
