package merkle

import "github.com/pkg/errors"

var (
	ErrNilAmount       = errors.New("amount is nil")
	ErrNegativeAmount  = errors.New("amount is negative")
	ErrAmountOverflow  = errors.New("amount does not fit in 256 bits")
	ErrInvalidAddress  = errors.New("invalid account address")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownEncoding = errors.New("unknown leaf encoding")
	ErrLeafNotFound    = errors.New("leaf not found in merkle tree")
)
