package merkle

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// ParseRecord builds a record from a hex address and an amount.
// The amount may be decimal or 0x-prefixed hex.
func ParseRecord(account, amount string) (Record, error) {
	if !common.IsHexAddress(account) {
		return Record{}, errors.Wrapf(ErrInvalidAddress, "%q", account)
	}

	value, err := parseAmount(strings.TrimSpace(amount))
	if err != nil {
		return Record{}, err
	}

	return Record{
		Account: common.HexToAddress(account),
		Amount:  value,
	}, nil
}

func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.Wrap(ErrInvalidAmount, "empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return nil, errors.Wrapf(ErrNegativeAmount, "got %s", s)
	}

	digits, base := s, 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits, base = s[2:], 16
	}
	value, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q is not a base %d integer", s, base)
	}
	if value.Sign() < 0 {
		return nil, errors.Wrapf(ErrNegativeAmount, "got %s", s)
	}
	if _, overflow := uint256.FromBig(value); overflow {
		return nil, errors.Wrapf(ErrAmountOverflow, "got %d bits", value.BitLen())
	}
	return value, nil
}
