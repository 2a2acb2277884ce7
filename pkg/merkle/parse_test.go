package merkle

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	large, _ := new(big.Int).SetString("1840233889215604334017", 10)
	maxAmount := "115792089237316195423570985008687907853269984665640564039457584007913129639935"
	overflowAmount := "115792089237316195423570985008687907853269984665640564039457584007913129639936"

	testCases := []struct {
		name    string
		account string
		amount  string
		want    *big.Int
		err     error
	}{
		{"Decimal amount", "0x00393d62f17b07e64f7cdcdf9bdc2fd925b20bba", "1840233889215604334017", large, nil},
		{"Hex amount", "0x00393d62f17b07e64f7cdcdf9bdc2fd925b20bba", "0x10", big.NewInt(16), nil},
		{"Padded amount", "0x00393d62f17b07e64f7cdcdf9bdc2fd925b20bba", " 42 ", big.NewInt(42), nil},
		{"Checksummed address", "0x008EF27b8d0B9f8c1FAdcb624ef5FebE4f11fa9f", "1", big.NewInt(1), nil},
		{"Address without prefix", "008EF27b8d0B9f8c1FAdcb624ef5FebE4f11fa9f", "1", big.NewInt(1), nil},
		{"Zero amount", "0x1111111111111111111111111111111111111111", "0", big.NewInt(0), nil},
		{"Short address", "0x1234", "1", nil, ErrInvalidAddress},
		{"Non-hex address", "0xzz393d62f17b07e64f7cdcdf9bdc2fd925b20bba", "1", nil, ErrInvalidAddress},
		{"Empty amount", "0x1111111111111111111111111111111111111111", "", nil, ErrInvalidAmount},
		{"Garbage amount", "0x1111111111111111111111111111111111111111", "12ab", nil, ErrInvalidAmount},
		{"Bad hex amount", "0x1111111111111111111111111111111111111111", "0xgg", nil, ErrInvalidAmount},
		{"Negative amount", "0x1111111111111111111111111111111111111111", "-1", nil, ErrNegativeAmount},
		{"Negative hex amount", "0x1111111111111111111111111111111111111111", "0x-1", nil, ErrNegativeAmount},
		{"Overflowing amount", "0x1111111111111111111111111111111111111111", overflowAmount, nil, ErrAmountOverflow},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := ParseRecord(tc.account, tc.amount)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, common.HexToAddress(tc.account), r.Account)
			require.Zero(t, tc.want.Cmp(r.Amount), "got %s want %s", r.Amount, tc.want)
			require.NoError(t, r.Validate())
		})
	}

	t.Run("Max uint256", func(t *testing.T) {
		r, err := ParseRecord("0x1111111111111111111111111111111111111111", maxAmount)
		require.NoError(t, err)
		require.Equal(t, 256, r.Amount.BitLen())
	})
}
