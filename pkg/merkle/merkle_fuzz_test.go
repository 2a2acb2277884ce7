package merkle

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// randomRecords builds n records from seed, with some deliberate repeats
func randomRecords(seed int64, n int) []Record {
	rng := rand.New(rand.NewSource(seed))
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 && rng.Intn(5) == 0 {
			records = append(records, records[rng.Intn(len(records))])
			continue
		}
		var account common.Address
		_, _ = rng.Read(account[:])
		amount := new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), 256))
		records = append(records, Record{Account: account, Amount: amount})
	}
	return records
}

func FuzzTreeProofs(f *testing.F) {
	f.Add(int64(1), uint8(1))
	f.Add(int64(2), uint8(2))
	f.Add(int64(3), uint8(7))
	f.Add(int64(4), uint8(64))
	f.Add(int64(5), uint8(255))

	f.Fuzz(func(t *testing.T, seed int64, n uint8) {
		records := randomRecords(seed, int(n))

		for _, encoding := range []LeafEncoding{EncodingPlain, EncodingIndexed} {
			tree, err := NewTree(records, &Config{Encoding: encoding, Workers: 1, Logger: zap.NewNop()})
			require.NoError(t, err)

			root, ok := tree.Root()
			if n == 0 {
				require.False(t, ok)
				continue
			}
			require.True(t, ok)

			for i, r := range records {
				leaf, err := encoding.HashLeaf(uint64(i), r)
				require.NoError(t, err)

				proof, ok := tree.GetProof(leaf)
				require.True(t, ok)
				require.True(t, VerifyProof(leaf, proof, root))
			}
		}
	})
}

func FuzzHashLeafMatchesReference(f *testing.F) {
	f.Add([]byte{0x00, 0x39, 0x3d}, []byte{0x63, 0xc2})
	f.Add([]byte{}, []byte{})
	f.Add(make([]byte, 20), make([]byte, 32))

	f.Fuzz(func(t *testing.T, accountBytes []byte, amountBytes []byte) {
		// Keep inputs inside their fixed widths.
		if len(accountBytes) > common.AddressLength {
			accountBytes = accountBytes[:common.AddressLength]
		}
		if len(amountBytes) > 32 {
			amountBytes = amountBytes[:32]
		}

		r := Record{
			Account: common.BytesToAddress(accountBytes),
			Amount:  new(big.Int).SetBytes(amountBytes),
		}

		hash, err := HashLeaf(r)
		require.NoError(t, err)
		require.Equal(t, keccak(r.Account.Bytes(), word(r.Amount)), hash)
	})
}
