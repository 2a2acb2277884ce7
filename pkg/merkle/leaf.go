package merkle

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// wordLength is the size of a solidity uint256 / bytes32 word
const wordLength = 32

// Validate reports whether the record can be encoded as a leaf.
func (r Record) Validate() error {
	_, err := r.amountWord()
	return err
}

// amountWord returns the amount as a 32-byte big-endian word.
func (r Record) amountWord() ([wordLength]byte, error) {
	if r.Amount == nil {
		return [wordLength]byte{}, ErrNilAmount
	}
	if r.Amount.Sign() < 0 {
		return [wordLength]byte{}, errors.Wrapf(ErrNegativeAmount, "got %s", r.Amount)
	}
	amount, overflow := uint256.FromBig(r.Amount)
	if overflow {
		return [wordLength]byte{}, errors.Wrapf(ErrAmountOverflow, "got %d bits", r.Amount.BitLen())
	}
	return amount.Bytes32(), nil
}

// HashLeaf hashes a record in plain mode.
// Format: keccak256(abi.encodePacked(account, amount))
// i.e. account (20 bytes) || amount (32 bytes, big-endian)
func HashLeaf(r Record) (common.Hash, error) {
	amount, err := r.amountWord()
	if err != nil {
		return common.Hash{}, err
	}

	data := make([]byte, 0, common.AddressLength+wordLength)
	data = append(data, r.Account.Bytes()...)
	data = append(data, amount[:]...)

	return crypto.Keccak256Hash(data), nil
}

// HashIndexedLeaf hashes a record in indexed mode.
// Format: keccak256(abi.encodePacked(index, account, amount))
// i.e. index (32 bytes) || account (20 bytes) || amount (32 bytes)
func HashIndexedLeaf(index uint64, r Record) (common.Hash, error) {
	amount, err := r.amountWord()
	if err != nil {
		return common.Hash{}, err
	}
	indexWord := uint256.NewInt(index).Bytes32()

	data := make([]byte, 0, wordLength+common.AddressLength+wordLength)
	data = append(data, indexWord[:]...)
	data = append(data, r.Account.Bytes()...)
	data = append(data, amount[:]...)

	return crypto.Keccak256Hash(data), nil
}

// HashPair computes keccak256(min(a, b) || max(a, b)) under byte-wise order.
func HashPair(a, b common.Hash) common.Hash {
	if a.Cmp(b) > 0 {
		a, b = b, a
	}

	data := make([]byte, 2*common.HashLength)
	copy(data[0:32], a[:])
	copy(data[32:64], b[:])

	return crypto.Keccak256Hash(data)
}
