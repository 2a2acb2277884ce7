package merkle

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

// Record is one entry of a distribution: an account and the amount it may claim.
// Amount must fit in an unsigned 256-bit integer.
type Record struct {
	Account common.Address
	Amount  *big.Int
}

// Tree is a binary merkle tree over distribution records.
// Leaves are sorted and deduplicated, and pairs are hashed in sorted order,
// which makes proofs compatible with OpenZeppelin's MerkleProof.verify.
//
// A Tree is immutable once built and safe for concurrent use.
type Tree struct {
	// leaves contains the deduplicated leaf hashes in ascending byte order
	leaves []common.Hash

	// layers stores all tree levels for proof generation
	// layers[0] = leaves, layers[len-1] = root; nil for an empty tree
	layers [][]common.Hash

	encoding LeafEncoding
	logger   *zap.Logger
}

// MerkleProof represents a proof that a leaf is included in the tree.
type MerkleProof struct {
	// Leaf is the hash of the leaf being proven
	Leaf common.Hash

	// Proof contains the sibling hashes from leaf to root
	// proof[0] is the sibling of the leaf, proof[len-1] is near the root.
	// Levels where the node had no sibling contribute nothing.
	Proof []common.Hash
}

// Verify checks the proof against root.
func (p *MerkleProof) Verify(root common.Hash) bool {
	if p == nil {
		return false
	}
	return VerifyProof(p.Leaf, p.Proof, root)
}

// HexProof renders the sibling hashes as 0x-prefixed hex strings, the form
// expected by a bytes32[] contract argument.
func (p *MerkleProof) HexProof() []string {
	out := make([]string, len(p.Proof))
	for i, h := range p.Proof {
		out[i] = hexutil.Encode(h[:])
	}
	return out
}
