package merkle

import (
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Layr-Labs/merkle-distributor-go/pkg/logger"
)

// parallelHashThreshold is the minimum number of records before leaf
// hashing is spread over workers
const parallelHashThreshold = 256

// BuildTree creates a plain-encoding merkle tree using the default config.
func BuildTree(records []Record) (*Tree, error) {
	return NewTree(records, nil)
}

// NewTree creates a binary merkle tree from distribution records.
//
// Every record is validated before any hashing happens. Leaf hashes are then
// sorted and deduplicated, so the root does not depend on input order or on
// repeated records. In indexed mode each record's index is its position in
// records, assigned before sorting.
//
// The tree uses keccak256 hashing for Solidity compatibility.
// If there's an odd number of nodes at any level, the last node is promoted
// to the next level unchanged.
//
// An empty input produces an empty tree with no root.
func NewTree(records []Record, cfg *Config) (*Tree, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid merkle tree config: %w", err)
	}

	treeLogger := cfg.Logger
	if treeLogger == nil {
		var err error
		treeLogger, err = logger.NewLogger(&logger.LoggerConfig{Debug: false})
		if err != nil {
			treeLogger = zap.NewNop()
		}
	}

	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
	}

	hashes, err := hashRecords(records, cfg.Encoding, cfg.Workers)
	if err != nil {
		return nil, err
	}

	leaves := sortAndDedup(hashes)
	layers := buildLayers(leaves)

	treeLogger.Debug("Built merkle tree",
		zap.String("encoding", cfg.Encoding.String()),
		zap.Int("records", len(records)),
		zap.Int("leaves", len(leaves)),
		zap.Int("duplicates", len(records)-len(leaves)),
		zap.Int("layers", len(layers)),
	)

	return &Tree{
		leaves:   leaves,
		layers:   layers,
		encoding: cfg.Encoding,
		logger:   treeLogger,
	}, nil
}

// hashRecords hashes every record into the slot matching its input position.
func hashRecords(records []Record, encoding LeafEncoding, workers int) ([]common.Hash, error) {
	hashes := make([]common.Hash, len(records))

	hashRange := func(start, end int) error {
		for i := start; i < end; i++ {
			h, err := encoding.HashLeaf(uint64(i), records[i])
			if err != nil {
				return errors.Wrapf(err, "record %d", i)
			}
			hashes[i] = h
		}
		return nil
	}

	if workers <= 1 || len(records) < parallelHashThreshold {
		if err := hashRange(0, len(records)); err != nil {
			return nil, err
		}
		return hashes, nil
	}

	chunk := (len(records) + workers - 1) / workers
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for start := 0; start < len(records); start += chunk {
		end := min(start+chunk, len(records))
		g.Go(func() error {
			return hashRange(start, end)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hashes, nil
}

// sortAndDedup sorts hashes ascending by bytes and drops repeats in place.
func sortAndDedup(hashes []common.Hash) []common.Hash {
	slices.SortFunc(hashes, func(a, b common.Hash) int {
		return a.Cmp(b)
	})
	return slices.Compact(hashes)
}

// buildLayers builds tree levels bottom-up until a single root remains.
func buildLayers(leaves []common.Hash) [][]common.Hash {
	if len(leaves) == 0 {
		return nil
	}

	layers := [][]common.Hash{leaves}
	current := leaves
	for len(current) > 1 {
		current = nextLayer(current)
		layers = append(layers, current)
	}
	return layers
}

// nextLayer hashes consecutive pairs. An unpaired last node is carried up as is.
func nextLayer(layer []common.Hash) []common.Hash {
	next := make([]common.Hash, 0, (len(layer)+1)/2)
	for i := 0; i < len(layer); i += 2 {
		if i+1 < len(layer) {
			next = append(next, HashPair(layer[i], layer[i+1]))
		} else {
			next = append(next, layer[i])
		}
	}
	return next
}

// Root returns the merkle root. ok is false when the tree was built from no records.
func (t *Tree) Root() (root common.Hash, ok bool) {
	if len(t.layers) == 0 {
		return common.Hash{}, false
	}
	return t.layers[len(t.layers)-1][0], true
}

// GetProof returns the sibling path for leaf, or ok=false if the leaf is not
// in the tree. A single-leaf tree yields an empty, non-nil proof.
func (t *Tree) GetProof(leaf common.Hash) (proof []common.Hash, ok bool) {
	index, found := slices.BinarySearchFunc(t.leaves, leaf, func(a, b common.Hash) int {
		return a.Cmp(b)
	})
	if !found {
		t.logger.Debug("Leaf not found in merkle tree", zap.String("leaf", leaf.Hex()))
		return nil, false
	}
	return t.proofAt(index), true
}

// proofAt walks from the leaf at index to the layer below the root.
func (t *Tree) proofAt(index int) []common.Hash {
	proof := make([]common.Hash, 0, len(t.layers)-1)
	for _, layer := range t.layers[:len(t.layers)-1] {
		// Node is on the left if index is even, on the right if odd
		sibling := index ^ 1
		if sibling < len(layer) {
			proof = append(proof, layer[sibling])
		}
		index /= 2
	}
	return proof
}

// GenerateProof creates a merkle proof for the leaf at the given position in
// the canonical (sorted) leaf order.
func (t *Tree) GenerateProof(leafIndex int) (*MerkleProof, error) {
	if leafIndex < 0 || leafIndex >= len(t.leaves) {
		return nil, fmt.Errorf("leaf index %d out of bounds (tree has %d leaves)", leafIndex, len(t.leaves))
	}

	return &MerkleProof{
		Leaf:  t.leaves[leafIndex],
		Proof: t.proofAt(leafIndex),
	}, nil
}

// ProofForRecord hashes r with the tree's encoding and returns its proof.
// position is the record's index in the input slice and only matters for
// indexed trees. Returns ErrLeafNotFound if the record is not in the tree.
func (t *Tree) ProofForRecord(position uint64, r Record) (*MerkleProof, error) {
	leaf, err := t.encoding.HashLeaf(position, r)
	if err != nil {
		return nil, err
	}

	proof, ok := t.GetProof(leaf)
	if !ok {
		return nil, errors.Wrapf(ErrLeafNotFound, "account %s", r.Account.Hex())
	}
	return &MerkleProof{Leaf: leaf, Proof: proof}, nil
}

// VerifyProof verifies leaf against this tree's root. Always false for an empty tree.
func (t *Tree) VerifyProof(leaf common.Hash, proof []common.Hash) bool {
	root, ok := t.Root()
	if !ok {
		return false
	}
	return VerifyProof(leaf, proof, root)
}

// VerifyProof verifies that a leaf is included in the merkle tree with the given root.
// It recomputes the root hash using the proof and checks if it matches the expected root.
// No tree is needed; this is the same check MerkleProof.verify performs on-chain.
func VerifyProof(leaf common.Hash, proof []common.Hash, root common.Hash) bool {
	computed := leaf
	for _, sibling := range proof {
		computed = HashPair(computed, sibling)
	}
	return computed == root
}

// LeafCount returns the number of distinct leaves.
func (t *Tree) LeafCount() int {
	return len(t.leaves)
}

// LayerCount returns the number of layers including leaves and root.
func (t *Tree) LayerCount() int {
	return len(t.layers)
}

// Leaves returns a copy of the leaf hashes in canonical order.
func (t *Tree) Leaves() []common.Hash {
	return slices.Clone(t.leaves)
}

// Encoding returns the leaf encoding the tree was built with.
func (t *Tree) Encoding() LeafEncoding {
	return t.encoding
}
