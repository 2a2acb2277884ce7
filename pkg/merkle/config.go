package merkle

import (
	"runtime"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// LeafEncoding selects how records are packed before hashing.
// Plain and indexed trees over the same records have different roots,
// so a verifier must know which encoding produced a root.
type LeafEncoding string

func (e LeafEncoding) String() string {
	return string(e)
}

const (
	// EncodingPlain hashes account || amount
	EncodingPlain LeafEncoding = "plain"
	// EncodingIndexed hashes index || account || amount, where index is the
	// record's position in the input slice
	EncodingIndexed LeafEncoding = "indexed"
)

var supportedEncodings = []string{EncodingPlain.String(), EncodingIndexed.String()}

// ParseLeafEncoding converts a string to a LeafEncoding.
func ParseLeafEncoding(s string) (LeafEncoding, error) {
	switch LeafEncoding(s) {
	case EncodingPlain:
		return EncodingPlain, nil
	case EncodingIndexed:
		return EncodingIndexed, nil
	default:
		return "", errors.Wrapf(ErrUnknownEncoding, "%q", s)
	}
}

// HashLeaf hashes r using this encoding. index is only used by EncodingIndexed.
func (e LeafEncoding) HashLeaf(index uint64, r Record) (common.Hash, error) {
	switch e {
	case EncodingPlain:
		return HashLeaf(r)
	case EncodingIndexed:
		return HashIndexedLeaf(index, r)
	default:
		return common.Hash{}, errors.Wrapf(ErrUnknownEncoding, "%q", string(e))
	}
}

// Config holds tree construction options
type Config struct {
	Encoding LeafEncoding
	Workers  int         // Leaf hashing parallelism, 0 or 1 hashes sequentially
	Logger   *zap.Logger // Optional logger, will create default if nil
}

// DefaultConfig returns a plain-encoding config that hashes on all CPUs
func DefaultConfig() *Config {
	return &Config{
		Encoding: EncodingPlain,
		Workers:  runtime.NumCPU(),
	}
}

// Validate validates the tree configuration
func (c *Config) Validate() error {
	var allErrors field.ErrorList
	if c.Encoding == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("encoding"), "encoding is required"))
	} else if _, err := ParseLeafEncoding(c.Encoding.String()); err != nil {
		allErrors = append(allErrors, field.NotSupported(field.NewPath("encoding"), c.Encoding.String(), supportedEncodings))
	}
	if c.Workers < 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("workers"), c.Workers, "workers must not be negative"))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}
