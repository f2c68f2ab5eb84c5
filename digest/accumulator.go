package digest

import (
	"crypto/md5"  //nolint:gosec // MD5 is reported, not trusted
	"crypto/sha1" //nolint:gosec // SHA1 is reported, not trusted
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"hash/crc32"

	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/byte4ever/slashsum/chunk"
)

// ErrFinalized is returned by Finalize when called more than once.
var ErrFinalized = errors.New("accumulator already finalized")

// Accumulator consumes chunks in read order and yields one digest.
//
// Ingest may be called any number of times, followed by exactly one
// Finalize. Ordering is the caller's responsibility: an accumulator
// cannot detect reordered chunks.
type Accumulator interface {
	Algorithm() Algorithm
	Ingest(ch chunk.Chunk)
	Finalize() (string, error)
}

// Result pairs an algorithm with its finalized digest.
type Result struct {
	Algorithm Algorithm `json:"algorithm"`
	Value     string    `json:"value"`
}

// New returns a fresh accumulator for alg.
func New(alg Algorithm) (Accumulator, error) {
	const errCtx = "creating accumulator"

	switch alg {
	case CRC32:
		return newCRC32(), nil
	case MD5:
		return newHashAccumulator(alg, md5.New()), nil
	case SHA1:
		return newHashAccumulator(alg, sha1.New()), nil
	case SHA256:
		return newHashAccumulator(alg, sha256.New()), nil
	case SHA512:
		return newHashAccumulator(alg, sha512.New()), nil
	case BLAKE3:
		return newHashAccumulator(alg, blake3.New()), nil
	case XXH3:
		return newHashAccumulator(alg, xxh3.New()), nil
	case SHA3_256:
		return newHashAccumulator(alg, sha3.New256()), nil
	case BLAKE2b512:
		// Only fails for keys longer than 64 bytes.
		h, err := blake2b.New512(nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return newHashAccumulator(alg, h), nil
	default:
		return nil, fmt.Errorf(
			"%s: %w: %q", errCtx, ErrUnknownAlgorithm, string(alg),
		)
	}
}

// crc32Accumulator keeps a running IEEE CRC.
type crc32Accumulator struct {
	table *crc32.Table
	crc   uint32
	done  bool
}

func newCRC32() *crc32Accumulator {
	return &crc32Accumulator{table: crc32.IEEETable}
}

func (c *crc32Accumulator) Algorithm() Algorithm {
	return CRC32
}

func (c *crc32Accumulator) Ingest(ch chunk.Chunk) {
	if c.done {
		panic("digest: crc32 ingest after finalize")
	}

	c.crc = crc32.Update(c.crc, c.table, ch)
}

func (c *crc32Accumulator) Finalize() (string, error) {
	if c.done {
		return "", ErrFinalized
	}

	c.done = true

	return fmt.Sprintf("%08x", c.crc), nil
}

// hashAccumulator adapts any streaming hash.Hash.
type hashAccumulator struct {
	alg  Algorithm
	h    hash.Hash
	done bool
}

func newHashAccumulator(alg Algorithm, h hash.Hash) *hashAccumulator {
	return &hashAccumulator{alg: alg, h: h}
}

func (ha *hashAccumulator) Algorithm() Algorithm {
	return ha.alg
}

func (ha *hashAccumulator) Ingest(ch chunk.Chunk) {
	if ha.done {
		panic("digest: " + string(ha.alg) + " ingest after finalize")
	}

	// hash.Hash.Write never returns an error.
	_, _ = ha.h.Write(ch)
}

func (ha *hashAccumulator) Finalize() (string, error) {
	if ha.done {
		return "", ErrFinalized
	}

	ha.done = true
	sum := ha.h.Sum(nil)
	ha.h = nil

	return hex.EncodeToString(sum), nil
}
