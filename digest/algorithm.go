package digest

import (
	"errors"
	"fmt"
	"strings"
)

// Algorithm names a digest algorithm.
type Algorithm string

const (
	// CRC32 is the IEEE (ISO-HDLC) 32-bit cyclic redundancy check.
	CRC32 Algorithm = "crc32"

	// MD5 is the 128-bit MD5 message digest.
	MD5 Algorithm = "md5"

	// SHA1 is the 160-bit SHA-1 digest.
	SHA1 Algorithm = "sha1"

	// SHA256 is the 256-bit SHA-2 digest.
	SHA256 Algorithm = "sha256"

	// SHA512 is the 512-bit SHA-2 digest.
	SHA512 Algorithm = "sha512"

	// BLAKE3 is the 256-bit BLAKE3 digest.
	BLAKE3 Algorithm = "blake3"

	// XXH3 is the 64-bit XXH3 non-cryptographic hash.
	XXH3 Algorithm = "xxh3"

	// SHA3_256 is the 256-bit SHA-3 digest.
	SHA3_256 Algorithm = "sha3-256"

	// BLAKE2b512 is the 512-bit BLAKE2b digest.
	BLAKE2b512 Algorithm = "blake2b-512"
)

// ErrUnknownAlgorithm is returned for algorithm names that are not
// supported.
var ErrUnknownAlgorithm = errors.New("unknown digest algorithm")

var labels = map[Algorithm]string{
	CRC32:      "CRC32",
	MD5:        "MD5",
	SHA1:       "SHA1",
	SHA256:     "SHA256",
	SHA512:     "SHA512",
	BLAKE3:     "BLAKE3",
	XXH3:       "XXH3",
	SHA3_256:   "SHA3-256",
	BLAKE2b512: "BLAKE2b-512",
}

// DefaultAlgorithms returns the algorithms computed when nothing else
// is configured, in display order.
func DefaultAlgorithms() []Algorithm {
	return []Algorithm{CRC32, MD5, SHA1, SHA256, SHA512}
}

// Supported returns every known algorithm, defaults first.
func Supported() []Algorithm {
	return append(
		DefaultAlgorithms(),
		BLAKE3, XXH3, SHA3_256, BLAKE2b512,
	)
}

// Label returns the display name of the algorithm.
func (a Algorithm) Label() string {
	if l, ok := labels[a]; ok {
		return l
	}

	return strings.ToUpper(string(a))
}

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	return string(a)
}

// Validate returns ErrUnknownAlgorithm if a is not supported.
func Validate(a Algorithm) error {
	if _, ok := labels[a]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(a))
	}

	return nil
}

// Parse resolves a case-insensitive algorithm name such as "SHA256"
// or "blake2b-512".
func Parse(name string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if err := Validate(alg); err != nil {
		return "", err
	}

	return alg, nil
}

// ParseList resolves names with Parse and rejects duplicates.
func ParseList(names []string) ([]Algorithm, error) {
	const errCtx = "parsing algorithms"

	seen := make(map[Algorithm]struct{}, len(names))
	out := make([]Algorithm, 0, len(names))

	for _, name := range names {
		alg, err := Parse(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		if _, dup := seen[alg]; dup {
			return nil, fmt.Errorf(
				"%s: duplicate algorithm %q", errCtx, alg,
			)
		}

		seen[alg] = struct{}{}
		out = append(out, alg)
	}

	return out, nil
}
