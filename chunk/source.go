package chunk

import (
	"errors"
	"fmt"
	"io"

	boxochunker "github.com/ipfs/boxo/chunker"
)

const (
	// DefaultSize is the chunk size used when none is configured.
	DefaultSize = 1 << 20 // 1MiB

	// MaxSize is the largest accepted chunk size.
	MaxSize = 64 << 20 // 64MiB
)

var (
	// ErrInvalidSize is returned when a chunk size is out of range.
	ErrInvalidSize = errors.New("invalid chunk size")

	// ErrTruncated is returned when the underlying reader reports
	// io.ErrUnexpectedEOF, i.e. the input ended before it should have.
	ErrTruncated = errors.New("input truncated")
)

// Chunk is a read-only slice of the input. Once handed out by a
// Source its contents never change.
type Chunk []byte

// Source splits a reader into chunks of at most size bytes. It is
// not safe for concurrent use; a single goroutine drives it.
type Source struct {
	splitter boxochunker.Splitter
	read     int64
	err      error
}

// NewSource returns a Source reading r in chunks of size bytes.
func NewSource(r io.Reader, size int) (*Source, error) {
	const errCtx = "creating chunk source"

	if err := ValidateSize(size); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &Source{
		splitter: boxochunker.NewSizeSplitter(
			&truncationGuard{r: r}, int64(size),
		),
	}, nil
}

// truncationGuard rewrites io.ErrUnexpectedEOF from the wrapped
// reader into ErrTruncated. The size splitter reads through
// io.ReadFull and takes a bare io.ErrUnexpectedEOF for the end of
// input. The error is sticky.
type truncationGuard struct {
	r   io.Reader
	err error
}

func (g *truncationGuard) Read(p []byte) (int, error) {
	if g.err != nil {
		return 0, g.err
	}

	n, err := g.r.Read(p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		g.err = fmt.Errorf("%w: %w", ErrTruncated, err)

		return n, g.err
	}

	return n, err
}

// ValidateSize reports whether size is a usable chunk size.
func ValidateSize(size int) error {
	if size < 1 || size > MaxSize {
		return fmt.Errorf(
			"%w: %d not in [1, %d]",
			ErrInvalidSize, size, MaxSize,
		)
	}

	return nil
}

// Next returns the next chunk. It returns io.EOF once the input is
// exhausted. A read failure is returned wrapped and no partial chunk
// is produced; every later call returns the same error.
func (s *Source) Next() (Chunk, error) {
	const errCtx = "reading chunk"

	if s.err != nil {
		return nil, s.err
	}

	buf, err := s.splitter.NextBytes()
	if errors.Is(err, io.EOF) {
		s.err = io.EOF

		return nil, io.EOF
	}

	if err != nil {
		s.err = fmt.Errorf(
			"%s at offset %d: %w", errCtx, s.read, err,
		)

		return nil, s.err
	}

	// The splitter only reports io.EOF on a zero-length read; guard
	// against readers returning empty data without an error.
	if len(buf) == 0 {
		s.err = io.EOF

		return nil, io.EOF
	}

	s.read += int64(len(buf))

	return Chunk(buf), nil
}

// BytesRead returns the number of bytes handed out so far.
func (s *Source) BytesRead() int64 {
	return s.read
}
