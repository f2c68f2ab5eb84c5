package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/byte4ever/slashsum/chunk"
	"github.com/byte4ever/slashsum/digest"
)

var (
	// ErrRead wraps any failure reading the input mid-stream.
	ErrRead = errors.New("read failed")

	// ErrIsDirectory is returned when the input path is a directory.
	ErrIsDirectory = errors.New("input is a directory")
)

// Config tunes a pipeline run. Zero values select the defaults.
type Config struct {
	// ChunkSize is the read size in bytes (default chunk.DefaultSize).
	ChunkSize int

	// QueueCapacity is the per-algorithm queue length in chunks
	// (default DefaultQueueCapacity).
	QueueCapacity int

	// Algorithms lists the digests to compute, in report order
	// (default digest.DefaultAlgorithms()).
	Algorithms []digest.Algorithm

	// Logger receives progress records (default slog.Default()).
	Logger *slog.Logger

	// Open opens the input path (default os.Open).
	Open func(name string) (fs.File, error)

	newAccumulator func(digest.Algorithm) (digest.Accumulator, error)
}

// Outcome is the result of a successful run.
type Outcome struct {
	Path      string          `json:"path"`
	Size      int64           `json:"size"`
	BytesRead int64           `json:"bytes_read"`
	Digests   []digest.Result `json:"digests"`
	Elapsed   time.Duration   `json:"elapsed_ns"`
}

// Digest returns the value computed for alg.
func (o *Outcome) Digest(alg digest.Algorithm) (string, bool) {
	for _, res := range o.Digests {
		if res.Algorithm == alg {
			return res.Value, true
		}
	}

	return "", false
}

func (c Config) withDefaults() Config {
	if c.ChunkSize == 0 {
		c.ChunkSize = chunk.DefaultSize
	}

	if c.QueueCapacity == 0 {
		c.QueueCapacity = DefaultQueueCapacity
	}

	if len(c.Algorithms) == 0 {
		c.Algorithms = digest.DefaultAlgorithms()
	}

	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	if c.Open == nil {
		c.Open = func(name string) (fs.File, error) {
			return os.Open(name) //nolint:gosec // path from CLI argument
		}
	}

	if c.newAccumulator == nil {
		c.newAccumulator = digest.New
	}

	return c
}

// Run digests the file at path. It opens the file, reads its size,
// then streams it through every configured accumulator.
func Run(
	ctx context.Context,
	path string,
	cfg Config,
) (out *Outcome, retErr error) {
	const errCtx = "digesting file"

	cfg = cfg.withDefaults()

	fi, err := cfg.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			out = nil
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	info, err := fi.Stat()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w: %s", errCtx, ErrIsDirectory, path)
	}

	out, err = run(ctx, fi, info.Size(), cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	out.Path = path

	return out, nil
}

// RunReader digests everything r yields. size is reported as-is in
// the Outcome; pass -1 when unknown.
func RunReader(
	ctx context.Context,
	r io.Reader,
	size int64,
	cfg Config,
) (*Outcome, error) {
	const errCtx = "digesting stream"

	out, err := run(ctx, r, size, cfg.withDefaults())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

func run(
	ctx context.Context,
	r io.Reader,
	size int64,
	cfg Config,
) (*Outcome, error) {
	src, err := chunk.NewSource(r, cfg.ChunkSize)
	if err != nil {
		return nil, err
	}

	accs := make([]digest.Accumulator, 0, len(cfg.Algorithms))

	for _, alg := range cfg.Algorithms {
		acc, err := cfg.newAccumulator(alg)
		if err != nil {
			return nil, err
		}

		accs = append(accs, acc)
	}

	log := cfg.Logger.With("size", size)
	log.Debug(
		"pipeline starting",
		"algorithms", len(accs),
		"chunk_size", humanize.IBytes(uint64(cfg.ChunkSize)),
		"queue_capacity", cfg.QueueCapacity,
	)

	start := time.Now()

	disp, err := NewDispatcher(ctx, accs, cfg.QueueCapacity)
	if err != nil {
		return nil, err
	}

	pumpErr := pump(ctx, src, disp)
	if pumpErr != nil {
		disp.Abort(pumpErr)
	} else {
		disp.Close()
	}

	results, waitErr := disp.Wait()
	elapsed := time.Since(start)

	if pumpErr != nil {
		log.Debug("pipeline aborted", "error", pumpErr)

		return nil, pumpErr
	}

	if waitErr != nil {
		log.Debug("pipeline failed", "error", waitErr)

		return nil, waitErr
	}

	read := src.BytesRead()
	if size >= 0 && read != size {
		log.Warn(
			"input size changed while reading",
			"bytes_read", read,
		)
	}

	log.Debug(
		"pipeline finished",
		"bytes_read", humanize.IBytes(uint64(read)),
		"elapsed", elapsed,
		"throughput", throughput(read, elapsed),
	)

	return &Outcome{
		Size:      size,
		BytesRead: read,
		Digests:   results,
		Elapsed:   elapsed,
	}, nil
}

// pump drives src into disp until EOF. It returns the read error,
// the cancellation cause, or the error that stopped dispatching.
func pump(
	ctx context.Context,
	src *chunk.Source,
	disp *Dispatcher,
) error {
	for {
		if err := ctx.Err(); err != nil {
			return context.Cause(ctx)
		}

		ch, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("%w: %w", ErrRead, err)
		}

		if err := disp.Dispatch(ch); err != nil {
			return err
		}
	}
}

func throughput(n int64, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}

	return humanize.IBytes(uint64(float64(n)/d.Seconds())) + "/s"
}
