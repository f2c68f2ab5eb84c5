package pipeline

import "github.com/byte4ever/slashsum/digest"

// WithAccumulatorFactoryForTest returns cfg using newAcc to build
// accumulators.
func WithAccumulatorFactoryForTest(
	cfg Config,
	newAcc func(digest.Algorithm) (digest.Accumulator, error),
) Config {
	cfg.newAccumulator = newAcc

	return cfg
}
