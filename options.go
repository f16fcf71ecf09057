package fsst

// trainConfig holds the tunables Train/TrainStrings accept via Option.
// defaultTrainConfig returns the unconfigured default training behavior;
// the zero value is not that default (its sample target and seed are 0).
type trainConfig struct {
	sampleTarget   int
	seed           uint64
	zeroTerminated bool
}

func defaultTrainConfig() trainConfig {
	return trainConfig{
		sampleTarget: defaultSampleTarget,
		seed:         defaultSeed,
	}
}

// Option configures Train/TrainStrings.
type Option func(*trainConfig)

// WithSampleSize overrides the target sample size (in bytes) gathered from
// the training corpus before the symbol-selection loop runs. The default is
// 16KiB, matching the production FSST sampler.
func WithSampleSize(n int) Option {
	return func(c *trainConfig) {
		if n > 0 {
			c.sampleTarget = n
		}
	}
}

// WithSeed overrides the deterministic seed used to shuffle the training
// sample. Two calls to Train with the same inputs and the same seed always
// produce bit-identical tables.
func WithSeed(seed uint64) Option {
	return func(c *trainConfig) { c.seed = seed }
}

// WithZeroTerminated signals that every input string is guaranteed to carry
// an implicit trailing zero byte not present in the slice's length, a
// buffer-safety convention from the original C implementation. Go slices
// always carry an explicit length, so this option changes no observable
// behavior here; it exists for parity with the language-neutral
// create(strings[], zeroTerminated) operation and is a documented no-op.
func WithZeroTerminated() Option {
	return func(c *trainConfig) { c.zeroTerminated = true }
}
