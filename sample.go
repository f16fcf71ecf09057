package fsst

// Sampler: chooses a bounded, deterministic sample of the training corpus
// so the trainer's 5-pass loop runs against a fixed-size working set
// regardless of how large the caller's corpus is.
const (
	defaultSampleTarget = 1 << 14 // 16KiB
	sampleLineLen       = 512     // size of each sampled slice
	defaultSeed         = uint64(123)
)

// buildSample assembles a pseudo-random sample composed of sampleLineLen
// slices drawn from inputs, up to target bytes (capped at 2*target). If the
// whole corpus is already small enough, it is used verbatim and no
// shuffling occurs — sampling below the target adds noise without adding
// signal.
//
// Sampling is deterministic for a fixed (inputs, seed) pair: the shuffle is
// driven by repeatedly mixing seed with the hash used throughout the
// trainer, never by time or any other ambient source.
func buildSample(inputs [][]byte, target int, seed uint64) [][]byte {
	var total int
	for _, in := range inputs {
		total += len(in)
	}
	if total < target {
		return inputs
	}

	maxSz := 2 * target
	buf := make([]byte, maxSz)
	sample := make([][]byte, 0, len(inputs))
	pos := 0

	rng := mix(seed)
	for pos < maxSz {
		rng = mix(rng)
		idx := int(rng % uint64(len(inputs)))
		for len(inputs[idx]) == 0 {
			idx = (idx + 1) % len(inputs)
		}

		numChunks := (len(inputs[idx]) + sampleLineLen - 1) / sampleLineLen
		rng = mix(rng)
		off := sampleLineLen * int(rng%uint64(numChunks))

		n := min(len(inputs[idx])-off, sampleLineLen)
		if pos+n > maxSz {
			break
		}
		copy(buf[pos:pos+n], inputs[idx][off:off+n])
		sample = append(sample, buf[pos:pos+n:pos+n])
		pos += n

		if pos >= target {
			break
		}
	}
	return sample
}
