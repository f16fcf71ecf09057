package fsst

import (
	"container/heap"
	"unsafe"
)

// targetSchedule is the trainer's five-round growth schedule: the trainer
// runs exactly five passes over the sample, and round i keeps only the
// targetSchedule[i] best candidates by gain — growing the table gradually
// so early rounds (built from noisy single-symbol statistics) don't lock in
// a large set of mediocre merges before later rounds have pair statistics
// worth trusting.
var targetSchedule = [5]int{8, 38, 68, 128, 255}

// Train builds a finalized, immutable Table from the given corpus: it
// samples the inputs, runs the five-round counting/selection loop, and
// eagerly finalizes the lookup structures so the returned *Table is safe to
// share across goroutines without any further lazy initialization.
func Train(inputs [][]byte, opts ...Option) *Table {
	cfg := defaultTrainConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	sample := buildSample(inputs, cfg.sampleTarget, cfg.seed)

	var sampleBytes int
	for _, line := range sample {
		sampleBytes += len(line)
	}

	table := newTable()
	best := *newTable()
	bestSize := 2*sampleBytes + 1 // worst case: every byte escapes, 2 bytes each

	// Pairs occurring at or below this count are noise, not a real merge
	// candidate; held at a floor of 1 so the filter never silences every
	// pair candidate on a tiny sample.
	threshold := max(sampleBytes/16384, 1)

	var c counters
	for _, target := range targetSchedule {
		c = counters{}
		simulateEncode(table, &c, sample)

		if size := estimateCompressedSize(table, &c); size < bestSize {
			bestSize = size
			best = *table
		}

		candidates := buildCandidates(table, &c, threshold)
		selectTopByGain(table, candidates, target)
	}

	best.finalize()
	best.primeDecodeTables()
	return &best
}

// TrainStrings is Train for []string corpora, avoiding a copy by reborrowing
// each string's backing bytes.
func TrainStrings(inputs []string, opts ...Option) *Table {
	converted := make([][]byte, len(inputs))
	for i := range inputs {
		converted[i] = unsafe.Slice(unsafe.StringData(inputs[i]), len(inputs[i]))
	}
	return Train(converted, opts...)
}

// symbolForCode resolves a training-time code (0..nSymbols-1 a real
// learned symbol, 256..511 the escape pseudo-symbol for a literal byte) to
// its symbol value. Code 255, the wire escape marker, is never produced by
// findLongestSymbol during training, so it never reaches this function.
func symbolForCode(t *Table, code uint16) symbol {
	if code >= pseudoBase {
		return newEscapeSymbol(byte(code - pseudoBase))
	}
	return t.symbols[code]
}

// simulateEncode runs a greedy left-to-right scan of every sample line under
// the current table, filling count and pairCount with the codes and
// adjacent code-pairs that scan produces. Lines shorter than 2 bytes are
// skipped — there is no adjacent pair to count in a one-byte line.
func simulateEncode(t *Table, c *counters, sample [][]byte) {
	for _, line := range sample {
		if len(line) < 2 {
			continue
		}

		pos := 0
		prev := nextCode(t, line, pos)
		pos += int(symbolForCode(t, prev).length)
		c.incCount(prev)

		for pos < len(line) {
			cur := nextCode(t, line, pos)
			pos += int(symbolForCode(t, cur).length)
			c.incCount(cur)
			c.incPair(prev, cur)
			prev = cur
		}
	}
}

// nextCode loads the 8-byte window at pos (using the tail-safe loader when
// fewer than 8 bytes remain) and resolves it through the table's lookup
// structure; Table.Encode calls it too, so training sees exactly the codes
// the production encoder emits. In the tail only symbols that fit in the
// remaining bytes are considered: loadTail zero-pads the window, which
// would otherwise let a symbol ending in NUL bytes match past the end.
func nextCode(t *Table, line []byte, pos int) uint16 {
	remaining := len(line) - pos
	if remaining >= 8 {
		return t.findLongestSymbol(loadWord(line[pos:]))
	}
	word := loadTail(line[pos:])
	for _, e := range t.index2[uint16(word)] {
		if int(e.length) <= remaining && word&e.mask == e.payload {
			return e.code
		}
	}
	return t.index1[byte(word)]
}

// estimateCompressedSize sums, over every code this round's counters saw,
// count[c] * bytesEmitted(c): 2 bytes for a pseudo-escape (code >= 256, not
// a real symbol) and 1 byte for a real code. This is the encoded size this
// round's table would have produced, computed from the counts already
// gathered rather than by re-walking the sample, so it can be compared
// against the running best every round.
func estimateCompressedSize(t *Table, c *counters) int {
	size := 0
	for code := 0; code < codeSpace; code++ {
		count := c.count[code]
		if count == 0 {
			continue
		}
		if code >= pseudoBase {
			size += int(count) * 2
		} else {
			size += int(count)
		}
	}
	return size
}

// candidate pairs a symbol with its accumulated training-round gain: an
// estimate of how many bytes adopting this symbol would save.
type candidate struct {
	symbol symbol
	gain   uint32
}

// buildCandidates turns this round's counters into a deduplicated candidate
// set: every code seen this round contributes its own symbol as a
// candidate, and every pair whose count clears threshold contributes the
// concatenation of its two symbols. A map deduplicates candidates by (word,
// length), summing gains across every code/pair that contributed to the
// same underlying symbol.
func buildCandidates(t *Table, c *counters, threshold int) map[[2]uint64]candidate {
	seen := make(map[[2]uint64]candidate)

	for code := 0; code < codeSpace; code++ {
		count := c.count[code]
		if count == 0 {
			continue
		}
		sym := symbolForCode(t, uint16(code))
		addCandidate(seen, sym, count*uint32(sym.length))

		if sym.length == 8 {
			continue
		}
		for code2 := 0; code2 < codeSpace; code2++ {
			pairCount := c.pairCount[code][code2]
			if int(pairCount) <= threshold {
				continue
			}
			merged := concat(sym, symbolForCode(t, uint16(code2)))
			addCandidate(seen, merged, uint32(pairCount)*uint32(merged.length))
		}
	}
	return seen
}

func addCandidate(seen map[[2]uint64]candidate, sym symbol, gain uint32) {
	key := [2]uint64{sym.word & sym.mask(), uint64(sym.length)}
	if existing, ok := seen[key]; ok {
		gain += existing.gain
	}
	seen[key] = candidate{symbol: sym, gain: gain}
}

// candidateHeap is a min-heap over candidate.gain (ties broken toward the
// smaller word value, then the shorter length, for a deterministic
// selection order) so the top `target` candidates can be picked in
// O(n log target) instead of sorting the whole candidate set.
type candidateHeap []candidate

func (h candidateHeap) Len() int { return len(h) }
func (h candidateHeap) Less(i, j int) bool {
	if h[i].gain != h[j].gain {
		return h[i].gain < h[j].gain
	}
	if h[i].symbol.word != h[j].symbol.word {
		return h[i].symbol.word > h[j].symbol.word
	}
	return h[i].symbol.length > h[j].symbol.length
}
func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)   { *h = append(*h, x.(candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// selectTopByGain picks the winning symbols for the next round: it keeps
// the `target` highest-gain candidates in a min-heap bounded at `target`
// entries (a candidate replaces the heap's weakest entry only if it ranks
// above it), and those survivors form the round's new symbol table. target
// is the round's cap from
// targetSchedule — 8,
// then 38, then 68, then 128, then 255 — not merely the table's overall
// 255-symbol ceiling, so early rounds genuinely keep a small table instead
// of filling up to capacity on round one.
func selectTopByGain(t *Table, candidates map[[2]uint64]candidate, target int) {
	if target > maxSymbols {
		target = maxSymbols
	}

	h := make(candidateHeap, 0, target+1)
	heap.Init(&h)
	for _, cand := range candidates {
		switch {
		case len(h) < target:
			heap.Push(&h, cand)
		case candidateHeap{h[0], cand}.Less(0, 1):
			heap.Pop(&h)
			heap.Push(&h, cand)
		}
	}

	top := make([]candidate, len(h))
	for i := len(h) - 1; i >= 0; i-- {
		top[i] = heap.Pop(&h).(candidate)
	}

	t.clearSymbols()
	for i := 0; i < len(top) && int(t.nSymbols) < target; i++ {
		t.addSymbol(top[i].symbol)
	}
}
