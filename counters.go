package fsst

// counters is the training-time frequency table, reset at the start of
// every pass (see train.go): count tracks how often each code occurs,
// pairCount how often each ordered pair of adjacent codes occurs. count uses
// uint32 since a single code can in principle occur once per sample byte;
// pairCount uses uint16, which is exactly enough for the default 16KiB
// sample (no pair can occur more often than the sample has bytes) and keeps
// the whole struct around 512KiB (512*512*2 bytes = 512KiB for pairCount,
// plus a negligible 2KiB for count) — small enough to stay resident in an
// L2-scale cache across a training pass.
type counters struct {
	count     [codeSpace]uint32
	pairCount [codeSpace][codeSpace]uint16
}

func (c *counters) incCount(code uint16) { c.count[code]++ }

func (c *counters) incPair(first, second uint16) { c.pairCount[first][second]++ }
