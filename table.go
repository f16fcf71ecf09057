package fsst

import (
	"sort"
	"unsafe"
)

// indexEntry is one row of an index2 bucket: the mask/payload pair
// findLongestSymbol compares against the lookup word, plus the code and
// length to report on a match. Entries within a bucket are kept sorted by
// length descending so the first match is always the longest.
type indexEntry struct {
	mask    uint64
	payload uint64
	code    uint16
	length  uint8
}

// Table holds a trained symbol table and provides both the encode and
// decode paths over it, via two lookup structures:
//
//   - index1[256]: the code to use for a lone byte when no length-≥2 symbol
//     matches — a real singleton code if one was learned for that byte,
//     otherwise the default escape pseudo-code 256+byte.
//   - index2: keyed by the first two bytes of a candidate window, holding
//     every learned symbol of length ≥2 that starts with those two bytes,
//     sorted longest-first.
//
// A Table is produced by Train/TrainStrings or by deserializing a
// previously exported one (ReadFrom/UnmarshalBinary); both construction
// paths finish with finalize, so a returned *Table is immutable and safe
// for concurrent Encode/Decode calls from multiple goroutines with no
// further setup.
type Table struct {
	index1 [256]uint16
	index2 map[uint16][]indexEntry

	symbols    [maxSymbols]symbol // code -> symbol, indexed by final code
	nSymbols   uint16
	lenHisto   [9]uint16 // lenHisto[length] = count of selected symbols of that length (1..8)
	escapeUsed bool      // informational: true if some byte has no 1-byte symbol

	// Decode-side lookup, flattened for the "store 8, advance by length"
	// decode trick.
	decLen  [maxSymbols]uint8
	decWord [maxSymbols]uint64
}

// newTable returns an empty table where every lookup falls through to the
// escape pseudo-code for that byte.
func newTable() *Table {
	t := &Table{index2: make(map[uint16][]indexEntry)}
	for b := 0; b < 256; b++ {
		t.index1[b] = uint16(pseudoBase + b)
	}
	return t
}

// clearSymbols removes every learned symbol and restores the lookup
// structures to their no-symbols-learned default, ready for the next
// training round's addSymbol calls.
func (t *Table) clearSymbols() {
	for b := 0; b < 256; b++ {
		t.index1[b] = uint16(pseudoBase + b)
	}
	t.index2 = make(map[uint16][]indexEntry)
	for i := range t.lenHisto {
		t.lenHisto[i] = 0
	}
	t.nSymbols = 0
}

// addSymbol assigns sym the next available code (its position in symbols)
// and installs it into index1 or index2 depending on length. Returns false
// if the table is already at the 255-symbol capacity.
func (t *Table) addSymbol(sym symbol) bool {
	if int(t.nSymbols) >= maxSymbols {
		return false
	}
	code := t.nSymbols
	t.symbols[code] = sym

	if sym.length == 1 {
		t.index1[sym.first()] = code
	} else {
		entry := indexEntry{mask: sym.mask(), payload: sym.word & sym.mask(), code: code, length: sym.length}
		bucket := t.index2[sym.first2()]
		i := 0
		for i < len(bucket) && bucket[i].length >= sym.length {
			i++
		}
		bucket = append(bucket, indexEntry{})
		copy(bucket[i+1:], bucket[i:])
		bucket[i] = entry
		t.index2[sym.first2()] = bucket
	}

	t.nSymbols++
	t.lenHisto[sym.length]++
	return true
}

// findLongestSymbol is the core lookup primitive: scan the length-≥2
// candidates sharing word's first two bytes, longest first, and return the
// first prefix match; fall back to index1 — a real singleton code, or the
// escape pseudo-code for that byte — if none matches.
func (t *Table) findLongestSymbol(word uint64) uint16 {
	for _, e := range t.index2[uint16(word)] {
		if word&e.mask == e.payload {
			return e.code
		}
	}
	return t.index1[byte(word)]
}

// finalize reassigns every learned symbol's code to the canonical partition
// order — multi-byte symbols first (sorted by first2 ascending, then length
// descending), singletons last — rebuilding index1/index2 from scratch in
// that order via addSymbol, and recomputes escapeUsed by checking whether
// any byte lacks a dedicated singleton code.
func (t *Table) finalize() {
	ordered := t.partitionedSymbols()

	t.index2 = make(map[uint16][]indexEntry)
	for b := 0; b < 256; b++ {
		t.index1[b] = uint16(pseudoBase + b)
	}
	for i := range t.lenHisto {
		t.lenHisto[i] = 0
	}
	t.nSymbols = 0

	for _, sym := range ordered {
		t.addSymbol(sym)
	}

	t.escapeUsed = false
	for b := 0; b < 256; b++ {
		if t.index1[b] >= pseudoBase {
			t.escapeUsed = true
			break
		}
	}
}

// partitionedSymbols returns t's learned symbols in the canonical order
// finalize assigns final codes in: multi-byte symbols first (by first2
// ascending, then length descending), singletons last. A symbol's full word
// breaks ties within equal (first2, length) — two distinct symbols can share
// a first2/length pair (e.g. "abx" and "aby" both have first2 "ab" and
// length 3) — so the order this produces depends only on the symbol set
// itself, never on insertion order. That determinism is what lets a
// reconstructed table (tableFromOrderedSymbols) re-derive the exact same
// code assignment its exporter used, which import(export(t)) == t requires.
func (t *Table) partitionedSymbols() []symbol {
	multi := make([]symbol, 0, t.nSymbols)
	single := make([]symbol, 0, t.nSymbols)
	for code := uint16(0); code < t.nSymbols; code++ {
		sym := t.symbols[code]
		if sym.length == 1 {
			single = append(single, sym)
		} else {
			multi = append(multi, sym)
		}
	}
	sort.Slice(multi, func(i, j int) bool {
		if multi[i].first2() != multi[j].first2() {
			return multi[i].first2() < multi[j].first2()
		}
		if multi[i].length != multi[j].length {
			return multi[i].length > multi[j].length
		}
		return multi[i].word < multi[j].word
	})
	sort.Slice(single, func(i, j int) bool { return single[i].word < single[j].word })
	return append(multi, single...)
}

// orderedSymbols returns the table's learned symbols grouped by length
// descending (8 down to 1), preserving each symbol's relative code order
// within its length group. This is the canonical order the serialized wire
// format stores symbols in.
func (t *Table) orderedSymbols() []symbol {
	out := make([]symbol, 0, t.nSymbols)
	for length := 8; length >= 1; length-- {
		for code := uint16(0); code < t.nSymbols; code++ {
			if int(t.symbols[code].length) == length {
				out = append(out, t.symbols[code])
			}
		}
	}
	return out
}

// tableFromOrderedSymbols rebuilds a finalized Table from a symbol list —
// the order only matters in that it is replayed through addSymbol before
// finalize re-sorts into the canonical partition, so any order reproduces
// the same final table.
func tableFromOrderedSymbols(list []symbol) *Table {
	t := newTable()
	for _, sym := range list {
		t.addSymbol(sym)
	}
	t.finalize()
	return t
}

// primeDecodeTables flattens symbols into the decLen/decWord arrays the
// decode path reads from.
func (t *Table) primeDecodeTables() {
	for code := uint16(0); code < t.nSymbols; code++ {
		sym := t.symbols[code]
		t.decLen[code] = sym.length
		t.decWord[code] = sym.word
	}
}

// SymbolCount reports how many learned symbols the table holds (0..255).
func (t *Table) SymbolCount() int { return int(t.nSymbols) }

// EncodeBound returns the guaranteed-sufficient output size for encoding n
// input bytes: the worst case of 2 bytes per input byte (every byte
// escapes) plus a small safety margin.
func EncodeBound(n int) int { return 2*n + 7 }

// Encode compresses input, optionally reusing buf for the output. buf may
// be nil or undersized; it is grown as needed. The returned slice may have
// a different backing array than buf.
//
// At each position it loads up to 8 bytes (the tail-safe loader once fewer
// than 8 remain), resolves the code via nextCode (findLongestSymbol,
// restricted near the end to symbols that fit in the remaining bytes), and
// either emits one byte and advances by the matched symbol's length, or
// emits the two-byte escape and advances by one.
func (t *Table) Encode(buf, input []byte) []byte {
	need := EncodeBound(len(input))
	if buf == nil || cap(buf) < need {
		buf = make([]byte, need)
	} else {
		buf = buf[:cap(buf)]
	}

	n := len(input)
	pos, outPos := 0, 0
	for pos < n {
		code := nextCode(t, input, pos)
		if code < pseudoBase {
			buf[outPos] = byte(code)
			outPos++
			pos += int(t.symbols[code].length)
		} else {
			buf[outPos] = escapeCode
			buf[outPos+1] = input[pos]
			outPos += 2
			pos++
		}
	}
	return buf[:outPos]
}

// EncodeAll compresses input and returns a freshly allocated slice.
func (t *Table) EncodeAll(input []byte) []byte { return t.Encode(nil, input) }

// EncodeInto compresses input into dst without allocating, returning the
// number of bytes written. It returns ErrOutputTooSmall — writing nothing
// to dst — if dst is smaller than EncodeBound(len(input)).
func (t *Table) EncodeInto(dst, input []byte) (int, error) {
	if len(dst) < EncodeBound(len(input)) {
		return 0, ErrOutputTooSmall
	}
	out := t.Encode(dst, input)
	return len(out), nil
}

// EncodeBatch compresses every input into a single shared destination
// buffer, preserving input order, and returns one subslice of dst per
// input. It returns ErrOutputTooSmall — writing nothing to dst — if dst
// cannot hold the worst case for the whole batch; on success every
// returned slice aliases dst.
func (t *Table) EncodeBatch(inputs [][]byte, dst []byte) ([][]byte, error) {
	need := 0
	for _, in := range inputs {
		need += EncodeBound(len(in))
	}
	if len(dst) < need {
		return nil, ErrOutputTooSmall
	}

	out := make([][]byte, len(inputs))
	pos := 0
	for i, in := range inputs {
		encoded := t.Encode(dst[pos:pos:cap(dst)], in)
		out[i] = encoded
		pos += len(encoded)
	}
	return out, nil
}

// Decode decompresses src, optionally reusing buf for the output. buf may
// be nil or undersized; it is grown as needed.
func (t *Table) Decode(buf, src []byte) []byte {
	return decodeGrowing(buf, src, &t.decLen, &t.decWord)
}

// DecodeAll decompresses src and returns a freshly allocated slice.
func (t *Table) DecodeAll(src []byte) []byte { return t.Decode(nil, src) }

// DecodeInto decompresses src into dst without ever growing dst, mirroring
// Decoder.DecodeInto for callers holding a full Table rather than a
// decode-only Decoder.
func (t *Table) DecodeInto(dst, src []byte) (int, error) {
	if len(dst) < DecodeBound(len(src)) {
		return 0, ErrOutputTooSmall
	}
	return decodeStoreTrick(dst, src, &t.decLen, &t.decWord), nil
}

// DecodeString decompresses s without copying it into a []byte first.
func (t *Table) DecodeString(s string) []byte {
	return t.Decode(nil, unsafe.Slice(unsafe.StringData(s), len(s)))
}
