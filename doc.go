// Package fsst compresses short, repetitive strings using a symbol table
// learned from a sample of the data itself.
//
// # How it works
//
// Train (or TrainStrings) scans a corpus and picks up to 255 byte patterns,
// 1 to 8 bytes each, that recur often enough to be worth a dedicated code.
// The resulting *Table assigns one output byte to every occurrence of a
// learned pattern; bytes that don't match anything go out as a two-byte
// escape (0xFF followed by the literal byte) instead of failing to encode.
// Decoding is a lookup per code, not a general-purpose decompressor, which
// is why it runs far faster than the entropy coders gzip/zstd rely on.
//
// # Good fit
//
//   - Log lines, JSON/CSV records, and other semi-structured text with
//     recurring substrings (field names, punctuation, common words)
//   - Columnar storage, where the same table is reused across millions of
//     short values and the per-value overhead of a general compressor
//     would dominate
//   - Workloads that decode far more often than they train: training is the
//     expensive step, encode/decode are both cheap table lookups
//
// # Poor fit
//
//   - Data with no repeated substrings — random bytes, ciphertext, already
//     -compressed payloads — there's nothing for Train to learn
//   - One-shot compression of a single string, where the training cost is
//     never amortized
//   - Large binary blobs; reach for gzip/zstd/LZ4 instead, which model
//     byte-level entropy rather than a fixed table of short patterns
//
// # Compared to general-purpose compressors
//
// Against gzip/zstd: FSST decodes an order of magnitude faster, ships a
// table that's kilobytes rather than the tens of kilobytes a zstd
// dictionary needs, and produces the same output every time it's given the
// same table — at the cost of a lower compression ratio and an explicit
// training step before any encoding can happen.
//
// Against LZ4: FSST usually wins on structured text where LZ4 can't find
// long enough matches, and its table is smaller, but LZ4 needs no training
// and is faster on data with no learnable structure at all.
//
// # Usage
//
//	// Train on data representative of what will be compressed later.
//	inputs := [][]byte{
//	    []byte(`{"id":123,"name":"Alice"}`),
//	    []byte(`{"id":456,"name":"Bob"}`),
//	}
//	tbl := fsst.Train(inputs, fsst.WithSeed(42))
//
//	// Compress and decompress a new value against the learned table.
//	compressed := tbl.EncodeAll([]byte(`{"id":789,"name":"Charlie"}`))
//	original := tbl.DecodeAll(compressed)
//
//	// Decode into a caller-owned buffer with no allocation.
//	dst := make([]byte, fsst.DecodeBound(len(compressed)))
//	n, err := tbl.DecodeInto(dst, compressed)
//	_ = dst[:n] // decompressed data
//
//	// Compress a whole batch into one shared, caller-owned output buffer
//	// sized for the batch's worst case (a smaller one is rejected with
//	// ErrOutputTooSmall).
//	need := 0
//	for _, in := range inputs {
//	    need += fsst.EncodeBound(len(in))
//	}
//	encoded, _ := tbl.EncodeBatch(inputs, make([]byte, need))
//
//	// Ship the table to another process, and hand a reader a decode-only
//	// value that never needs the encoder's lookup structures.
//	data, _ := tbl.MarshalBinary()
//	var tbl2 fsst.Table
//	tbl2.UnmarshalBinary(data)
//	dec, _ := fsst.DecoderFromBytes(data)
//	_ = dec.DecodeAll(compressed)
//
// # Cost model
//
// Training is the only expensive step: five passes over a bounded sample
// (16KiB by default) of the corpus, each pass a linear scan plus a
// counting/selection round. Once trained, Encode and Decode are both O(n)
// in the size of their input, driven by a handful of array lookups per
// symbol rather than any per-byte entropy computation — decode in
// particular is little more than a table-driven copy loop.
package fsst
