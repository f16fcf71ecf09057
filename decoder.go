package fsst

import "encoding/binary"

// Decoder is the decode-only half of a symbol table: a flat array of
// (payload, length) entries, one per real code 0..254 (code 255 is the
// escape marker and has no entry), with none of the encode-side
// index1/index2 structures a Table also carries. Keeping it a distinct
// type from the encoder handle is useful for a reader process in a column
// store that only ever decodes rows and would rather not pay for (or even
// be able to build) the encoder's lookup tables.
type Decoder struct {
	decLen   [255]byte
	decWord  [255]uint64
	nSymbols uint16
}

// NewDecoder builds a Decoder sharing t's learned symbols without aliasing
// any of t's encode-side state.
func NewDecoder(t *Table) *Decoder {
	return &Decoder{decLen: t.decLen, decWord: t.decWord, nSymbols: t.nSymbols}
}

// DecoderFromBytes parses a serialized table and builds just the flat
// entry array a Decoder needs, skipping the encoder-side rebuild entirely.
func DecoderFromBytes(blob []byte) (*Decoder, error) {
	list, _, err := parseSymbolList(blob)
	if err != nil {
		return nil, err
	}
	t := tableFromOrderedSymbols(list)
	t.primeDecodeTables()
	return &Decoder{decLen: t.decLen, decWord: t.decWord, nSymbols: t.nSymbols}, nil
}

// SymbolCount reports how many learned symbols the decoder holds.
func (d *Decoder) SymbolCount() int { return int(d.nSymbols) }

// Decode decompresses src, optionally reusing buf for the output. buf may
// be nil or undersized; it is grown as needed.
func (d *Decoder) Decode(buf, src []byte) []byte {
	return decodeGrowing(buf, src, &d.decLen, &d.decWord)
}

// DecodeAll decompresses src into a freshly allocated slice.
func (d *Decoder) DecodeAll(src []byte) []byte { return d.Decode(nil, src) }

// DecodeBound returns the buffer size guaranteed sufficient for
// DecodeInto to decompress n bytes of compressed input: 8 bytes per
// compressed byte (the maximum a single code can expand to) plus the
// trailing slack the "store 8, advance by length" trick writes past the
// true decoded length.
func DecodeBound(n int) int { return 8*n + 8 }

// DecodeInto decompresses src into dst without ever growing dst, using the
// unconditional "store 8 bytes, advance by length" trick. It returns
// ErrOutputTooSmall — writing nothing to dst — if dst is smaller than
// DecodeBound(len(src)).
func (d *Decoder) DecodeInto(dst, src []byte) (int, error) {
	if len(dst) < DecodeBound(len(src)) {
		return 0, ErrOutputTooSmall
	}
	return decodeStoreTrick(dst, src, &d.decLen, &d.decWord), nil
}

// decodeStoreTrick writes every code's payload as a full unconditional
// 8-byte store, and advances the cursor by the symbol's true length, so the
// next store simply overwrites whatever trailing garbage the previous one
// left behind. Callers must guarantee dst is at least DecodeBound(len(src))
// long.
func decodeStoreTrick(dst, src []byte, decLen *[255]byte, decWord *[255]uint64) int {
	pos, out := 0, 0
	for pos < len(src) {
		code := src[pos]
		pos++
		if code == escapeCode {
			dst[out] = src[pos]
			pos++
			out++
			continue
		}
		binary.LittleEndian.PutUint64(dst[out:], decWord[code])
		out += int(decLen[code])
	}
	return out
}

// decodeGrowing is the allocation-friendly counterpart to decodeStoreTrick:
// it writes exactly `length` bytes per symbol (via storeSymbol) and grows
// the destination buffer on demand instead of requiring a pre-sized one.
func decodeGrowing(buf, src []byte, decLen *[255]byte, decWord *[255]uint64) []byte {
	if buf == nil {
		buf = make([]byte, 0, len(src)*4+8)
	} else {
		buf = buf[:0]
	}
	bufCap := cap(buf)
	if bufCap > 0 {
		buf = buf[:bufCap]
	}

	bufPos, srcPos := 0, 0
	for srcPos < len(src) {
		code := src[srcPos]
		srcPos++

		if code < escapeCode {
			length := int(decLen[code])
			value := decWord[code]
			if bufPos+length > bufCap {
				bufCap = max(bufCap*2, bufPos+length)
				grown := make([]byte, bufCap)
				copy(grown, buf[:bufPos])
				buf = grown
			}
			storeSymbol(buf[bufPos:], value, length)
			bufPos += length
			continue
		}

		if srcPos >= len(src) {
			break
		}
		if bufPos >= bufCap {
			bufCap = max(bufCap*2, bufPos+1)
			grown := make([]byte, bufCap)
			copy(grown, buf[:bufPos])
			buf = grown
		}
		buf[bufPos] = src[srcPos]
		bufPos++
		srcPos++
	}
	return buf[:bufPos]
}

// storeSymbol writes exactly length (1-8) bytes of value into dst, which
// must have at least length bytes of room. Unrolled per length so the
// common short lengths avoid a general byte-at-a-time loop.
func storeSymbol(dst []byte, value uint64, length int) {
	switch length {
	case 1:
		dst[0] = byte(value)
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(value))
	case 3:
		binary.LittleEndian.PutUint16(dst, uint16(value))
		dst[2] = byte(value >> 16)
	case 4:
		binary.LittleEndian.PutUint32(dst, uint32(value))
	case 5:
		binary.LittleEndian.PutUint32(dst, uint32(value))
		dst[4] = byte(value >> 32)
	case 6:
		binary.LittleEndian.PutUint32(dst, uint32(value))
		binary.LittleEndian.PutUint16(dst[4:], uint16(value>>32))
	case 7:
		binary.LittleEndian.PutUint32(dst, uint32(value))
		binary.LittleEndian.PutUint16(dst[4:], uint16(value>>32))
		dst[6] = byte(value >> 48)
	case 8:
		binary.LittleEndian.PutUint64(dst, value)
	}
}
