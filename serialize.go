package fsst

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Wire format, a 16-byte header followed by symbol payload bytes:
//
//	offset 0..7:   countsByLength[1..8], one byte each, ascending by length
//	offset 8:      format version
//	offset 9:      endianness tag (0 = little-endian, the only value written)
//	offset 10:     reserved, always 0
//	offset 11:     escapeUsed, 0 or 1
//	offset 12..15: reserved, always 0
//	offset 16..:   symbol bytes, grouped length 8 down to 1, each group in
//	               the order its symbols were assigned codes
//
// Re-importing a blob and replaying its symbols through addSymbol+finalize
// in that exact order reproduces the exporting table's code assignment
// bit-for-bit, which is what makes a round trip through serialization
// produce a table identical in every observable way to the original.
const (
	headerSize     = 16
	formatVersion  = 1
	littleEndianID = 0
)

// WriteTo writes t's serialized form to w and returns the number of bytes
// written.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	ordered := t.orderedSymbols()

	var header [headerSize]byte
	for length := 1; length <= 8; length++ {
		header[length-1] = byte(t.lenHisto[length])
	}
	header[8] = formatVersion
	header[9] = littleEndianID
	if t.escapeUsed {
		header[11] = 1
	}

	n, err := w.Write(header[:])
	written := int64(n)
	if err != nil {
		return written, err
	}

	for _, sym := range ordered {
		length := int(sym.length)
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], sym.word)
		n, err = w.Write(buf[:length])
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t *Table) MarshalBinary() ([]byte, error) {
	buf := make(growBuffer, 0, headerSize+8*int(t.nSymbols))
	if _, err := t.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// growBuffer is a minimal io.Writer over a growable []byte, letting
// MarshalBinary reuse WriteTo without a bytes.Buffer import.
type growBuffer []byte

func (b *growBuffer) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}

// ReadFrom replaces t's contents with the table read from r. On success
// every lookup structure — encode-side and decode-side — is rebuilt, so t
// is immediately safe to use from Encode/Decode without further setup.
func (t *Table) ReadFrom(r io.Reader) (int64, error) {
	header := make([]byte, headerSize)
	n, err := io.ReadFull(r, header)
	read := int64(n)
	if err != nil {
		return read, fmt.Errorf("%w: reading header: %v", ErrMalformedTable, err)
	}

	list, payloadLen, err := decodeSymbolHeader(header)
	if err != nil {
		return read, err
	}

	payload := make([]byte, payloadLen)
	n, err = io.ReadFull(r, payload)
	read += int64(n)
	if err != nil {
		return read, fmt.Errorf("%w: reading symbol payload: %v", ErrMalformedTable, err)
	}
	if err := fillSymbolValues(list, payload); err != nil {
		return read, err
	}

	built := tableFromOrderedSymbols(list)
	built.primeDecodeTables()
	*t = *built
	return read, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Table) UnmarshalBinary(data []byte) error {
	list, _, err := parseSymbolList(data)
	if err != nil {
		return err
	}
	built := tableFromOrderedSymbols(list)
	built.primeDecodeTables()
	*t = *built
	return nil
}

// decodeSymbolHeader validates a header and returns the length-only symbol
// list (values not yet filled in) plus the number of payload bytes that
// must follow it.
func decodeSymbolHeader(header []byte) ([]symbol, int, error) {
	if len(header) < headerSize {
		return nil, 0, fmt.Errorf("%w: short header", ErrMalformedTable)
	}
	if header[8] != formatVersion {
		return nil, 0, fmt.Errorf("%w: %w: version %d", ErrMalformedTable, ErrBadVersion, header[8])
	}
	if header[9] != littleEndianID {
		return nil, 0, fmt.Errorf("%w: %w: endianness tag %d", ErrMalformedTable, ErrBadEndianness, header[9])
	}

	var total, payloadLen int
	list := make([]symbol, 0, maxSymbols)
	for length := 8; length >= 1; length-- {
		count := int(header[length-1])
		total += count
		payloadLen += count * length
		for i := 0; i < count; i++ {
			list = append(list, symbol{length: uint8(length)})
		}
	}
	if total > maxSymbols {
		return nil, 0, fmt.Errorf("%w: %d symbols exceeds the %d-symbol limit", ErrMalformedTable, total, maxSymbols)
	}
	return list, payloadLen, nil
}

// fillSymbolValues reads each symbol's raw bytes out of payload in the
// length-descending order decodeSymbolHeader laid list out in, and packs
// them into each symbol's word field.
func fillSymbolValues(list []symbol, payload []byte) error {
	pos := 0
	for i := range list {
		length := int(list[i].length)
		if pos+length > len(payload) {
			return fmt.Errorf("%w: truncated symbol payload", ErrMalformedTable)
		}
		list[i].word = loadTail(payload[pos : pos+length])
		pos += length
	}
	return nil
}

// parseSymbolList reads a full serialized blob (header + payload) and
// returns its symbols in canonical order, along with the header's declared
// payload length. It is the shared entry point DecoderFromBytes and
// UnmarshalBinary both use.
func parseSymbolList(blob []byte) ([]symbol, int, error) {
	if len(blob) < headerSize {
		return nil, 0, fmt.Errorf("%w: blob shorter than header", ErrMalformedTable)
	}
	list, payloadLen, err := decodeSymbolHeader(blob[:headerSize])
	if err != nil {
		return nil, 0, err
	}
	payload := blob[headerSize:]
	if len(payload) < payloadLen {
		return nil, 0, fmt.Errorf("%w: blob shorter than declared payload", ErrMalformedTable)
	}
	if err := fillSymbolValues(list, payload[:payloadLen]); err != nil {
		return nil, 0, err
	}
	return list, payloadLen, nil
}
