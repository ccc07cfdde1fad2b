// Package wire implements the append-only DNS wire-format encoder used to
// build canonical record serializations. All multi-byte integers are written
// big-endian, per RFC 1035.
package wire

import "bytes"

// Offsets above this cannot be addressed by a 14-bit compression pointer.
const maxPointerOffset = 0x3FFF

type labelSuffix struct {
	start  int
	suffix []byte
}

// Encoder is a growable byte sink with an offset counter and a table of
// previously written name suffixes. One Encoder is created per encode call
// and discarded with its output; it is never shared or reused.
type Encoder struct {
	buf       []byte
	offset    int
	suffixes  []labelSuffix
	canonical bool
}

func NewEncoder() *Encoder {
	return &Encoder{
		buf: make([]byte, 0, 512),
	}
}

// Bytes returns the encoded output. The returned slice aliases the encoder's
// buffer; callers must not write to the encoder afterwards.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

func (e *Encoder) Len() int {
	return len(e.buf)
}

// Offset is the position the next write lands at. It always equals Len().
func (e *Encoder) Offset() int {
	return e.offset
}

// SetCanonical switches the encoder into canonical (signature) mode.
// While set, name emission never produces compression pointers and no new
// suffixes are recorded, per RFC 4034 section 6.2.
func (e *Encoder) SetCanonical(canonical bool) {
	e.canonical = canonical
}

func (e *Encoder) Canonical() bool {
	return e.canonical
}

func (e *Encoder) EmitU8(b uint8) {
	e.buf = append(e.buf, b)
	e.offset++
}

func (e *Encoder) EmitU16(v uint16) {
	e.buf = append(e.buf, byte(v>>8), byte(v))
	e.offset += 2
}

func (e *Encoder) EmitU32(v uint32) {
	e.buf = append(e.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	e.offset += 4
}

func (e *Encoder) EmitBytes(b []byte) {
	e.buf = append(e.buf, b...)
	e.offset += len(b)
}

// EmitCharacterData writes a <character-string>: a one-octet length followed
// by the raw bytes (RFC 1035 section 3.3).
func (e *Encoder) EmitCharacterData(data []byte) error {
	if len(data) > 255 {
		return ErrCharacterDataTooLong
	}
	e.EmitU8(uint8(len(data)))
	e.EmitBytes(data)
	return nil
}

// Truncate discards everything written at or after the given offset, and
// drops any recorded suffixes that started there. Used when a name's tail is
// replaced by a compression pointer.
func (e *Encoder) Truncate(offset int) {
	if offset > len(e.buf) {
		return
	}
	e.buf = e.buf[:offset]
	e.offset = offset
	kept := e.suffixes[:0]
	for _, s := range e.suffixes {
		if s.start < offset {
			kept = append(kept, s)
		}
	}
	e.suffixes = kept
}

// SliceOf returns the bytes written between the two offsets.
func (e *Encoder) SliceOf(start, end int) []byte {
	return e.buf[start:end]
}

// FindSuffix reports the offset of a previously recorded suffix whose bytes
// equal buf[start:end], if one exists within pointer range.
func (e *Encoder) FindSuffix(start, end int) (uint16, bool) {
	search := e.SliceOf(start, end)
	for _, s := range e.suffixes {
		if bytes.Equal(s.suffix, search) {
			return uint16(s.start), true
		}
	}
	return 0, false
}

// RecordSuffix remembers buf[start:end] as a compression target for later
// names. Ignored in canonical mode and for offsets beyond pointer range.
func (e *Encoder) RecordSuffix(start, end int) {
	if e.canonical || start > maxPointerOffset {
		return
	}
	suffix := make([]byte, end-start)
	copy(suffix, e.SliceOf(start, end))
	e.suffixes = append(e.suffixes, labelSuffix{start: start, suffix: suffix})
}
