package wire

import (
	"encoding/binary"
	"math"

	"uoconnect/internal/uoerr"
)

// Reader decodes values out of a single, already fully-buffered packet body.
// The framing layer (package frame) is responsible for knowing where a
// packet begins and ends before a Reader is ever constructed — §4.3's
// buffered-decode algorithm does the "do we have enough bytes yet" work, so
// the Reader itself only ever sees exactly the bytes of one packet and a
// declared remaining-byte budget for the body (spec section 4.1).
type Reader struct {
	buf       []byte
	pos       int
	remaining int
}

// NewReader constructs a Reader over buf starting at the current position,
// with budget bytes available to the body before it must be exhausted
// exactly (invariant 2 of spec section 3).
func NewReader(buf []byte, budget int) *Reader {
	return &Reader{buf: buf, remaining: budget}
}

// Remaining reports how many budgeted bytes are left unconsumed.
func (r *Reader) Remaining() int { return r.remaining }

// Rebudget replaces the remaining-byte budget with n, without touching the
// read position. The packet envelope layer uses this once it has read the
// header fields (id, size, extended id) to hand the body decoder exactly
// its own byte budget (spec section 4.2's decoder rules).
func (r *Reader) Rebudget(n int) { r.remaining = n }

// Pos reports the current absolute offset into the underlying buffer,
// useful for resuming a Reader across header fields read outside of it.
func (r *Reader) Pos() int { return r.pos }

func (r *Reader) take(n int) ([]byte, error) {
	if n > r.remaining {
		return nil, uoerr.Deserialization("read past end")
	}
	if r.pos+n > len(r.buf) {
		return nil, uoerr.Deserialization("read past end")
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	r.remaining -= n
	return b, nil
}

// peek returns n bytes starting at the current position without consuming
// them or touching the remaining budget, per the "peek semantics for
// ListTerm" design note: lookahead is local to the terminator check and
// must never perturb budget tracking.
func (r *Reader) peek(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, uoerr.Deserialization("read past end")
	}
	return r.buf[r.pos : r.pos+n], nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadUint8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadFixedString reads exactly size bytes and returns the prefix up to the
// first NUL (or the whole size bytes if none is present), per spec section
// 3: "the first NUL terminates the logical string".
func (r *Reader) ReadFixedString(size int) (string, error) {
	b, err := r.take(size)
	if err != nil {
		return "", err
	}
	return asciiPrefix(b)
}

// ReadNulString reads bytes up to and including the first 0x00 terminator,
// consuming the terminator and returning the prefix before it. It is an
// error to exhaust the remaining budget without finding a terminator.
func (r *Reader) ReadNulString() (string, error) {
	start := r.pos
	for {
		b, err := r.ReadUint8()
		if err != nil {
			return "", uoerr.Deserialization("NUL-terminated string missing terminator")
		}
		if b == 0 {
			return asciiPrefix(r.buf[start : r.pos-1])
		}
	}
}

func asciiPrefix(b []byte) (string, error) {
	for i, c := range b {
		if c == 0 {
			b = b[:i]
			break
		}
		if c > 0x7F {
			return "", uoerr.Data("non-ASCII string")
		}
	}
	return string(b), nil
}

// PeekTerminator inspects (without consuming) a term-sized integer ahead of
// the current position, for ListTerm decoding: a zero value means stop and
// the terminator should then be consumed; non-zero means decode one more
// element. termBits is one of 8/16/32/64.
func (r *Reader) PeekTerminator(termBits int) (zero bool, err error) {
	n := termBits / 8
	b, err := r.peek(n)
	if err != nil {
		return false, err
	}
	for _, c := range b {
		if c != 0 {
			return false, nil
		}
	}
	return true, nil
}

// ConsumeTerminator reads past a term-sized zero value already confirmed by
// PeekTerminator.
func (r *Reader) ConsumeTerminator(termBits int) error {
	_, err := r.take(termBits / 8)
	return err
}
