// Package wire implements the bit-exact big-endian codec described in
// spec section 4.1: integers, fixed and NUL-terminated strings, fixed
// arrays/structs, enumerations, and the three sequence framing conventions
// (length-prefixed, terminator-delimited, non-terminated).
//
// Types here are deliberately hand-written rather than derived through
// reflection, per the "Codec genericity" design note: each packet body in
// package packet implements Encode/Decode directly against a Writer/Reader,
// the way a build-time code generator would emit them.
package wire

import (
	"encoding/binary"
	"io"
	"math"

	"uoconnect/internal/uoerr"
)

// Writer accumulates encoded bytes, or — in probe mode — only counts them.
// Running the same Encode call against a real Writer and against
// NewSizeProbe must always agree on length (spec section 8, property 2);
// that's enforced structurally here by routing every write through write().
type Writer struct {
	out     io.Writer
	n       int
	discard bool
}

// NewWriter wraps an io.Writer that will receive the encoded bytes.
func NewWriter(out io.Writer) *Writer { return &Writer{out: out} }

// NewSizeProbe returns a Writer that performs no I/O and merely counts the
// bytes an Encode call would have produced. This is the "size probe" of
// spec section 4.1, used to fill in the 16-bit size header of
// length-prefixed and extended packets before the real bytes are written.
func NewSizeProbe() *Writer { return &Writer{discard: true} }

// Len returns the number of bytes written (or counted) so far.
func (w *Writer) Len() int { return w.n }

func (w *Writer) write(b []byte) error {
	w.n += len(b)
	if w.discard {
		return nil
	}
	_, err := w.out.Write(b)
	return err
}

// WriteBytes writes a raw byte slice verbatim (used for pre-encoded
// payloads and by higher-level helpers).
func (w *Writer) WriteBytes(b []byte) error { return w.write(b) }

func (w *Writer) WriteUint8(v uint8) error  { return w.write([]byte{v}) }
func (w *Writer) WriteInt8(v int8) error    { return w.WriteUint8(uint8(v)) }
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.WriteUint8(1)
	}
	return w.WriteUint8(0)
}

func (w *Writer) WriteUint16(v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return w.write(b[:])
}

func (w *Writer) WriteInt16(v int16) error { return w.WriteUint16(uint16(v)) }

func (w *Writer) WriteUint32(v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return w.write(b[:])
}

func (w *Writer) WriteInt32(v int32) error { return w.WriteUint32(uint32(v)) }

func (w *Writer) WriteUint64(v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return w.write(b[:])
}

func (w *Writer) WriteInt64(v int64) error { return w.WriteUint64(uint64(v)) }

func (w *Writer) WriteFloat32(v float32) error { return w.WriteUint32(math.Float32bits(v)) }
func (w *Writer) WriteFloat64(v float64) error { return w.WriteUint64(math.Float64bits(v)) }

// WriteFixedString emits exactly size bytes: s truncated to size if longer,
// zero-padded to size if shorter. The first NUL in a round-tripped value
// terminates the logical string on decode, but encode never inspects s for
// an embedded NUL — it just pads or truncates.
func (w *Writer) WriteFixedString(s string, size int) error {
	if err := checkASCII(s); err != nil {
		return err
	}
	buf := make([]byte, size)
	n := len(s)
	if n > size {
		n = size
	}
	copy(buf, s[:n])
	return w.write(buf)
}

// WriteNulString emits s followed by a single 0x00 terminator byte.
func (w *Writer) WriteNulString(s string) error {
	if err := checkASCII(s); err != nil {
		return err
	}
	if err := w.write([]byte(s)); err != nil {
		return err
	}
	return w.WriteUint8(0)
}

func checkASCII(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return uoerr.Data("non-ASCII string")
		}
	}
	return nil
}

// Bytes returns the accumulated output when the Writer was built over a
// *BufferSink (as NewBufferWriter does). For any other sink, and for a size
// probe, it returns nil; callers using another sink read from it directly.
func (w *Writer) Bytes() []byte {
	if bs, ok := w.out.(*BufferSink); ok {
		return bs.Bytes()
	}
	return nil
}

// BufferSink is a minimal growable-byte-slice io.Writer, used so that
// packet encoders can build a complete envelope in memory before handing it
// to a net.Conn.
type BufferSink struct {
	buf []byte
}

func (b *BufferSink) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *BufferSink) Bytes() []byte { return b.buf }

// NewBufferWriter is a convenience constructor for the common case of
// encoding straight into memory.
func NewBufferWriter() *Writer { return NewWriter(&BufferSink{}) }
