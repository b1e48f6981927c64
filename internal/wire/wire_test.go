package wire

import (
	"bytes"
	"testing"
)

// GoldenInts mirrors the GoldenFrames table style used in
// pascaldekloe/websocket's conn_test.go: a table of values and their exact
// wire encoding, round-tripped both ways.
var GoldenInts = []struct {
	name string
	enc  func(w *Writer) error
	dec  func(r *Reader) (any, error)
	want []byte
}{
	{"uint8", func(w *Writer) error { return w.WriteUint8(0xAB) },
		func(r *Reader) (any, error) { return r.ReadUint8() }, []byte{0xAB}},
	{"uint16", func(w *Writer) error { return w.WriteUint16(0x1234) },
		func(r *Reader) (any, error) { return r.ReadUint16() }, []byte{0x12, 0x34}},
	{"uint32", func(w *Writer) error { return w.WriteUint32(0xDEADBEEF) },
		func(r *Reader) (any, error) { return r.ReadUint32() }, []byte{0xDE, 0xAD, 0xBE, 0xEF}},
	{"uint64", func(w *Writer) error { return w.WriteUint64(0x0102030405060708) },
		func(r *Reader) (any, error) { return r.ReadUint64() },
		[]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}},
	{"bool true", func(w *Writer) error { return w.WriteBool(true) },
		func(r *Reader) (any, error) { return r.ReadBool() }, []byte{1}},
	{"bool false", func(w *Writer) error { return w.WriteBool(false) },
		func(r *Reader) (any, error) { return r.ReadBool() }, []byte{0}},
}

func TestGoldenIntegers(t *testing.T) {
	for _, g := range GoldenInts {
		t.Run(g.name, func(t *testing.T) {
			w := NewBufferWriter()
			if err := g.enc(w); err != nil {
				t.Fatalf("encode: %v", err)
			}
			if !bytes.Equal(w.Bytes(), g.want) {
				t.Fatalf("encode = % x, want % x", w.Bytes(), g.want)
			}
			r := NewReader(w.Bytes(), len(g.want))
			if _, err := g.dec(r); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if r.Remaining() != 0 {
				t.Fatalf("remaining = %d, want 0", r.Remaining())
			}
		})
	}
}

func TestSizeProbeMatchesWrittenLength(t *testing.T) {
	enc := func(w *Writer) error {
		if err := w.WriteUint32(1); err != nil {
			return err
		}
		if err := w.WriteFixedString("hello", 10); err != nil {
			return err
		}
		return WriteList(w, 16, []uint8{1, 2, 3}, func(w *Writer, v uint8) error { return w.WriteUint8(v) })
	}

	probe := NewSizeProbe()
	if err := enc(probe); err != nil {
		t.Fatalf("probe encode: %v", err)
	}

	real := NewBufferWriter()
	if err := enc(real); err != nil {
		t.Fatalf("real encode: %v", err)
	}

	if probe.Len() != len(real.Bytes()) {
		t.Fatalf("probe length %d != real length %d", probe.Len(), len(real.Bytes()))
	}
}

func TestFixedStringPadAndTruncate(t *testing.T) {
	w := NewBufferWriter()
	if err := w.WriteFixedString("hi", 5); err != nil {
		t.Fatal(err)
	}
	want := []byte{'h', 'i', 0, 0, 0}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("got % x, want % x", w.Bytes(), want)
	}

	r := NewReader(w.Bytes(), 5)
	s, err := r.ReadFixedString(5)
	if err != nil {
		t.Fatal(err)
	}
	if s != "hi" {
		t.Fatalf("got %q, want %q", s, "hi")
	}

	w2 := NewBufferWriter()
	if err := w2.WriteFixedString("toolongstring", 5); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(w2.Bytes(), []byte("toolo")) {
		t.Fatalf("truncate: got %q", w2.Bytes())
	}
}

func TestNulTerminatedString(t *testing.T) {
	w := NewBufferWriter()
	if err := w.WriteNulString("ENU"); err != nil {
		t.Fatal(err)
	}
	want := []byte{'E', 'N', 'U', 0}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("got % x, want % x", w.Bytes(), want)
	}

	r := NewReader(w.Bytes(), len(want))
	s, err := r.ReadNulString()
	if err != nil {
		t.Fatal(err)
	}
	if s != "ENU" {
		t.Fatalf("got %q", s)
	}
	if r.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", r.Remaining())
	}
}

func TestNonASCIIRejected(t *testing.T) {
	w := NewBufferWriter()
	if err := w.WriteFixedString("café", 10); err == nil {
		t.Fatal("expected non-ASCII rejection on encode")
	}

	r := NewReader([]byte{'a', 0xFF, 'b'}, 3)
	if _, err := r.ReadFixedString(3); err == nil {
		t.Fatal("expected non-ASCII rejection on decode")
	}
}

func TestListRoundTrip(t *testing.T) {
	items := []uint16{10, 20, 30}
	encU16 := func(w *Writer, v uint16) error { return w.WriteUint16(v) }
	decU16 := func(r *Reader) (uint16, error) { return r.ReadUint16() }

	w := NewBufferWriter()
	if err := WriteList(w, 8, items, encU16); err != nil {
		t.Fatal(err)
	}
	want := []byte{3, 0, 10, 0, 20, 0, 30}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("got % x, want % x", w.Bytes(), want)
	}

	r := NewReader(w.Bytes(), len(want))
	got, err := ReadList(r, 8, decU16)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 10 || got[1] != 20 || got[2] != 30 {
		t.Fatalf("got %v", got)
	}
}

func TestListTooLongRejected(t *testing.T) {
	items := make([]uint8, 256)
	w := NewSizeProbe()
	err := WriteList(w, 8, items, func(w *Writer, v uint8) error { return w.WriteUint8(v) })
	if err == nil {
		t.Fatal("expected Serialization error for oversized List<T,8>")
	}
}

func TestListTermRoundTrip(t *testing.T) {
	items := []uint32{1, 2}
	enc := func(w *Writer, v uint32) error { return w.WriteUint32(v) }
	dec := func(r *Reader) (uint32, error) { return r.ReadUint32() }

	w := NewBufferWriter()
	if err := WriteListTerm(w, 32, items, enc); err != nil {
		t.Fatal(err)
	}
	want := []byte{0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 0}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("got % x, want % x", w.Bytes(), want)
	}

	r := NewReader(w.Bytes(), len(want))
	got, err := ReadListTerm(r, 32, dec)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("got %v", got)
	}
	if r.Remaining() != 0 {
		t.Fatalf("remaining = %d", r.Remaining())
	}
}

func TestListTermMissingTerminatorFails(t *testing.T) {
	dec := func(r *Reader) (uint8, error) { return r.ReadUint8() }
	r := NewReader([]byte{1, 2, 3}, 3)
	if _, err := ReadListTerm(r, 8, dec); err == nil {
		t.Fatal("expected Deserialization error for missing terminator")
	}
}

func TestListNonTermUsesRemainingBudget(t *testing.T) {
	enc := func(w *Writer, v uint8) error { return w.WriteUint8(v) }
	dec := func(r *Reader) (uint8, error) { return r.ReadUint8() }

	w := NewBufferWriter()
	if err := WriteListNonTerm(w, []uint8{1, 2, 3, 4}, enc); err != nil {
		t.Fatal(err)
	}

	r := NewReader(w.Bytes(), len(w.Bytes()))
	got, err := ReadListNonTerm(r, dec)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("got %v", got)
	}
}

func TestUnderreadAndOverread(t *testing.T) {
	// Underread: budget says 4 bytes but only a uint16 is consumed; the
	// packet decoder (not Reader itself) is responsible for checking
	// Remaining() != 0 after decoding a body (invariant 2).
	r := NewReader([]byte{1, 2, 3, 4}, 4)
	if _, err := r.ReadUint16(); err != nil {
		t.Fatal(err)
	}
	if r.Remaining() != 2 {
		t.Fatalf("remaining = %d, want 2 (caller must reject as data remains)", r.Remaining())
	}

	// Overread: budget says 1 byte, but a uint16 read needs 2.
	r2 := NewReader([]byte{1, 2, 3}, 1)
	if _, err := r2.ReadUint16(); err == nil {
		t.Fatal("expected Deserialization error reading past budget")
	}
}
