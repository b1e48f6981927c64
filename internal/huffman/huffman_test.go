package huffman

import "testing"

func TestCompressIsByteAligned(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0xA8, 0x00, 0x10, 0x5D, 0x00, 0x01},
		[]byte("the quick brown fox jumps over the lazy dog"),
	}
	for _, c := range cases {
		out := Compress(c)
		if len(out) == 0 {
			t.Fatalf("Compress(%v) produced no output (expected at least the terminator)", c)
		}
		// Everything after the data's codes must be whole terminator codes
		// (at least one) that fill the stream out to a byte boundary.
		dataBits := 0
		for _, b := range c {
			dataBits += int(codeTable[b].nbits)
		}
		term := int(codeTable[terminatorSymbol].nbits)
		pad := len(out)*8 - dataBits
		if pad < term || pad%term != 0 {
			t.Fatalf("Compress(%v): %d bits after the data are not whole %d-bit terminator codes", c, pad, term)
		}
	}
}

func TestCompressIsDeterministic(t *testing.T) {
	data := []byte{0x82, 0x00, 0x03}
	a := Compress(data)
	b := Compress(data)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("byte %d differs: %#x vs %#x", i, a[i], b[i])
		}
	}
}

func TestEveryByteValueHasAnAssignedCode(t *testing.T) {
	for sym := 0; sym < 257; sym++ {
		if codeTable[sym].nbits == 0 {
			t.Fatalf("symbol %d has no assigned code", sym)
		}
	}
}

func TestLongerInputProducesLongerOutput(t *testing.T) {
	short := Compress([]byte{0x00})
	long := Compress(make([]byte, 256))
	if len(long) <= len(short) {
		t.Fatalf("expected compressing 256 bytes to produce more output than compressing 1, got %d vs %d", len(long), len(short))
	}
}
