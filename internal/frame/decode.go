package frame

import (
	"uoconnect/internal/packet"
	"uoconnect/internal/uoerr"
)

// Buffer is the growable receive buffer the decode algorithm of spec
// section 4.3 operates on: bytes arrive in arbitrary chunks via Feed, and
// Next peels off one complete packet at a time once enough bytes have
// accumulated.
type Buffer struct {
	buf []byte
}

// NewBuffer returns an empty receive buffer.
func NewBuffer() *Buffer { return &Buffer{} }

// Feed appends newly-read bytes to the buffer.
func (b *Buffer) Feed(p []byte) { b.buf = append(b.buf, p...) }

// Next attempts to decode one complete packet from the head of the buffer
// against the inbound side of w. It returns (nil, nil) when more bytes
// must be read before a decode can be attempted — never an error for
// "not enough data yet". A non-nil error means the connection must abort:
// either the id/extended-id pair is outside w's inbound whitelist
// (invariant 3) or the body failed to decode.
func (b *Buffer) Next(w Whitelist) (*Frame, error) {
	if len(b.buf) < 1 {
		return nil, nil
	}
	id := b.buf[0]
	extended := id == 0xBF

	var extID uint16
	if extended {
		if len(b.buf) < 5 {
			return nil, nil
		}
		extID = uint16(b.buf[3])<<8 | uint16(b.buf[4])
	}

	key := idKey{id: id, extended: extended, extID: extID}
	kind, ok := w.inbound[key]
	if !ok {
		if extended {
			return nil, uoerr.Data("unexpected packet id 0x%02X(0x%02X)", id, extID)
		}
		return nil, uoerr.Data("unexpected packet id 0x%02X", id)
	}

	desc := descriptors[kind]
	var need int
	switch desc.Policy {
	case packet.Fixed:
		need = desc.FixedSize
	default:
		if len(b.buf) < 3 {
			return nil, nil
		}
		need = int(b.buf[1])<<8 | int(b.buf[2])
	}
	if len(b.buf) < need {
		return nil, nil
	}

	raw := b.buf[:need]
	body := factories[kind]()
	if err := packet.Decode(raw, desc, body); err != nil {
		return nil, err
	}
	b.buf = b.buf[need:]
	return &Frame{Kind: kind, Body: body}, nil
}

// Len reports how many unconsumed bytes are currently buffered.
func (b *Buffer) Len() int { return len(b.buf) }

// Discard drops the first n buffered bytes without decoding them; used for
// the 4-byte client seed that precedes any packet on the game socket and
// carries no catalog envelope of its own.
func (b *Buffer) Discard(n int) { b.buf = b.buf[n:] }
