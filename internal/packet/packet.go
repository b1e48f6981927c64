// Package packet declares the packet catalog: every wire message shape this
// engine speaks, tagged with a Descriptor (primary id, optional extended id,
// size policy) and encoded/decoded through the shared envelope rules of
// spec section 4.2. Individual packet bodies live in login.go and game.go;
// this file holds the machinery every body is built on top of.
package packet

import (
	"uoconnect/internal/uoerr"
	"uoconnect/internal/wire"
)

// SizePolicy dictates whether a 16-bit size field (and, for Extended, a
// secondary 16-bit id) follows the primary id on the wire.
type SizePolicy int

const (
	// Fixed packets have a compile-time-constant total envelope length;
	// no size field is ever emitted or expected.
	Fixed SizePolicy = iota
	// LengthPrefixed packets emit id + 16-bit size + body.
	LengthPrefixed
	// Extended packets emit id (always 0xBF) + 16-bit size + 16-bit
	// extended id + body.
	Extended
)

// Descriptor is the immutable metadata every packet type is registered
// with. FixedSize is the *total* envelope length (including the id byte)
// and is only meaningful when Policy == Fixed; per the design note on
// LoginComplete, a Fixed(n) descriptor with n == 1 describes a packet that
// is only ever its id byte.
type Descriptor struct {
	ID         uint8
	ExtendedID uint16
	Policy     SizePolicy
	FixedSize  int
}

// Body is implemented by every packet's payload type. Encode/Decode work
// against the body alone — the envelope (id/size/extended id) is handled
// by Encode and Decode in this file, never by the Body implementation.
type Body interface {
	Encode(w *wire.Writer) error
	Decode(r *wire.Reader) error
}

// Encode writes the full envelope (id, and size/extended-id as the policy
// requires) followed by body, to w. For LengthPrefixed and Extended
// policies the body is first run through a size probe so the size header
// can be written before the real bytes.
func Encode(w *wire.Writer, d Descriptor, body Body) error {
	switch d.Policy {
	case Fixed:
		if err := w.WriteUint8(d.ID); err != nil {
			return err
		}
		return body.Encode(w)

	case LengthPrefixed:
		probe := wire.NewSizeProbe()
		if err := body.Encode(probe); err != nil {
			return err
		}
		size := 1 + 2 + probe.Len()
		if err := w.WriteUint8(d.ID); err != nil {
			return err
		}
		if err := w.WriteUint16(uint16(size)); err != nil {
			return err
		}
		return body.Encode(w)

	case Extended:
		probe := wire.NewSizeProbe()
		if err := body.Encode(probe); err != nil {
			return err
		}
		size := 1 + 2 + 2 + probe.Len()
		if err := w.WriteUint8(0xBF); err != nil {
			return err
		}
		if err := w.WriteUint16(uint16(size)); err != nil {
			return err
		}
		if err := w.WriteUint16(d.ExtendedID); err != nil {
			return err
		}
		return body.Encode(w)

	default:
		return uoerr.Serialization("unknown size policy")
	}
}

// Decode reads the envelope of buf against the expectations of d, rebudgets
// the reader to exactly the body's byte span, and decodes body from it.
// Underread/overread of the body (invariant 2) is checked here, after
// body.Decode returns, by requiring the reader's remaining budget to be
// exactly zero.
func Decode(buf []byte, d Descriptor, body Body) error {
	r := wire.NewReader(buf, len(buf))

	id, err := r.ReadUint8()
	if err != nil {
		return err
	}
	if id != d.ID {
		return uoerr.Data("packet id mismatch")
	}

	var bodyLen int
	switch d.Policy {
	case Fixed:
		bodyLen = d.FixedSize - 1

	case LengthPrefixed:
		size, err := r.ReadUint16()
		if err != nil {
			return err
		}
		bodyLen = int(size) - 3

	case Extended:
		size, err := r.ReadUint16()
		if err != nil {
			return err
		}
		extID, err := r.ReadUint16()
		if err != nil {
			return err
		}
		if extID != d.ExtendedID {
			return uoerr.Data("extended id mismatch")
		}
		bodyLen = int(size) - 5

	default:
		return uoerr.Deserialization("unknown size policy")
	}

	if bodyLen < 0 {
		return uoerr.Deserialization("size too small for envelope")
	}
	r.Rebudget(bodyLen)

	if err := body.Decode(r); err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return uoerr.Deserialization("data remains")
	}
	return nil
}
