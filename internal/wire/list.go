package wire

import "uoconnect/internal/uoerr"

// EncodeFunc and DecodeFunc are the per-element hooks that let the three
// sequence shapes of spec section 3 stay generic over T without reflection.
type EncodeFunc[T any] func(w *Writer, v T) error
type DecodeFunc[T any] func(r *Reader) (T, error)

// WriteList encodes a List<T, L> (spec section 3): an L-bit big-endian
// length prefix followed by N encoded elements. L must be 8, 16, 32 or 64.
// A length that doesn't fit in L bits is a Serialization error (invariant
// 6), checked before anything is written.
func WriteList[T any](w *Writer, lenBits int, items []T, enc EncodeFunc[T]) error {
	n := uint64(len(items))
	max := maxForBits(lenBits)
	if n > max {
		return uoerr.Serialization("length does not fit in %d-bit prefix (got %d, max %d)", lenBits, n, max)
	}
	if err := writeLenPrefix(w, lenBits, n); err != nil {
		return err
	}
	for _, item := range items {
		if err := enc(w, item); err != nil {
			return err
		}
	}
	return nil
}

// ReadList decodes a List<T, L>.
func ReadList[T any](r *Reader, lenBits int, dec DecodeFunc[T]) ([]T, error) {
	n, err := readLenPrefix(r, lenBits)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := dec(r)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

// WriteListTerm encodes a ListTerm<T, Term>: zero or more elements followed
// by a Term-sized zero sentinel.
func WriteListTerm[T any](w *Writer, termBits int, items []T, enc EncodeFunc[T]) error {
	for _, item := range items {
		if err := enc(w, item); err != nil {
			return err
		}
	}
	return writeLenPrefix(w, termBits, 0)
}

// ReadListTerm decodes a ListTerm<T, Term>: before each element, peek a
// Term-sized value; zero means stop (and consume the terminator),
// non-zero means decode one more element. Lookahead never touches the
// caller's remaining budget except through the eventual real reads.
func ReadListTerm[T any](r *Reader, termBits int, dec DecodeFunc[T]) ([]T, error) {
	var items []T
	for {
		isZero, err := r.PeekTerminator(termBits)
		if err != nil {
			return nil, uoerr.Deserialization("ListTerm missing terminator before end of budget")
		}
		if isZero {
			if err := r.ConsumeTerminator(termBits); err != nil {
				return nil, err
			}
			return items, nil
		}
		v, err := dec(r)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

// WriteListNonTerm encodes a ListNonTerm<T>: elements packed back-to-back
// with no length or terminator. Per the design note in section 9, this
// shape is only legal as the last field of its containing packet.
func WriteListNonTerm[T any](w *Writer, items []T, enc EncodeFunc[T]) error {
	for _, item := range items {
		if err := enc(w, item); err != nil {
			return err
		}
	}
	return nil
}

// ReadListNonTerm decodes elements until the reader's remaining budget is
// exhausted. Must only be called on the last field of a packet body.
func ReadListNonTerm[T any](r *Reader, dec DecodeFunc[T]) ([]T, error) {
	var items []T
	for r.Remaining() > 0 {
		v, err := dec(r)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func maxForBits(bits int) uint64 {
	switch bits {
	case 8:
		return 1<<8 - 1
	case 16:
		return 1<<16 - 1
	case 32:
		return 1<<32 - 1
	case 64:
		return ^uint64(0)
	default:
		return 0
	}
}

func writeLenPrefix(w *Writer, bits int, n uint64) error {
	switch bits {
	case 8:
		return w.WriteUint8(uint8(n))
	case 16:
		return w.WriteUint16(uint16(n))
	case 32:
		return w.WriteUint32(uint32(n))
	case 64:
		return w.WriteUint64(n)
	default:
		return uoerr.Serialization("unsupported length-prefix width: %d", bits)
	}
}

func readLenPrefix(r *Reader, bits int) (uint64, error) {
	switch bits {
	case 8:
		v, err := r.ReadUint8()
		return uint64(v), err
	case 16:
		v, err := r.ReadUint16()
		return uint64(v), err
	case 32:
		v, err := r.ReadUint32()
		return uint64(v), err
	case 64:
		return r.ReadUint64()
	default:
		return 0, uoerr.Deserialization("unsupported length-prefix width: %d", bits)
	}
}
