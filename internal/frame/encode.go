package frame

import (
	"uoconnect/internal/huffman"
	"uoconnect/internal/packet"
	"uoconnect/internal/uoerr"
	"uoconnect/internal/wire"
)

// Encode serializes f as a full network packet (envelope + body), rejecting
// it with Data if f's Kind is not in w's outbound whitelist (invariant 4).
// When compress is true the envelope bytes are passed through the Huffman
// compressor as a unit. Callers choose compress per phase: the game machine
// compresses every outbound write except in Connected and ClientVersion,
// and the login machine never compresses.
func Encode(f Frame, w Whitelist, compress bool) ([]byte, error) {
	if !w.AllowsOutbound(f.Kind) {
		return nil, uoerr.Data("outbound packet not permitted in this phase")
	}
	return encodeEnvelope(f, compress)
}

// EncodeInbound serializes f exactly as Encode does, without the
// server-side outbound whitelist check. The inbound path is never
// compressed (spec section 4.5); this is what a test harness (or a real
// client implementation, out of this engine's scope) uses to produce the
// bytes a client sends, since invariant 3's whitelist is enforced on the
// decode side by Buffer.Next, not by whatever produced the bytes.
func EncodeInbound(f Frame) ([]byte, error) {
	return encodeEnvelope(f, false)
}

func encodeEnvelope(f Frame, compress bool) ([]byte, error) {
	desc, ok := descriptors[f.Kind]
	if !ok {
		return nil, uoerr.Serialization("unknown frame kind")
	}

	bw := wire.NewBufferWriter()
	if err := packet.Encode(bw, desc, f.Body); err != nil {
		return nil, err
	}
	raw := bw.Bytes()

	if compress {
		return huffman.Compress(raw), nil
	}
	return raw, nil
}
