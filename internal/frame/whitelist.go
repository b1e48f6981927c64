package frame

// Whitelist is the per-phase pair of legal inbound and outbound Kinds
// (spec section 4.3/4.5): a phase's typed frame sum types, approximated as
// the set of Kinds it permits in each direction.
type Whitelist struct {
	inbound  map[idKey]Kind
	outbound map[Kind]bool
}

// NewWhitelist builds a Whitelist from the Kinds legal to receive and to
// send while a connection is in some phase.
func NewWhitelist(inbound, outbound []Kind) Whitelist {
	w := Whitelist{
		inbound:  make(map[idKey]Kind, len(inbound)),
		outbound: make(map[Kind]bool, len(outbound)),
	}
	for _, k := range inbound {
		w.inbound[keyFor(k)] = k
	}
	for _, k := range outbound {
		w.outbound[k] = true
	}
	return w
}

// AllowsOutbound reports whether k may be sent while this whitelist is in
// effect.
func (w Whitelist) AllowsOutbound(k Kind) bool { return w.outbound[k] }
