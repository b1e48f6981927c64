package packet

import "uoconnect/internal/wire"

// Descriptors for the login-phase packet catalog (spec section 4.2).
var (
	DescClientHello       = Descriptor{ID: 0xEF, Policy: Fixed, FixedSize: 21}
	DescAccountLogin      = Descriptor{ID: 0x80, Policy: Fixed, FixedSize: 62}
	DescLoginRejection    = Descriptor{ID: 0x82, Policy: Fixed, FixedSize: 2}
	DescServerList        = Descriptor{ID: 0xA8, Policy: LengthPrefixed}
	DescServerSelection   = Descriptor{ID: 0xA0, Policy: Fixed, FixedSize: 3}
	DescGameServerHandoff = Descriptor{ID: 0x8C, Policy: Fixed, FixedSize: 11}
)

// ClientHello is the first packet on the login socket: a client-chosen seed
// and the client's reported version.
type ClientHello struct {
	Seed              uint32
	VersionMajor      uint32
	VersionMinor      uint32
	VersionRevision   uint32
	VersionPatch      uint32
}

func (b *ClientHello) Encode(w *wire.Writer) error {
	for _, v := range []uint32{b.Seed, b.VersionMajor, b.VersionMinor, b.VersionRevision, b.VersionPatch} {
		if err := w.WriteUint32(v); err != nil {
			return err
		}
	}
	return nil
}

func (b *ClientHello) Decode(r *wire.Reader) error {
	fields := []*uint32{&b.Seed, &b.VersionMajor, &b.VersionMinor, &b.VersionRevision, &b.VersionPatch}
	for _, f := range fields {
		v, err := r.ReadUint32()
		if err != nil {
			return err
		}
		*f = v
	}
	return nil
}

// AccountLogin carries the account credentials as two fixed 30-byte ASCII
// fields, followed by a single reserved byte the reference client always
// sends as zero.
type AccountLogin struct {
	Username string
	Password string
	Reserved uint8
}

func (b *AccountLogin) Encode(w *wire.Writer) error {
	if err := w.WriteFixedString(b.Username, 30); err != nil {
		return err
	}
	if err := w.WriteFixedString(b.Password, 30); err != nil {
		return err
	}
	return w.WriteUint8(b.Reserved)
}

func (b *AccountLogin) Decode(r *wire.Reader) error {
	u, err := r.ReadFixedString(30)
	if err != nil {
		return err
	}
	p, err := r.ReadFixedString(30)
	if err != nil {
		return err
	}
	res, err := r.ReadUint8()
	if err != nil {
		return err
	}
	b.Username, b.Password, b.Reserved = u, p, res
	return nil
}

// RejectReason is the 1-byte discriminant of LoginRejection.
type RejectReason uint8

const (
	RejectInvalidAccount RejectReason = 0x00
	RejectInUse          RejectReason = 0x01
	RejectBadPass        RejectReason = 0x03
	RejectBlocked        RejectReason = 0x04
	RejectBadCredentials RejectReason = 0x05
	RejectIdleTimeout    RejectReason = 0x06
)

// LoginRejection terminates the connection with a client-displayable reason
// code; Scenario B's exact two bytes are `82 03` (RejectBadPass).
type LoginRejection struct {
	Reason RejectReason
}

func (b *LoginRejection) Encode(w *wire.Writer) error { return w.WriteUint8(uint8(b.Reason)) }

func (b *LoginRejection) Decode(r *wire.Reader) error {
	v, err := r.ReadUint8()
	if err != nil {
		return err
	}
	b.Reason = RejectReason(v)
	return nil
}

// ServerEntry describes one selectable game-server shard within ServerList.
type ServerEntry struct {
	Index       uint16
	Name        string // fixed 32
	PercentFull uint8
	Timezone    uint8
	IP          uint32
}

func encodeServerEntry(w *wire.Writer, e ServerEntry) error {
	if err := w.WriteUint16(e.Index); err != nil {
		return err
	}
	if err := w.WriteFixedString(e.Name, 32); err != nil {
		return err
	}
	if err := w.WriteUint8(e.PercentFull); err != nil {
		return err
	}
	if err := w.WriteUint8(e.Timezone); err != nil {
		return err
	}
	return w.WriteUint32(e.IP)
}

func decodeServerEntry(r *wire.Reader) (ServerEntry, error) {
	var e ServerEntry
	var err error
	if e.Index, err = r.ReadUint16(); err != nil {
		return e, err
	}
	if e.Name, err = r.ReadFixedString(32); err != nil {
		return e, err
	}
	if e.PercentFull, err = r.ReadUint8(); err != nil {
		return e, err
	}
	if e.Timezone, err = r.ReadUint8(); err != nil {
		return e, err
	}
	if e.IP, err = r.ReadUint32(); err != nil {
		return e, err
	}
	return e, nil
}

// ServerList is the response to a successful AccountLogin: a flags byte and
// the List<ServerEntry,16> of selectable shards.
type ServerList struct {
	Flags   uint8
	Servers []ServerEntry
}

func (b *ServerList) Encode(w *wire.Writer) error {
	if err := w.WriteUint8(b.Flags); err != nil {
		return err
	}
	return wire.WriteList(w, 16, b.Servers, encodeServerEntry)
}

func (b *ServerList) Decode(r *wire.Reader) error {
	flags, err := r.ReadUint8()
	if err != nil {
		return err
	}
	servers, err := wire.ReadList(r, 16, decodeServerEntry)
	if err != nil {
		return err
	}
	b.Flags, b.Servers = flags, servers
	return nil
}

// ServerSelection picks one entry from the preceding ServerList by index.
type ServerSelection struct {
	Index uint16
}

func (b *ServerSelection) Encode(w *wire.Writer) error { return w.WriteUint16(b.Index) }

func (b *ServerSelection) Decode(r *wire.Reader) error {
	v, err := r.ReadUint16()
	if err != nil {
		return err
	}
	b.Index = v
	return nil
}

// GameServerHandoff redirects the client to the game daemon with a
// single-use ticket the game daemon will expect back during GameLogin.
type GameServerHandoff struct {
	IP     uint32
	Port   uint16
	Ticket uint32
}

func (b *GameServerHandoff) Encode(w *wire.Writer) error {
	if err := w.WriteUint32(b.IP); err != nil {
		return err
	}
	if err := w.WriteUint16(b.Port); err != nil {
		return err
	}
	return w.WriteUint32(b.Ticket)
}

func (b *GameServerHandoff) Decode(r *wire.Reader) error {
	var err error
	if b.IP, err = r.ReadUint32(); err != nil {
		return err
	}
	if b.Port, err = r.ReadUint16(); err != nil {
		return err
	}
	if b.Ticket, err = r.ReadUint32(); err != nil {
		return err
	}
	return nil
}
