package packet

import (
	"uoconnect/internal/uoerr"
	"uoconnect/internal/wire"
)

// Descriptors for the game-phase packet catalog (spec section 4.2).
var (
	DescGameLogin         = Descriptor{ID: 0x91, Policy: Fixed, FixedSize: 65}
	DescFeatures          = Descriptor{ID: 0xB9, Policy: Fixed, FixedSize: 5}
	DescCharList          = Descriptor{ID: 0xA9, Policy: LengthPrefixed}
	DescVersionReq        = Descriptor{ID: 0xBD, Policy: Fixed, FixedSize: 3}
	DescVersionResp       = Descriptor{ID: 0xBD, Policy: LengthPrefixed}
	DescCreateCharacter   = Descriptor{ID: 0xF8, Policy: Fixed, FixedSize: 90}
	DescLoginConfirmation = Descriptor{ID: 0x1B, Policy: Fixed, FixedSize: 18}
	DescLoginComplete     = Descriptor{ID: 0x55, Policy: Fixed, FixedSize: 1}
	DescCharStatus        = Descriptor{ID: 0x11, Policy: LengthPrefixed}
	DescMobLightLevel     = Descriptor{ID: 0x4E, Policy: Fixed, FixedSize: 2}
	DescWorldLightLevel   = Descriptor{ID: 0x4F, Policy: Fixed, FixedSize: 2}
	DescMobileState       = Descriptor{ID: 0x77, Policy: Fixed, FixedSize: 17}
	DescMobileAppearance  = Descriptor{ID: 0x78, Policy: LengthPrefixed}
	DescPingReq           = Descriptor{ID: 0x73, Policy: Fixed, FixedSize: 2}
	DescPingAck           = Descriptor{ID: 0x73, Policy: Fixed, FixedSize: 2}
	DescMovementRequest   = Descriptor{ID: 0x02, Policy: Fixed, FixedSize: 7}
	DescMovementReject    = Descriptor{ID: 0x21, Policy: Fixed, FixedSize: 8}
	DescMovementSuccess   = Descriptor{ID: 0x22, Policy: Fixed, FixedSize: 3}
	DescWindowSize        = Descriptor{ID: 0xBF, ExtendedID: 0x05, Policy: Extended}
	DescLanguage          = Descriptor{ID: 0xBF, ExtendedID: 0x0B, Policy: Extended}
	DescMapChange         = Descriptor{ID: 0xBF, ExtendedID: 0x08, Policy: Extended}
	DescCloseStatus       = Descriptor{ID: 0xBF, ExtendedID: 0x0C, Policy: Extended}
	DescClientFlags       = Descriptor{ID: 0xBF, ExtendedID: 0x0F, Policy: Extended}
	DescEntityBatchQuery  = Descriptor{ID: 0xD6, Policy: LengthPrefixed}
	DescViewRange         = Descriptor{ID: 0xC8, Policy: Fixed, FixedSize: 2}
)

// Direction is a facing (0-7) with an independent "running" flag in the
// high bit, matching the reference client's movement byte.
type Direction uint8

const (
	DirNorth Direction = iota
	DirNorthEast
	DirEast
	DirSouthEast
	DirSouth
	DirSouthWest
	DirWest
	DirNorthWest
)

// Running is the high-bit flag combined with a facing.
const Running Direction = 0x80

func (d Direction) Facing() Direction { return d & 0x07 }
func (d Direction) IsRunning() bool   { return d&Running != 0 }

func writeDirection(w *wire.Writer, d Direction) error { return w.WriteUint8(uint8(d)) }

func readDirection(r *wire.Reader) (Direction, error) {
	v, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	d := Direction(v)
	if d&0x78 != 0 {
		return 0, uoerr.Data("invalid variant")
	}
	return d, nil
}

// Notoriety colors a mobile's name in the client's UI.
type Notoriety uint8

const (
	NotorietyInnocent    Notoriety = 1
	NotorietyAlly        Notoriety = 2
	NotorietyAttackable  Notoriety = 3
	NotorietyCriminal    Notoriety = 4
	NotorietyEnemy       Notoriety = 5
	NotorietyMurderer    Notoriety = 6
	NotorietyInvulnerable Notoriety = 7
)

func readNotoriety(r *wire.Reader) (Notoriety, error) {
	v, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	n := Notoriety(v)
	if n < NotorietyInnocent || n > NotorietyInvulnerable {
		return 0, uoerr.Data("invalid variant")
	}
	return n, nil
}

// EntityFlags is a bitmask of client-visible mobile state.
type EntityFlags uint8

const (
	EntityFrozen   EntityFlags = 0x01
	EntityFemale   EntityFlags = 0x02
	EntityPoisoned EntityFlags = 0x04
	EntityFlying   EntityFlags = 0x08
	EntityYellowHealthBar EntityFlags = 0x10
	EntityIgnoreMobiles   EntityFlags = 0x20
	EntityMovable         EntityFlags = 0x40
	EntityWarMode         EntityFlags = 0x80
)

// GameLogin is the first packet on the game socket after the 4-byte seed
// (§6) is discarded; AuthID must equal the ticket handed out in
// GameServerHandoff.
type GameLogin struct {
	AuthID   uint32
	Username string
	Password string
}

func (b *GameLogin) Encode(w *wire.Writer) error {
	if err := w.WriteUint32(b.AuthID); err != nil {
		return err
	}
	if err := w.WriteFixedString(b.Username, 30); err != nil {
		return err
	}
	return w.WriteFixedString(b.Password, 30)
}

func (b *GameLogin) Decode(r *wire.Reader) error {
	var err error
	if b.AuthID, err = r.ReadUint32(); err != nil {
		return err
	}
	if b.Username, err = r.ReadFixedString(30); err != nil {
		return err
	}
	if b.Password, err = r.ReadFixedString(30); err != nil {
		return err
	}
	return nil
}

// Features advertises which optional client UI elements the server
// supports (context menus, trade windows, and so on), as a bitmask.
type Features struct {
	Flags uint32
}

func (b *Features) Encode(w *wire.Writer) error { return w.WriteUint32(b.Flags) }

func (b *Features) Decode(r *wire.Reader) error {
	v, err := r.ReadUint32()
	if err != nil {
		return err
	}
	b.Flags = v
	return nil
}

// CharacterSlot is one of the (typically 7) character slots listed by
// CharList; an empty slot has an empty Name.
type CharacterSlot struct {
	Name     string // fixed 30
	Password string // fixed 30, unused by the reference client
}

func encodeCharacterSlot(w *wire.Writer, s CharacterSlot) error {
	if err := w.WriteFixedString(s.Name, 30); err != nil {
		return err
	}
	return w.WriteFixedString(s.Password, 30)
}

func decodeCharacterSlot(r *wire.Reader) (CharacterSlot, error) {
	var s CharacterSlot
	var err error
	if s.Name, err = r.ReadFixedString(30); err != nil {
		return s, err
	}
	if s.Password, err = r.ReadFixedString(30); err != nil {
		return s, err
	}
	return s, nil
}

// CityInfo is one starting-city choice offered during character creation.
type CityInfo struct {
	Index       uint8
	City        string // fixed 32
	Building    string // fixed 32
	Description uint32
	X           int32
	Y           int32
	Z           int32
	Map         uint32
}

func encodeCityInfo(w *wire.Writer, c CityInfo) error {
	if err := w.WriteUint8(c.Index); err != nil {
		return err
	}
	if err := w.WriteFixedString(c.City, 32); err != nil {
		return err
	}
	if err := w.WriteFixedString(c.Building, 32); err != nil {
		return err
	}
	if err := w.WriteUint32(c.Description); err != nil {
		return err
	}
	if err := w.WriteInt32(c.X); err != nil {
		return err
	}
	if err := w.WriteInt32(c.Y); err != nil {
		return err
	}
	if err := w.WriteInt32(c.Z); err != nil {
		return err
	}
	return w.WriteUint32(c.Map)
}

func decodeCityInfo(r *wire.Reader) (CityInfo, error) {
	var c CityInfo
	var err error
	if c.Index, err = r.ReadUint8(); err != nil {
		return c, err
	}
	if c.City, err = r.ReadFixedString(32); err != nil {
		return c, err
	}
	if c.Building, err = r.ReadFixedString(32); err != nil {
		return c, err
	}
	if c.Description, err = r.ReadUint32(); err != nil {
		return c, err
	}
	if c.X, err = r.ReadInt32(); err != nil {
		return c, err
	}
	if c.Y, err = r.ReadInt32(); err != nil {
		return c, err
	}
	if c.Z, err = r.ReadInt32(); err != nil {
		return c, err
	}
	if c.Map, err = r.ReadUint32(); err != nil {
		return c, err
	}
	return c, nil
}

// CharList answers GameLogin with the account's character slots and the
// available starting cities for character creation.
type CharList struct {
	Characters []CharacterSlot
	Cities     []CityInfo
	Flags      uint32
}

func (b *CharList) Encode(w *wire.Writer) error {
	if err := wire.WriteList(w, 8, b.Characters, encodeCharacterSlot); err != nil {
		return err
	}
	if err := wire.WriteList(w, 8, b.Cities, encodeCityInfo); err != nil {
		return err
	}
	return w.WriteUint32(b.Flags)
}

func (b *CharList) Decode(r *wire.Reader) error {
	chars, err := wire.ReadList(r, 8, decodeCharacterSlot)
	if err != nil {
		return err
	}
	cities, err := wire.ReadList(r, 8, decodeCityInfo)
	if err != nil {
		return err
	}
	flags, err := r.ReadUint32()
	if err != nil {
		return err
	}
	b.Characters, b.Cities, b.Flags = chars, cities, flags
	return nil
}

// VersionReq's two body bytes are a literal sub-command marker, not a size
// field — per the design note, Fixed(n) never emits a size header.
type VersionReq struct {
	Marker uint16
}

func (b *VersionReq) Encode(w *wire.Writer) error { return w.WriteUint16(b.Marker) }

func (b *VersionReq) Decode(r *wire.Reader) error {
	v, err := r.ReadUint16()
	if err != nil {
		return err
	}
	b.Marker = v
	return nil
}

// VersionResp carries the client's dotted version string back.
type VersionResp struct {
	Version string
}

func (b *VersionResp) Encode(w *wire.Writer) error { return w.WriteNulString(b.Version) }

func (b *VersionResp) Decode(r *wire.Reader) error {
	s, err := r.ReadNulString()
	if err != nil {
		return err
	}
	b.Version = s
	return nil
}

// Profession is the coarse archetype chosen at character creation.
type Profession uint8

const (
	ProfessionWarrior Profession = iota
	ProfessionMage
	ProfessionBlacksmith
	ProfessionNone // custom skill/stat distribution
)

func readProfession(r *wire.Reader) (Profession, error) {
	v, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	p := Profession(v)
	if p > ProfessionNone {
		return 0, uoerr.Data("invalid variant")
	}
	return p, nil
}

// SkillType names one of the trainable skills; only the small subset a new
// character can pick at creation needs a discriminant here.
type SkillType uint8

const (
	SkillAlchemy SkillType = iota
	SkillAnatomy
	SkillSwordsmanship
	SkillMagery
	SkillTactics
	SkillHealing
	SkillMeditation
	SkillParrying
)

func readSkillType(r *wire.Reader) (SkillType, error) {
	v, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	s := SkillType(v)
	if s > SkillParrying {
		return 0, uoerr.Data("invalid variant")
	}
	return s, nil
}

// SkillChoice assigns a starting point value to one skill; CreateCharacter
// carries four of these.
type SkillChoice struct {
	Skill SkillType
	Value uint8
}

func encodeSkillChoice(w *wire.Writer, s SkillChoice) error {
	if err := w.WriteUint8(uint8(s.Skill)); err != nil {
		return err
	}
	return w.WriteUint8(s.Value)
}

func decodeSkillChoice(r *wire.Reader) (SkillChoice, error) {
	skill, err := readSkillType(r)
	if err != nil {
		return SkillChoice{}, err
	}
	v, err := r.ReadUint8()
	if err != nil {
		return SkillChoice{}, err
	}
	return SkillChoice{Skill: skill, Value: v}, nil
}

// CharIdentity is the account-scoped name/password pair submitted with a
// new character (mirrors the slot fields of GameLogin/CharacterSlot).
type CharIdentity struct {
	Name     string // fixed 30
	Password string // fixed 30
}

// CharAppearance is the cosmetic package applied to a freshly created
// mobile: skin/hair/beard hues and styles.
type CharAppearance struct {
	Hue        uint16
	HairStyle  uint16
	HairHue    uint16
	BeardStyle uint16
	BeardHue   uint16
}

// CreateCharacter is submitted once the client has chosen a profession,
// attributes, starting skills and cosmetics (supplemented feature: full
// field layout rather than the byte-accurate envelope alone).
type CreateCharacter struct {
	Identity     CharIdentity
	Profession   Profession
	Strength     uint8
	Dexterity    uint8
	Intelligence uint8
	Skills       [4]SkillChoice
	Appearance   CharAppearance
	IsFemale     bool
	ShirtHue     uint16
	PantsHue     uint16
	CityIndex    uint8
	Slot         uint8
}

func (b *CreateCharacter) Encode(w *wire.Writer) error {
	if err := w.WriteFixedString(b.Identity.Name, 30); err != nil {
		return err
	}
	if err := w.WriteFixedString(b.Identity.Password, 30); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(b.Profession)); err != nil {
		return err
	}
	if err := w.WriteUint8(b.Strength); err != nil {
		return err
	}
	if err := w.WriteUint8(b.Dexterity); err != nil {
		return err
	}
	if err := w.WriteUint8(b.Intelligence); err != nil {
		return err
	}
	for _, s := range b.Skills {
		if err := encodeSkillChoice(w, s); err != nil {
			return err
		}
	}
	for _, h := range []uint16{b.Appearance.Hue, b.Appearance.HairStyle, b.Appearance.HairHue, b.Appearance.BeardStyle, b.Appearance.BeardHue} {
		if err := w.WriteUint16(h); err != nil {
			return err
		}
	}
	if err := w.WriteBool(b.IsFemale); err != nil {
		return err
	}
	if err := w.WriteUint16(b.ShirtHue); err != nil {
		return err
	}
	if err := w.WriteUint16(b.PantsHue); err != nil {
		return err
	}
	if err := w.WriteUint8(b.CityIndex); err != nil {
		return err
	}
	return w.WriteUint8(b.Slot)
}

func (b *CreateCharacter) Decode(r *wire.Reader) error {
	var err error
	if b.Identity.Name, err = r.ReadFixedString(30); err != nil {
		return err
	}
	if b.Identity.Password, err = r.ReadFixedString(30); err != nil {
		return err
	}
	if b.Profession, err = readProfession(r); err != nil {
		return err
	}
	if b.Strength, err = r.ReadUint8(); err != nil {
		return err
	}
	if b.Dexterity, err = r.ReadUint8(); err != nil {
		return err
	}
	if b.Intelligence, err = r.ReadUint8(); err != nil {
		return err
	}
	for i := range b.Skills {
		s, err := decodeSkillChoice(r)
		if err != nil {
			return err
		}
		b.Skills[i] = s
	}
	fields := []*uint16{&b.Appearance.Hue, &b.Appearance.HairStyle, &b.Appearance.HairHue, &b.Appearance.BeardStyle, &b.Appearance.BeardHue}
	for _, f := range fields {
		v, err := r.ReadUint16()
		if err != nil {
			return err
		}
		*f = v
	}
	if b.IsFemale, err = r.ReadBool(); err != nil {
		return err
	}
	if b.ShirtHue, err = r.ReadUint16(); err != nil {
		return err
	}
	if b.PantsHue, err = r.ReadUint16(); err != nil {
		return err
	}
	if b.CityIndex, err = r.ReadUint8(); err != nil {
		return err
	}
	if b.Slot, err = r.ReadUint8(); err != nil {
		return err
	}
	return nil
}

// LoginConfirmation places the chosen character into the world: serial,
// body type, starting coordinates, and facing.
type LoginConfirmation struct {
	Serial     uint32
	BodyType   uint16
	X          uint16
	Y          uint16
	Z          int16
	Direction  Direction
	MapWidth   uint16
	MapHeight  uint16
}

func (b *LoginConfirmation) Encode(w *wire.Writer) error {
	if err := w.WriteUint32(b.Serial); err != nil {
		return err
	}
	if err := w.WriteUint16(b.BodyType); err != nil {
		return err
	}
	if err := w.WriteUint16(b.X); err != nil {
		return err
	}
	if err := w.WriteUint16(b.Y); err != nil {
		return err
	}
	if err := w.WriteInt16(b.Z); err != nil {
		return err
	}
	if err := writeDirection(w, b.Direction); err != nil {
		return err
	}
	if err := w.WriteUint16(b.MapWidth); err != nil {
		return err
	}
	return w.WriteUint16(b.MapHeight)
}

func (b *LoginConfirmation) Decode(r *wire.Reader) error {
	var err error
	if b.Serial, err = r.ReadUint32(); err != nil {
		return err
	}
	if b.BodyType, err = r.ReadUint16(); err != nil {
		return err
	}
	if b.X, err = r.ReadUint16(); err != nil {
		return err
	}
	if b.Y, err = r.ReadUint16(); err != nil {
		return err
	}
	if b.Z, err = r.ReadInt16(); err != nil {
		return err
	}
	if b.Direction, err = readDirection(r); err != nil {
		return err
	}
	if b.MapWidth, err = r.ReadUint16(); err != nil {
		return err
	}
	if b.MapHeight, err = r.ReadUint16(); err != nil {
		return err
	}
	return nil
}

// LoginComplete has no body: per the design note, its Fixed(1) descriptor
// means the envelope is the id byte alone.
type LoginComplete struct{}

func (b *LoginComplete) Encode(w *wire.Writer) error { return nil }
func (b *LoginComplete) Decode(r *wire.Reader) error { return nil }

// CharStatus reports a mobile's vital statistics, completing the
// CharLogin -> InWorld handoff alongside LoginConfirmation and
// LoginComplete (supplemented feature 1).
type CharStatus struct {
	Serial       uint32
	Name         string
	Hits         uint16
	MaxHits      uint16
	Mana         uint16
	MaxMana      uint16
	Stamina      uint16
	MaxStamina   uint16
	Strength     uint16
	Dexterity    uint16
	Intelligence uint16
}

func (b *CharStatus) Encode(w *wire.Writer) error {
	if err := w.WriteUint32(b.Serial); err != nil {
		return err
	}
	if err := w.WriteNulString(b.Name); err != nil {
		return err
	}
	for _, v := range []uint16{b.Hits, b.MaxHits, b.Mana, b.MaxMana, b.Stamina, b.MaxStamina, b.Strength, b.Dexterity, b.Intelligence} {
		if err := w.WriteUint16(v); err != nil {
			return err
		}
	}
	return nil
}

func (b *CharStatus) Decode(r *wire.Reader) error {
	var err error
	if b.Serial, err = r.ReadUint32(); err != nil {
		return err
	}
	if b.Name, err = r.ReadNulString(); err != nil {
		return err
	}
	fields := []*uint16{&b.Hits, &b.MaxHits, &b.Mana, &b.MaxMana, &b.Stamina, &b.MaxStamina, &b.Strength, &b.Dexterity, &b.Intelligence}
	for _, f := range fields {
		v, err := r.ReadUint16()
		if err != nil {
			return err
		}
		*f = v
	}
	return nil
}

// MobLightLevel sets the personal light radius around the client's mobile.
type MobLightLevel struct {
	Level uint8
}

func (b *MobLightLevel) Encode(w *wire.Writer) error { return w.WriteUint8(b.Level) }

func (b *MobLightLevel) Decode(r *wire.Reader) error {
	v, err := r.ReadUint8()
	if err != nil {
		return err
	}
	b.Level = v
	return nil
}

// WorldLightLevel sets the ambient light level for the whole map.
type WorldLightLevel struct {
	Overall uint8
}

func (b *WorldLightLevel) Encode(w *wire.Writer) error { return w.WriteUint8(b.Overall) }

func (b *WorldLightLevel) Decode(r *wire.Reader) error {
	v, err := r.ReadUint8()
	if err != nil {
		return err
	}
	b.Overall = v
	return nil
}

// MobileState is the periodic broadcast of another mobile's position,
// facing, and notoriety to nearby clients.
type MobileState struct {
	Serial    uint32
	BodyType  uint16
	X         uint16
	Y         uint16
	Z         int8
	Direction Direction
	Hue       uint16
	Flags     EntityFlags
	Notoriety Notoriety
}

func (b *MobileState) Encode(w *wire.Writer) error {
	if err := w.WriteUint32(b.Serial); err != nil {
		return err
	}
	if err := w.WriteUint16(b.BodyType); err != nil {
		return err
	}
	if err := w.WriteUint16(b.X); err != nil {
		return err
	}
	if err := w.WriteUint16(b.Y); err != nil {
		return err
	}
	if err := w.WriteInt8(b.Z); err != nil {
		return err
	}
	if err := writeDirection(w, b.Direction); err != nil {
		return err
	}
	if err := w.WriteUint16(b.Hue); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(b.Flags)); err != nil {
		return err
	}
	return w.WriteUint8(uint8(b.Notoriety))
}

func (b *MobileState) Decode(r *wire.Reader) error {
	var err error
	if b.Serial, err = r.ReadUint32(); err != nil {
		return err
	}
	if b.BodyType, err = r.ReadUint16(); err != nil {
		return err
	}
	if b.X, err = r.ReadUint16(); err != nil {
		return err
	}
	if b.Y, err = r.ReadUint16(); err != nil {
		return err
	}
	if b.Z, err = r.ReadInt8(); err != nil {
		return err
	}
	if b.Direction, err = readDirection(r); err != nil {
		return err
	}
	if b.Hue, err = r.ReadUint16(); err != nil {
		return err
	}
	flags, err := r.ReadUint8()
	if err != nil {
		return err
	}
	b.Flags = EntityFlags(flags)
	if b.Notoriety, err = readNotoriety(r); err != nil {
		return err
	}
	return nil
}

// Item is one piece of equipment in a MobileAppearance's equipment list.
type Item struct {
	Serial uint32
	TypeID uint16
	Layer  uint8
	Hue    uint16
}

func encodeItem(w *wire.Writer, it Item) error {
	if err := w.WriteUint32(it.Serial); err != nil {
		return err
	}
	if err := w.WriteUint16(it.TypeID); err != nil {
		return err
	}
	if err := w.WriteUint8(it.Layer); err != nil {
		return err
	}
	return w.WriteUint16(it.Hue)
}

func decodeItem(r *wire.Reader) (Item, error) {
	var it Item
	var err error
	if it.Serial, err = r.ReadUint32(); err != nil {
		return it, err
	}
	if it.TypeID, err = r.ReadUint16(); err != nil {
		return it, err
	}
	if it.Layer, err = r.ReadUint8(); err != nil {
		return it, err
	}
	if it.Hue, err = r.ReadUint16(); err != nil {
		return it, err
	}
	return it, nil
}

// MobileAppearance describes a mobile's full equipped look: body, position,
// and the ListTerm<Item,u32> of worn equipment (supplemented feature 2
// reproduces the reference world's exact seed equipment as the values
// placed here by the world loop's onboarding path).
type MobileAppearance struct {
	Serial    uint32
	BodyType  uint16
	X         uint16
	Y         uint16
	Z         int8
	Direction Direction
	Hue       uint16
	Flags     EntityFlags
	Items     []Item
}

func (b *MobileAppearance) Encode(w *wire.Writer) error {
	if err := w.WriteUint32(b.Serial); err != nil {
		return err
	}
	if err := w.WriteUint16(b.BodyType); err != nil {
		return err
	}
	if err := w.WriteUint16(b.X); err != nil {
		return err
	}
	if err := w.WriteUint16(b.Y); err != nil {
		return err
	}
	if err := w.WriteInt8(b.Z); err != nil {
		return err
	}
	if err := writeDirection(w, b.Direction); err != nil {
		return err
	}
	if err := w.WriteUint16(b.Hue); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(b.Flags)); err != nil {
		return err
	}
	return wire.WriteListTerm(w, 32, b.Items, encodeItem)
}

func (b *MobileAppearance) Decode(r *wire.Reader) error {
	var err error
	if b.Serial, err = r.ReadUint32(); err != nil {
		return err
	}
	if b.BodyType, err = r.ReadUint16(); err != nil {
		return err
	}
	if b.X, err = r.ReadUint16(); err != nil {
		return err
	}
	if b.Y, err = r.ReadUint16(); err != nil {
		return err
	}
	if b.Z, err = r.ReadInt8(); err != nil {
		return err
	}
	if b.Direction, err = readDirection(r); err != nil {
		return err
	}
	if b.Hue, err = r.ReadUint16(); err != nil {
		return err
	}
	flags, err := r.ReadUint8()
	if err != nil {
		return err
	}
	b.Flags = EntityFlags(flags)
	items, err := wire.ReadListTerm(r, 32, decodeItem)
	if err != nil {
		return err
	}
	b.Items = items
	return nil
}

// PingReq/PingAck round-trip a single opaque byte the client uses to pair a
// reply with its request; the InWorld loop answers PingReq locally and
// never forwards it to the world (spec section 4.5).
type PingReq struct{ Val uint8 }

func (b *PingReq) Encode(w *wire.Writer) error { return w.WriteUint8(b.Val) }
func (b *PingReq) Decode(r *wire.Reader) error {
	v, err := r.ReadUint8()
	if err != nil {
		return err
	}
	b.Val = v
	return nil
}

type PingAck struct{ Val uint8 }

func (b *PingAck) Encode(w *wire.Writer) error { return w.WriteUint8(b.Val) }
func (b *PingAck) Decode(r *wire.Reader) error {
	v, err := r.ReadUint8()
	if err != nil {
		return err
	}
	b.Val = v
	return nil
}

// MovementRequest asks the world loop to move the client's mobile one step;
// Key is the fast-walk-prevention value the client regenerates per move.
type MovementRequest struct {
	Direction Direction
	Sequence  uint8
	Key       uint32
}

func (b *MovementRequest) Encode(w *wire.Writer) error {
	if err := writeDirection(w, b.Direction); err != nil {
		return err
	}
	if err := w.WriteUint8(b.Sequence); err != nil {
		return err
	}
	return w.WriteUint32(b.Key)
}

func (b *MovementRequest) Decode(r *wire.Reader) error {
	var err error
	if b.Direction, err = readDirection(r); err != nil {
		return err
	}
	if b.Sequence, err = r.ReadUint8(); err != nil {
		return err
	}
	if b.Key, err = r.ReadUint32(); err != nil {
		return err
	}
	return nil
}

// MovementReject snaps the client's mobile back to an authoritative
// position after a rejected move.
type MovementReject struct {
	Sequence  uint8
	X         uint16
	Y         uint16
	Direction Direction
	Z         int8
}

func (b *MovementReject) Encode(w *wire.Writer) error {
	if err := w.WriteUint8(b.Sequence); err != nil {
		return err
	}
	if err := w.WriteUint16(b.X); err != nil {
		return err
	}
	if err := w.WriteUint16(b.Y); err != nil {
		return err
	}
	if err := writeDirection(w, b.Direction); err != nil {
		return err
	}
	return w.WriteInt8(b.Z)
}

func (b *MovementReject) Decode(r *wire.Reader) error {
	var err error
	if b.Sequence, err = r.ReadUint8(); err != nil {
		return err
	}
	if b.X, err = r.ReadUint16(); err != nil {
		return err
	}
	if b.Y, err = r.ReadUint16(); err != nil {
		return err
	}
	if b.Direction, err = readDirection(r); err != nil {
		return err
	}
	if b.Z, err = r.ReadInt8(); err != nil {
		return err
	}
	return nil
}

// MovementSuccess confirms a move the world loop accepted (Scenario E).
type MovementSuccess struct {
	Sequence  uint8
	Notoriety Notoriety
}

func (b *MovementSuccess) Encode(w *wire.Writer) error {
	if err := w.WriteUint8(b.Sequence); err != nil {
		return err
	}
	return w.WriteUint8(uint8(b.Notoriety))
}

func (b *MovementSuccess) Decode(r *wire.Reader) error {
	var err error
	if b.Sequence, err = r.ReadUint8(); err != nil {
		return err
	}
	if b.Notoriety, err = readNotoriety(r); err != nil {
		return err
	}
	return nil
}

// WindowSize reports the client's viewport dimensions in pixels.
type WindowSize struct {
	Width  uint32
	Height uint32
}

func (b *WindowSize) Encode(w *wire.Writer) error {
	if err := w.WriteUint32(b.Width); err != nil {
		return err
	}
	return w.WriteUint32(b.Height)
}

func (b *WindowSize) Decode(r *wire.Reader) error {
	var err error
	if b.Width, err = r.ReadUint32(); err != nil {
		return err
	}
	if b.Height, err = r.ReadUint32(); err != nil {
		return err
	}
	return nil
}

// Language is the client's chosen locale as a fixed 4-byte ASCII code
// (e.g. "ENU\0").
type Language struct {
	Code string
}

func (b *Language) Encode(w *wire.Writer) error { return w.WriteFixedString(b.Code, 4) }

func (b *Language) Decode(r *wire.Reader) error {
	s, err := r.ReadFixedString(4)
	if err != nil {
		return err
	}
	b.Code = s
	return nil
}

// MapChange moves the client to a different map/facet.
type MapChange struct {
	MapID uint8
}

func (b *MapChange) Encode(w *wire.Writer) error { return w.WriteUint8(b.MapID) }

func (b *MapChange) Decode(r *wire.Reader) error {
	v, err := r.ReadUint8()
	if err != nil {
		return err
	}
	b.MapID = v
	return nil
}

// CloseStatus reports why the client is closing the gump/status window.
type CloseStatus struct {
	Status uint32
}

func (b *CloseStatus) Encode(w *wire.Writer) error { return w.WriteUint32(b.Status) }

func (b *CloseStatus) Decode(r *wire.Reader) error {
	v, err := r.ReadUint32()
	if err != nil {
		return err
	}
	b.Status = v
	return nil
}

// ClientFlags reports enhanced-client feature flags and a reserved value.
type ClientFlags struct {
	Flags    uint8
	Reserved uint32
}

func (b *ClientFlags) Encode(w *wire.Writer) error {
	if err := w.WriteUint8(b.Flags); err != nil {
		return err
	}
	return w.WriteUint32(b.Reserved)
}

func (b *ClientFlags) Decode(r *wire.Reader) error {
	var err error
	if b.Flags, err = r.ReadUint8(); err != nil {
		return err
	}
	if b.Reserved, err = r.ReadUint32(); err != nil {
		return err
	}
	return nil
}

// EntityBatchQuery asks the server to resend state for a batch of entity
// serials; it is the one catalog entry using ListNonTerm, and per
// invariant it must be (and is) the sole field of its body.
type EntityBatchQuery struct {
	Serials []uint32
}

func (b *EntityBatchQuery) Encode(w *wire.Writer) error {
	return wire.WriteListNonTerm(w, b.Serials, func(w *wire.Writer, v uint32) error { return w.WriteUint32(v) })
}

func (b *EntityBatchQuery) Decode(r *wire.Reader) error {
	items, err := wire.ReadListNonTerm(r, func(r *wire.Reader) (uint32, error) { return r.ReadUint32() })
	if err != nil {
		return err
	}
	b.Serials = items
	return nil
}

// ViewRange is a standard (non-extended) packet omitted from the
// distillation's table (supplemented feature 4); this server encodes and
// decodes it but never renegotiates a client's view range on its own.
type ViewRange struct {
	Range uint8
}

func (b *ViewRange) Encode(w *wire.Writer) error { return w.WriteUint8(b.Range) }

func (b *ViewRange) Decode(r *wire.Reader) error {
	v, err := r.ReadUint8()
	if err != nil {
		return err
	}
	b.Range = v
	return nil
}
