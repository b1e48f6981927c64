package packet

import (
	"bytes"
	"testing"

	"uoconnect/internal/wire"
)

func encodeToBytes(t *testing.T, d Descriptor, body Body) []byte {
	t.Helper()
	w := wire.NewBufferWriter()
	if err := Encode(w, d, body); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return w.Bytes()
}

func TestClientHelloGolden(t *testing.T) {
	hello := &ClientHello{Seed: 0x11223344, VersionMajor: 5, VersionMinor: 4, VersionRevision: 3, VersionPatch: 2}
	got := encodeToBytes(t, DescClientHello, hello)
	want := []byte{
		0xEF,
		0x11, 0x22, 0x33, 0x44,
		0x00, 0x00, 0x00, 0x05,
		0x00, 0x00, 0x00, 0x04,
		0x00, 0x00, 0x00, 0x03,
		0x00, 0x00, 0x00, 0x02,
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
	if len(got) != DescClientHello.FixedSize {
		t.Fatalf("len(got) = %d, want FixedSize %d", len(got), DescClientHello.FixedSize)
	}

	var decoded ClientHello
	if err := Decode(got, DescClientHello, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != *hello {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, *hello)
	}
}

func TestLoginRejectionGolden(t *testing.T) {
	rej := &LoginRejection{Reason: RejectBadPass}
	got := encodeToBytes(t, DescLoginRejection, rej)
	want := []byte{0x82, 0x03}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}

	var decoded LoginRejection
	if err := Decode(got, DescLoginRejection, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Reason != RejectBadPass {
		t.Fatalf("got %v", decoded.Reason)
	}
}

func TestServerListLengthHeaderMatchesEncodedLength(t *testing.T) {
	list := &ServerList{
		Flags: 0x5D,
		Servers: []ServerEntry{
			{Index: 0, Name: "Test Server", PercentFull: 0, Timezone: 0, IP: 0x7F000001},
		},
	}
	got := encodeToBytes(t, DescServerList, list)

	size := uint16(got[1])<<8 | uint16(got[2])
	if int(size) != len(got) {
		t.Fatalf("size header = %d, encoded length = %d", size, len(got))
	}

	var decoded ServerList
	if err := Decode(got, DescServerList, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Flags != list.Flags || len(decoded.Servers) != 1 || decoded.Servers[0].Name != "Test Server" {
		t.Fatalf("got %+v", decoded)
	}
}

func TestAccountLoginRoundTrip(t *testing.T) {
	login := &AccountLogin{Username: "test", Password: "testpass"}
	got := encodeToBytes(t, DescAccountLogin, login)
	if len(got) != DescAccountLogin.FixedSize {
		t.Fatalf("len = %d, want %d", len(got), DescAccountLogin.FixedSize)
	}
	var decoded AccountLogin
	if err := Decode(got, DescAccountLogin, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Username != "test" || decoded.Password != "testpass" {
		t.Fatalf("got %+v", decoded)
	}
}

func TestGameServerHandoffRoundTrip(t *testing.T) {
	h := &GameServerHandoff{IP: 0x7F000001, Port: 2594, Ticket: 0xCAFEBABE}
	got := encodeToBytes(t, DescGameServerHandoff, h)
	var decoded GameServerHandoff
	if err := Decode(got, DescGameServerHandoff, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != *h {
		t.Fatalf("got %+v, want %+v", decoded, *h)
	}
}

func TestWindowSizeExtendedEnvelope(t *testing.T) {
	ws := &WindowSize{Width: 1024, Height: 768}
	got := encodeToBytes(t, DescWindowSize, ws)
	if got[0] != 0xBF {
		t.Fatalf("primary id = %#x, want 0xBF", got[0])
	}
	size := uint16(got[1])<<8 | uint16(got[2])
	if int(size) != len(got) {
		t.Fatalf("size header %d != encoded length %d", size, len(got))
	}
	extID := uint16(got[3])<<8 | uint16(got[4])
	if extID != DescWindowSize.ExtendedID {
		t.Fatalf("extended id = %#x, want %#x", extID, DescWindowSize.ExtendedID)
	}

	var decoded WindowSize
	if err := Decode(got, DescWindowSize, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != *ws {
		t.Fatalf("got %+v, want %+v", decoded, *ws)
	}
}

func TestExtendedIDMismatchRejected(t *testing.T) {
	ws := &WindowSize{Width: 1, Height: 1}
	buf := encodeToBytes(t, DescWindowSize, ws)

	var decoded Language
	if err := Decode(buf, DescLanguage, &decoded); err == nil {
		t.Fatal("expected extended id mismatch error")
	}
}

func TestPrimaryIDMismatchRejected(t *testing.T) {
	buf := encodeToBytes(t, DescLoginRejection, &LoginRejection{Reason: RejectBadPass})
	var al AccountLogin
	if err := Decode(buf, DescAccountLogin, &al); err == nil {
		t.Fatal("expected packet id mismatch error")
	}
}

func TestCreateCharacterRoundTrip(t *testing.T) {
	cc := &CreateCharacter{
		Identity:     CharIdentity{Name: "Hero", Password: "hunter2"},
		Profession:   ProfessionWarrior,
		Strength:     60,
		Dexterity:    50,
		Intelligence: 10,
		Skills: [4]SkillChoice{
			{Skill: SkillSwordsmanship, Value: 50},
			{Skill: SkillTactics, Value: 50},
			{Skill: SkillAnatomy, Value: 30},
			{Skill: SkillHealing, Value: 20},
		},
		Appearance: CharAppearance{Hue: 1002, HairStyle: 0x203B, HairHue: 1109},
		IsFemale:   false,
		ShirtHue:   1837,
		PantsHue:   1897,
		CityIndex:  3,
		Slot:       0,
	}
	got := encodeToBytes(t, DescCreateCharacter, cc)
	if len(got) != DescCreateCharacter.FixedSize {
		t.Fatalf("len = %d, want %d", len(got), DescCreateCharacter.FixedSize)
	}
	var decoded CreateCharacter
	if err := Decode(got, DescCreateCharacter, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Identity.Name != cc.Identity.Name || decoded.Profession != cc.Profession || decoded.Skills != cc.Skills {
		t.Fatalf("got %+v, want %+v", decoded, cc)
	}
}

func TestMobileAppearanceWithSeedEquipment(t *testing.T) {
	app := &MobileAppearance{
		Serial:   0x00000001,
		BodyType: 0x0190,
		X:        1323, Y: 1624, Z: 0,
		Direction: DirSouth,
		Hue:       1002,
		Items: []Item{
			{Serial: 0x40000001, TypeID: 0x1517, Layer: 5, Hue: 1837}, // shirt
			{Serial: 0x40000002, TypeID: 0x1539, Layer: 4, Hue: 1897}, // pants
			{Serial: 0x40000003, TypeID: 0x170D, Layer: 7, Hue: 1900}, // boots
			{Serial: 0x40000004, TypeID: 0x1541, Layer: 20, Hue: 0},   // cloak
			{Serial: 0x40000005, TypeID: 0x203B, Layer: 11, Hue: 1109}, // hair
		},
	}
	got := encodeToBytes(t, DescMobileAppearance, app)
	var decoded MobileAppearance
	if err := Decode(got, DescMobileAppearance, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Items) != 5 {
		t.Fatalf("got %d items, want 5", len(decoded.Items))
	}
	if decoded.Items[4].TypeID != 0x203B {
		t.Fatalf("hair item mismatch: %+v", decoded.Items[4])
	}
}

func TestInvalidDirectionDiscriminantRejected(t *testing.T) {
	r := wire.NewReader([]byte{0x08}, 1) // 0x08 sets a reserved bit (0x78 mask)
	if _, err := readDirection(r); err == nil {
		t.Fatal("expected Data error for invalid Direction discriminant")
	}
}

func TestInvalidNotorietyDiscriminantRejected(t *testing.T) {
	r := wire.NewReader([]byte{0x00}, 1)
	if _, err := readNotoriety(r); err == nil {
		t.Fatal("expected Data error for invalid Notoriety discriminant (0 is not a variant)")
	}
}

func TestMovementScenario(t *testing.T) {
	req := &MovementRequest{Direction: DirNorth | Running, Sequence: 1, Key: 0xAABBCCDD}
	buf := encodeToBytes(t, DescMovementRequest, req)
	var decodedReq MovementRequest
	if err := Decode(buf, DescMovementRequest, &decodedReq); err != nil {
		t.Fatal(err)
	}
	if !decodedReq.Direction.IsRunning() || decodedReq.Direction.Facing() != DirNorth {
		t.Fatalf("got %+v", decodedReq)
	}

	succ := &MovementSuccess{Sequence: 1, Notoriety: NotorietyInnocent}
	sbuf := encodeToBytes(t, DescMovementSuccess, succ)
	want := []byte{0x22, 0x01, 0x01}
	if !bytes.Equal(sbuf, want) {
		t.Fatalf("got % x, want % x", sbuf, want)
	}
}

func TestPingRoundTrip(t *testing.T) {
	req := &PingReq{Val: 0x42}
	buf := encodeToBytes(t, DescPingReq, req)
	if !bytes.Equal(buf, []byte{0x73, 0x42}) {
		t.Fatalf("got % x", buf)
	}
	ack := &PingAck{Val: 0x42}
	abuf := encodeToBytes(t, DescPingAck, ack)
	if !bytes.Equal(abuf, []byte{0x73, 0x42}) {
		t.Fatalf("got % x", abuf)
	}
}

func TestLoginCompleteIsIDOnly(t *testing.T) {
	got := encodeToBytes(t, DescLoginComplete, &LoginComplete{})
	if !bytes.Equal(got, []byte{0x55}) {
		t.Fatalf("got % x, want [0x55]", got)
	}
}

func TestEntityBatchQueryConsumesRemainingBudget(t *testing.T) {
	q := &EntityBatchQuery{Serials: []uint32{1, 2, 3}}
	got := encodeToBytes(t, DescEntityBatchQuery, q)
	var decoded EntityBatchQuery
	if err := Decode(got, DescEntityBatchQuery, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Serials) != 3 || decoded.Serials[2] != 3 {
		t.Fatalf("got %+v", decoded)
	}
}

func TestVersionReqRespRoundTrip(t *testing.T) {
	req := &VersionReq{Marker: 3}
	rbuf := encodeToBytes(t, DescVersionReq, req)
	if !bytes.Equal(rbuf, []byte{0xBD, 0x00, 0x03}) {
		t.Fatalf("got % x", rbuf)
	}

	resp := &VersionResp{Version: "7.0.15.1"}
	respBuf := encodeToBytes(t, DescVersionResp, resp)
	var decoded VersionResp
	if err := Decode(respBuf, DescVersionResp, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Version != "7.0.15.1" {
		t.Fatalf("got %q", decoded.Version)
	}
}
