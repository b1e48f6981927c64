// Package gamesvc drives one TCP connection through the game phase machine
// of spec section 4.5: Connected -> CharList -> ClientVersion -> CharSelect
// -> CharLogin -> InWorld. As in package loginsvc, the phases are an
// ordered sequence of reads/writes against the frame.Whitelist declared for
// each state rather than a chain of phase structs — Go has no type-witness
// equivalent for the reference's per-phase consuming handles, so the
// "can't skip or re-enter a phase" guarantee comes from straight-line
// control flow instead.
//
// Connected and ClientVersion use the plain codec in both directions;
// every later phase's outbound path is Huffman-compressed (spec section
// 4.5's compression toggle). InWorld additionally bridges the connection
// to the world loop over the two channels package world hands back from
// NewClient.
package gamesvc

import (
	"errors"
	"io"
	"log/slog"
	"net"

	"uoconnect/internal/frame"
	"uoconnect/internal/packet"
	"uoconnect/internal/uoerr"
	"uoconnect/internal/world"
)

// Authenticator decides whether a game-login attempt succeeds. AuthID is
// the ticket the login daemon handed out in GameServerHandoff; a real
// deployment would look it up against recently issued tickets instead of
// accepting any value.
type Authenticator interface {
	Authenticate(username, password string, authID uint32) bool
}

// AnyAuthenticator accepts every GameLogin; the login daemon has already
// checked the password, and the ticket is this server's own loopback
// marker of who it's expecting, not a credential in its own right.
type AnyAuthenticator struct{}

func (AnyAuthenticator) Authenticate(_, _ string, _ uint32) bool { return true }

type conn struct {
	nc net.Conn
	rx *frame.Buffer
}

func (c *conn) read(w frame.Whitelist) (*frame.Frame, error) {
	for {
		f, err := c.rx.Next(w)
		if err != nil {
			return nil, err
		}
		if f != nil {
			return f, nil
		}
		buf := make([]byte, 4096)
		n, err := c.nc.Read(buf)
		if err != nil {
			return nil, uoerr.IO(err)
		}
		c.rx.Feed(buf[:n])
	}
}

// readSeed discards the 4-byte client-supplied seed that precedes any
// packet on the game socket (spec section 6); it carries no catalog
// envelope of its own.
func (c *conn) readSeed() error {
	for c.rx.Len() < 4 {
		buf := make([]byte, 4096)
		n, err := c.nc.Read(buf)
		if err != nil {
			return uoerr.IO(err)
		}
		c.rx.Feed(buf[:n])
	}
	c.rx.Discard(4)
	return nil
}

func (c *conn) write(k frame.Kind, body packet.Body, w frame.Whitelist, compress bool) error {
	raw, err := frame.Encode(frame.Frame{Kind: k, Body: body}, w, compress)
	if err != nil {
		return err
	}
	if _, err := c.nc.Write(raw); err != nil {
		return uoerr.IO(err)
	}
	return nil
}

// Run drives nc through every game phase in order, then bridges the
// connection to the world for as long as the client stays InWorld. It
// returns nil for any clean exit (EOF, eviction) and a non-nil error for
// anything that must abort the connection per spec section 7.
func Run(nc net.Conn, auth Authenticator, w *world.World, log *slog.Logger) error {
	c := &conn{nc: nc, rx: frame.NewBuffer()}

	if err := c.readSeed(); err != nil {
		return err
	}

	loginFrame, err := c.read(frame.GameConnected)
	if err != nil {
		return err
	}
	login := loginFrame.Body.(*packet.GameLogin)
	log.Info("game login", "username", login.Username, "auth_id", login.AuthID)

	if !auth.Authenticate(login.Username, login.Password, login.AuthID) {
		log.Info("game login rejected", "username", login.Username)
		return uoerr.Data("game login rejected")
	}

	if err := c.write(frame.KindFeatures, &packet.Features{Flags: 0x1F}, frame.GameCharList, true); err != nil {
		return err
	}
	if err := c.write(frame.KindCharList, defaultCharList(), frame.GameCharList, true); err != nil {
		return err
	}
	if err := c.write(frame.KindVersionReq, &packet.VersionReq{Marker: 0x0003}, frame.GameCharList, true); err != nil {
		return err
	}

	verFrame, err := c.read(frame.GameClientVersion)
	if err != nil {
		return err
	}
	ver := verFrame.Body.(*packet.VersionResp)
	log.Info("client version", "version", ver.Version)

	createFrame, err := c.read(frame.GameCharSelect)
	if err != nil {
		return err
	}
	create := createFrame.Body.(*packet.CreateCharacter)
	log.Info("character created", "name", create.Identity.Name, "profession", create.Profession)

	serial := uint32(0x00000001)
	if err := c.write(frame.KindLoginConfirmation, &packet.LoginConfirmation{
		Serial: serial, BodyType: 400, X: 3667, Y: 2625, Z: 0,
		Direction: packet.DirSouth, MapWidth: 6144, MapHeight: 4096,
	}, frame.GameCharLogin, true); err != nil {
		return err
	}
	if err := c.write(frame.KindCharStatus, &packet.CharStatus{
		Serial: serial, Name: create.Identity.Name,
		Hits: 50, MaxHits: 50, Mana: 25, MaxMana: 25, Stamina: 50, MaxStamina: 50,
		Strength: uint16(create.Strength), Dexterity: uint16(create.Dexterity), Intelligence: uint16(create.Intelligence),
	}, frame.GameCharLogin, true); err != nil {
		return err
	}
	if err := c.write(frame.KindLoginComplete, &packet.LoginComplete{}, frame.GameCharLogin, true); err != nil {
		return err
	}

	return c.runInWorld(w, log)
}

// runInWorld is the per-connection side of spec section 4.5's InWorld
// loop contract: a non-biased select between reading one frame off the
// socket (answering PingReq locally, forwarding everything else into the
// world's client->server queue) and writing one frame the world pushed
// into the server->client queue. EOF and queue closure both end the
// session cleanly.
func (c *conn) runInWorld(wld *world.World, log *slog.Logger) error {
	client := wld.NewClient()
	defer client.Close()

	done := make(chan struct{})
	defer close(done)

	incoming := make(chan *frame.Frame)
	readErr := make(chan error, 1)

	// A write after the client has closed its end can fail with
	// io.ErrClosedPipe before the reader sees EOF; that is the same client
	// close and ends the session cleanly too.
	peerClosed := func(err error) error {
		if errors.Is(err, io.ErrClosedPipe) {
			log.Info("client closed connection")
			return nil
		}
		return err
	}

	go func() {
		for {
			f, err := c.read(frame.GameInWorld)
			if err != nil {
				readErr <- err
				return
			}
			select {
			case incoming <- f:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case f := <-incoming:
			if ping, ok := f.Body.(*packet.PingReq); ok {
				if err := c.write(frame.KindPingAck, &packet.PingAck{Val: ping.Val}, frame.GameInWorld, true); err != nil {
					return peerClosed(err)
				}
				continue
			}
			select {
			case client.ToServer <- f:
			default:
				log.Warn("dropping inbound frame, world queue full", "kind", f.Kind)
			}

		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				log.Info("client closed connection")
				return nil
			}
			return err

		case out, ok := <-client.FromServer:
			if !ok {
				log.Info("evicted from world")
				return nil
			}
			if err := c.write(out.Kind, out.Body, frame.GameInWorld, true); err != nil {
				return peerClosed(err)
			}
		}
	}
}

func defaultCharList() *packet.CharList {
	return &packet.CharList{
		Flags: 0x00000001,
		Characters: []packet.CharacterSlot{
			{}, {}, {}, {}, {}, {}, {},
		},
		Cities: []packet.CityInfo{
			{Index: 0, City: "Britain", Building: "The Wayfarer's Inn", X: 1496, Y: 1628, Z: 10, Map: 0},
			{Index: 1, City: "Minoc", Building: "The Barnacle", X: 2476, Y: 413, Z: 15, Map: 0},
			{Index: 2, City: "Jhelom", Building: "The Mercenary Inn", X: 1374, Y: 3826, Z: 0, Map: 0},
			{Index: 3, City: "Yew", Building: "The Empath Abbey", X: 771, Y: 752, Z: 0, Map: 0},
			{Index: 4, City: "Trinsic", Building: "The Traveler's Inn", X: 1845, Y: 2745, Z: 0, Map: 0},
			{Index: 5, City: "Skara Brae", Building: "The Falconer's Inn", X: 634, Y: 2235, Z: 0, Map: 0},
			{Index: 6, City: "Vesper", Building: "The Ironwood Inn", X: 2771, Y: 976, Z: 0, Map: 0},
			{Index: 7, City: "Moonglow", Building: "The Scholars' Inn", X: 4467, Y: 1283, Z: 0, Map: 0},
			{Index: 8, City: "Magincia", Building: "The Magincia Inn", X: 3734, Y: 2222, Z: 20, Map: 0},
		},
	}
}
