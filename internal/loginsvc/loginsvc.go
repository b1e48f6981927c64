// Package loginsvc drives one TCP connection through the login phase
// machine of spec section 4.5: Connected -> Hello -> Login -> ServerSelect
// -> Handoff. Each phase's legal inbound/outbound packets are exactly the
// frame.Whitelist declared for it in package frame; Run reads and writes
// against those whitelists in the fixed order the machine specifies and
// never re-enters a phase.
//
// The reference implementation type-witnesses each phase transition (a
// phase consumes the previous one by value, so the compiler refuses reuse
// of a stale phase handle). Go has no equivalent linear-typing discipline,
// so this package keeps the phases as an ordered sequence of reads/writes
// within a single function instead of a chain of phase structs — the same
// "can't go backwards, can't skip a phase" guarantee falls out of it being
// straight-line code, just without a compile-time proof.
package loginsvc

import (
	"log/slog"
	"math/rand"
	"net"

	"uoconnect/internal/frame"
	"uoconnect/internal/packet"
	"uoconnect/internal/uoerr"
)

// Authenticator decides whether a login attempt succeeds. Run carries no
// account store of its own; callers supply one.
type Authenticator interface {
	Authenticate(username, password string) bool
}

// TestPasswordAuthenticator accepts any username whose password begins
// with "test", mirroring the reference server's placeholder credential
// check (uoverse-server/src/bin/login.rs: `&password[..4] != "test"`).
type TestPasswordAuthenticator struct{}

func (TestPasswordAuthenticator) Authenticate(_, password string) bool {
	return len(password) >= 4 && password[:4] == "test"
}

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

// Run drives nc through every login phase in order. gameIP/gamePort are
// handed to the client in the terminal GameServerHandoff packet; auth
// decides whether AccountLogin succeeds. Run returns nil after a clean
// handoff or a clean rejection; it returns a non-nil error for anything
// that must abort the connection (spec section 7).
func Run(nc net.Conn, auth Authenticator, gameIP uint32, gamePort uint16, log *slog.Logger) error {
	c := &conn{nc: nc, rx: frame.NewBuffer()}

	helloFrame, err := c.read(frame.LoginConnected)
	if err != nil {
		return err
	}
	hello := helloFrame.Body.(*packet.ClientHello)
	log.Info("client hello",
		"seed", hello.Seed,
		"version_major", hello.VersionMajor, "version_minor", hello.VersionMinor,
		"version_revision", hello.VersionRevision, "version_patch", hello.VersionPatch)

	loginFrame, err := c.read(frame.LoginHello)
	if err != nil {
		return err
	}
	login := loginFrame.Body.(*packet.AccountLogin)
	log.Info("account login", "username", login.Username)

	if !auth.Authenticate(login.Username, login.Password) {
		log.Info("login rejected", "username", login.Username, "reason", packet.RejectBadPass)
		return c.write(frame.KindLoginRejection, &packet.LoginRejection{Reason: packet.RejectBadPass}, frame.LoginLogin, false)
	}

	if err := c.write(frame.KindServerList, &packet.ServerList{
		Flags: 0x5D,
		Servers: []packet.ServerEntry{
			{Index: 0, Name: "Test Server", PercentFull: 0, Timezone: 0, IP: gameIP},
		},
	}, frame.LoginLogin, false); err != nil {
		return err
	}

	selFrame, err := c.read(frame.LoginServerSelect)
	if err != nil {
		return err
	}
	sel := selFrame.Body.(*packet.ServerSelection)
	log.Info("server selected", "index", sel.Index)

	ticket := rand.Uint32()
	log.Info("handing off to game server", "ip", gameIP, "port", gamePort, "ticket", ticket)
	return c.write(frame.KindGameServerHandoff, &packet.GameServerHandoff{
		IP: gameIP, Port: gamePort, Ticket: ticket,
	}, frame.LoginHandoff, false)
}
