package loginsvc

import (
	"io"
	"log/slog"
	"net"
	"testing"

	"uoconnect/internal/frame"
	"uoconnect/internal/packet"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Buffer.Next checks the inbound side of a whitelist, so the test client
// decodes server replies against whitelists whose inbound kinds are the
// server phase's outbound kinds.
var (
	clientLoginReplies   = frame.NewWhitelist([]frame.Kind{frame.KindServerList, frame.KindLoginRejection}, nil)
	clientHandoffReplies = frame.NewWhitelist([]frame.Kind{frame.KindGameServerHandoff}, nil)
)

func sendClientHello(t *testing.T, client net.Conn) {
	t.Helper()
	raw, err := frame.EncodeInbound(frame.Frame{
		Kind: frame.KindClientHello,
		Body: &packet.ClientHello{Seed: 0x11223344, VersionMajor: 5, VersionMinor: 4, VersionRevision: 3, VersionPatch: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Write(raw); err != nil {
		t.Fatal(err)
	}
}

func recvFrame(t *testing.T, client net.Conn, w frame.Whitelist) *frame.Frame {
	t.Helper()
	buf := frame.NewBuffer()
	for {
		f, err := buf.Next(w)
		if err != nil {
			t.Fatal(err)
		}
		if f != nil {
			return f
		}
		tmp := make([]byte, 4096)
		n, err := client.Read(tmp)
		if err != nil {
			t.Fatal(err)
		}
		buf.Feed(tmp[:n])
	}
}

func TestRunHappyPath(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	done := make(chan error, 1)
	go func() {
		done <- Run(server, TestPasswordAuthenticator{}, 0x7F000001, 2594, discardLogger())
	}()

	sendClientHello(t, client)

	loginRaw, err := frame.EncodeInbound(frame.Frame{
		Kind: frame.KindAccountLogin,
		Body: &packet.AccountLogin{Username: "test", Password: "testpass"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Write(loginRaw); err != nil {
		t.Fatal(err)
	}

	listFrame := recvFrame(t, client, clientLoginReplies)
	list := listFrame.Body.(*packet.ServerList)
	if list.Flags != 0x5D || len(list.Servers) != 1 || list.Servers[0].Name != "Test Server" {
		t.Fatalf("unexpected server list: %+v", list)
	}

	selRaw, err := frame.EncodeInbound(frame.Frame{
		Kind: frame.KindServerSelection,
		Body: &packet.ServerSelection{Index: 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Write(selRaw); err != nil {
		t.Fatal(err)
	}

	handoffFrame := recvFrame(t, client, clientHandoffReplies)
	handoff := handoffFrame.Body.(*packet.GameServerHandoff)
	if handoff.IP != 0x7F000001 || handoff.Port != 2594 {
		t.Fatalf("unexpected handoff: %+v", handoff)
	}

	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestRunRejectsBadPassword(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	done := make(chan error, 1)
	go func() {
		done <- Run(server, TestPasswordAuthenticator{}, 0x7F000001, 2594, discardLogger())
	}()

	sendClientHello(t, client)

	loginRaw, err := frame.EncodeInbound(frame.Frame{
		Kind: frame.KindAccountLogin,
		Body: &packet.AccountLogin{Username: "test", Password: "wrongpass"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Write(loginRaw); err != nil {
		t.Fatal(err)
	}

	rejFrame := recvFrame(t, client, clientLoginReplies)
	rej := rejFrame.Body.(*packet.LoginRejection)
	if rej.Reason != packet.RejectBadPass {
		t.Fatalf("got reason %v, want RejectBadPass", rej.Reason)
	}

	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}
