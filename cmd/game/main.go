// Command game is the Game daemon entry point: spec section 6's
// <listen-addr> <listen-port> positional CLI with a YAML config fallback,
// the world loop running as its own goroutine for the process lifetime,
// and the teacher's signal-wiring shape for ordered shutdown.
package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"uoconnect/internal/config"
	"uoconnect/internal/gamesvc"
	"uoconnect/internal/netsvc"
	"uoconnect/internal/world"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load("uoconnect.yaml")
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	listenAddr := cfg.Game.ListenAddr
	listenPort := cfg.Game.ListenPort

	args := os.Args[1:]
	if len(args) >= 2 {
		listenAddr = args[0]
		port, err := strconv.Atoi(args[1])
		if err != nil {
			log.Error("invalid port argument", "value", args[1], "err", err)
			os.Exit(1)
		}
		listenPort = port
	}

	wld := world.New(log)
	worldStop := make(chan struct{})
	go wld.Run(worldStop)

	addr := fmt.Sprintf("%s:%d", listenAddr, listenPort)
	srv, err := netsvc.New(addr, func(nc net.Conn) {
		connLog := log.With("remote_addr", nc.RemoteAddr().String())
		if err := gamesvc.Run(nc, gamesvc.AnyAuthenticator{}, wld, connLog); err != nil {
			connLog.Warn("connection aborted", "err", err)
		}
	}, log)
	if err != nil {
		log.Error("failed to bind", "addr", addr, "err", err)
		close(worldStop)
		os.Exit(1)
	}

	go func() {
		if err := srv.Serve(); err != nil {
			log.Error("serve failed", "err", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	// worldStop must close before srv.Stop() waits on connection handlers:
	// an InWorld handler only returns once it observes eviction (its
	// client.FromServer queue closing), which the world loop does as part
	// of handling worldStop. Stopping the listener first would leave
	// srv.Stop() blocked on handlers that are still waiting on the world.
	close(worldStop)
	srv.Stop()
}
