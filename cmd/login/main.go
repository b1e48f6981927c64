// Command login is the Login daemon entry point: spec section 6's
// <listen-addr> <listen-port> <game-addr> <game-port> positional CLI, a
// YAML config file as a fallback for any argument not given on the command
// line, and the teacher's (meesudzu-jx2-paysys/cmd/paysys) signal-wiring
// shape: SIGINT/SIGTERM triggers an ordered Stop().
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
	"uoconnect/internal/loginsvc"
	"uoconnect/internal/netsvc"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load("uoconnect.yaml")
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	listenAddr := cfg.Login.ListenAddr
	listenPort := cfg.Login.ListenPort
	gameAddr := cfg.Game.ListenAddr
	gamePort := cfg.Game.ListenPort

	args := os.Args[1:]
	if len(args) >= 2 {
		listenAddr = args[0]
		listenPort = atoiOrExit(log, args[1])
	}
	if len(args) >= 4 {
		gameAddr = args[2]
		gamePort = atoiOrExit(log, args[3])
	}

	gameIP, err := ipToUint32(gameAddr)
	if err != nil {
		log.Error("invalid game address", "addr", gameAddr, "err", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf("%s:%d", listenAddr, listenPort)
	srv, err := netsvc.New(addr, func(nc net.Conn) {
		connLog := log.With("remote_addr", nc.RemoteAddr().String())
		if err := loginsvc.Run(nc, loginsvc.TestPasswordAuthenticator{}, gameIP, uint16(gamePort), connLog); err != nil {
			connLog.Warn("connection aborted", "err", err)
		}
	}, log)
	if err != nil {
		log.Error("failed to bind", "addr", addr, "err", err)
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

	srv.Stop()
}

func atoiOrExit(log *slog.Logger, s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Error("invalid port argument", "value", s, "err", err)
		os.Exit(1)
	}
	return n
}

func ipToUint32(addr string) (uint32, error) {
	ips, err := net.LookupIP(addr)
	if err != nil {
		return 0, err
	}
	ip4 := ips[0].To4()
	if ip4 == nil {
		ip4 = net.IPv4(127, 0, 0, 1).To4()
	}
	return uint32(ip4[0])<<24 | uint32(ip4[1])<<16 | uint32(ip4[2])<<8 | uint32(ip4[3]), nil
}
