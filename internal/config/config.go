// Package config loads daemon configuration from a YAML file, mirroring
// balookrd-outline-cli-ws/internal/config/parser.go's use of
// gopkg.in/yaml.v3 to unmarshal a transport description. CLI positional
// arguments (spec section 6) take priority over whatever this file sets,
// matching the reference Rust binaries' own positional-override behavior
// (uoverse-server/src/bin/login.rs, .../game.rs).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape for either daemon; both daemons share one
// file so a deployment's login/game addresses and handoff target live in
// one place.
type Config struct {
	Login struct {
		ListenAddr string `yaml:"listen_addr"`
		ListenPort int    `yaml:"listen_port"`
	} `yaml:"login"`

	Game struct {
		ListenAddr string `yaml:"listen_addr"`
		ListenPort int    `yaml:"listen_port"`
		TickRate   int    `yaml:"tick_rate_hz"`
	} `yaml:"game"`
}

// Default returns the reference addresses of spec section 6: login on
// 127.0.0.1:2593, game on 127.0.0.1:2594, a 1Hz world tick.
func Default() *Config {
	c := &Config{}
	c.Login.ListenAddr = "127.0.0.1"
	c.Login.ListenPort = 2593
	c.Game.ListenAddr = "127.0.0.1"
	c.Game.ListenPort = 2594
	c.Game.TickRate = 1
	return c
}

// Load reads and unmarshals a YAML config file. A missing file is not an
// error: callers get Default() back so a deployment can rely purely on
// positional CLI arguments if it prefers.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}
