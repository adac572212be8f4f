// Package config loads Frameloom configuration from a TOML file.
//
// Configuration is optional: every field has a working default, and a
// missing config file is not an error. The file lives at
// $XDG_CONFIG_HOME/frameloom/config.toml (falling back to
// ~/.config/frameloom/config.toml) unless an explicit path is given.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full application configuration.
type Config struct {
	Server   Server   `toml:"server"`
	Snapshot Snapshot `toml:"snapshot"`
	Preview  Preview  `toml:"preview"`
}

// Server configures the HTTP API.
type Server struct {
	// Addr is the listen address for the serve command.
	Addr string `toml:"addr"`
}

// Snapshot configures the snapshot storage backend.
type Snapshot struct {
	// Backend selects the store: "file", "memory", "redis", or "mongo".
	Backend string `toml:"backend"`
	// Dir is the snapshot directory for the file backend.
	Dir string `toml:"dir"`
	// RedisAddr is the host:port for the redis backend.
	RedisAddr string `toml:"redis_addr"`
	// MongoURI is the connection URI for the mongo backend.
	MongoURI string `toml:"mongo_uri"`
	// MongoDatabase is the database name for the mongo backend.
	MongoDatabase string `toml:"mongo_database"`
}

// Preview configures the terminal preview.
type Preview struct {
	// Frame is the viewport frame shown initially; empty means the frame
	// of the primary breakpoint.
	Frame string `toml:"frame"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Server:   Server{Addr: ":8088"},
		Snapshot: Snapshot{Backend: "file", Dir: defaultSnapshotDir(), MongoDatabase: "frameloom"},
	}
}

// Load reads configuration from path. An empty path means the default
// location; a missing file at the default location yields Default().
func Load(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(configHome(), "frameloom", "config.toml")
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config")
}

func defaultSnapshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".frameloom-snapshots"
	}
	return filepath.Join(home, ".frameloom", "snapshots")
}
