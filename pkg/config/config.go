// Package config loads boardcreator settings from a TOML file.
//
// Settings override the built-in defaults; keys missing from the file keep
// their default value. A missing file is not an error.
//
//	# ~/.config/boardcreator/config.toml
//	file_name = "Level1"
//	color     = "#00ff00"
//
//	[board]
//	width     = 40
//	height    = 25
//	tile_size = 16
//
//	[storage]
//	backend = "redis"
//
//	[storage.redis]
//	addr = "localhost:6379"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/boardcreator/pkg/errors"
)

// AppName is used for configuration and data directories.
const AppName = "boardcreator"

// Storage backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists every supported storage backend.
var Backends = []string{BackendFile, BackendMemory, BackendRedis, BackendMongo}

// Config is the complete configuration.
type Config struct {
	Board    Board   `toml:"board"`
	FileName string  `toml:"file_name"`
	Color    string  `toml:"color"`
	Storage  Storage `toml:"storage"`
	Server   Server  `toml:"server"`
}

// Board holds the default board dimensions for new projects.
type Board struct {
	Width    int `toml:"width"`
	Height   int `toml:"height"`
	TileSize int `toml:"tile_size"`
}

// Storage selects and configures the persistence backend.
type Storage struct {
	Backend string `toml:"backend"`

	// Dir is the file backend directory. Empty means DataDir()/store.
	Dir string `toml:"dir"`

	// Prefix scopes every key, letting several projects share a backend.
	Prefix string `toml:"prefix"`

	Redis Redis `toml:"redis"`
	Mongo Mongo `toml:"mongo"`
}

// Redis configures the redis backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Mongo configures the mongo backend.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board:    Board{Width: 30, Height: 20, TileSize: 24},
		FileName: "Level0",
		Color:    "#ffff00",
		Storage: Storage{
			Backend: BackendFile,
			Redis:   Redis{Addr: "localhost:6379"},
			Mongo:   Mongo{URI: "mongodb://localhost:27017", Database: "boardcreator", Collection: "kv"},
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads the configuration at path on top of Default. An empty path means
// DefaultPath(). A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if err := errors.ValidateBoard(c.Board.Width, c.Board.Height, c.Board.TileSize); err != nil {
		return err
	}
	if err := errors.ValidateFileName(c.FileName); err != nil {
		return err
	}
	if !slices.Contains(Backends, c.Storage.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown storage backend %q (must be one of %s)",
			c.Storage.Backend, strings.Join(Backends, ", "))
	}
	return nil
}

// StoreDir returns the file backend directory.
func (c Config) StoreDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "store"), nil
}

// Encode writes c as TOML.
func (c Config) Encode() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return b.String(), nil
}
