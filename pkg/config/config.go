// Package config loads bracketmaker settings.
//
// Generation settings live in an optional TOML file:
//
//	date = "2024-06-01T18:00:00+0200"
//	lenient = false
//
//	[layout]
//	block_offset_x = 256
//	block_offset_y = 96
//	winners_offset_y = 64
//
//	[roster]
//	id = 5
//	name = 6
//	team = 8
//	acronym = -1
//
// Server settings come from the environment, see [ServerConfig].
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bracketmaker/pkg/bracket"
	"github.com/matzehuels/bracketmaker/pkg/roster"
)

// ErrUnknownKey is returned when a config file sets a key bracketmaker does
// not know about.
var ErrUnknownKey = errors.New("unknown config key")

// Config holds the file-backed settings. Fields left out of the file keep
// the values from [Default].
type Config struct {
	Date    string               `toml:"date"`
	Lenient bool                 `toml:"lenient"`
	Layout  bracket.LayoutConfig `toml:"layout"`
	Roster  roster.Columns       `toml:"roster"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Date:   bracket.DefaultDate,
		Layout: bracket.DefaultLayoutConfig(),
		Roster: roster.DefaultColumns(),
	}
}

// Load reads the TOML file at path on top of [Default]. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(string(data), cfg)
}

// Parse decodes TOML text on top of base.
func Parse(text string, base Config) (Config, error) {
	cfg := base
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return base, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	cfg.Layout = cfg.Layout.WithDefaults()
	if cfg.Date == "" {
		cfg.Date = bracket.DefaultDate
	}
	return cfg, nil
}

// Validate checks the settings that cannot be defaulted.
func (c Config) Validate() error {
	return c.Roster.Validate()
}

// BracketOptions returns generator options for the file settings.
func (c Config) BracketOptions() bracket.Options {
	return bracket.Options{
		Lenient: c.Lenient,
		Layout:  c.Layout,
		Date:    c.Date,
	}
}
