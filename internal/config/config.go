// Package config loads the polybook command configuration from YAML.
package config

import (
	"os"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Castling notation for printed book moves.
const (
	CastlingPolyglot = "polyglot" // king takes rook: e1h1
	CastlingUCI      = "uci"      // king moves two squares: e1g1
)

// Position is a named position to probe.
type Position struct {
	Name string `yaml:"name"`
	FEN  string `yaml:"fen"`
}

// Config holds everything the polybook command needs.
type Config struct {
	Book      string     `yaml:"book"`
	Workers   int        `yaml:"workers"`
	Castling  string     `yaml:"castling"`
	Positions []Position `yaml:"positions"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Book:     "book.bin",
		Workers:  runtime.NumCPU(),
		Castling: CastlingUCI,
	}
}

// Load reads a YAML file on top of the defaults.
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", filename)
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", filename)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config: %s", filename)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Book == "" {
		return errors.New("book path is empty")
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	c.Castling = strings.ToLower(c.Castling)
	if c.Castling != CastlingPolyglot && c.Castling != CastlingUCI {
		return errors.Errorf("castling must be %q or %q, got %q", CastlingPolyglot, CastlingUCI, c.Castling)
	}
	for i, p := range c.Positions {
		if strings.TrimSpace(p.FEN) == "" {
			return errors.Errorf("position %d (%s) has no fen", i, p.Name)
		}
	}
	return nil
}
