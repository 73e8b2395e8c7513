// Package config loads the base85 command's TOML configuration.
//
// Values from the file fill in defaults for flags the user did not set; the
// codec packages themselves take no configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/thehowl/base85"
	"github.com/thehowl/base85/parallel"
)

// Config holds the settings of the base85 command.
type Config struct {
	Alphabet   string `toml:"alphabet"`
	Workers    int    `toml:"workers"`     // 0: one per CPU
	ChunkWords int    `toml:"chunk_words"` // 0: parallel.DefaultChunkWords
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Alphabet:   "arnold",
		Workers:    0,
		ChunkWords: parallel.DefaultChunkWords,
		LogLevel:   "info",
		LogFormat:  "console",
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/base85/config.toml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultConfigPath() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "base85", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "base85", "config.toml"), nil
}

// Load reads the configuration at path on top of Default. An empty path
// selects DefaultConfigPath, which may be absent; an explicit path must exist.
// The returned string is the path that was read, or empty if none was.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, "", err
		}
		path = p
	}

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		path = ""
	default:
		return nil, "", fmt.Errorf("open config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, path, nil
}

func (c *Config) normalize() {
	c.Alphabet = strings.ToLower(strings.TrimSpace(c.Alphabet))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.Alphabet == "" {
		c.Alphabet = Default().Alphabet
	}
	if c.LogLevel == "" {
		c.LogLevel = Default().LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = Default().LogFormat
	}
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if _, ok := base85.Lookup(c.Alphabet); !ok {
		return fmt.Errorf("alphabet: unknown value %q (want one of %s)", c.Alphabet, strings.Join(base85.Names(), ", "))
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if c.ChunkWords < 0 {
		return errors.New("chunk_words must not be negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unsupported value %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format: unsupported value %q", c.LogFormat)
	}
	return nil
}

// Encoding returns the encoding named by Alphabet. It must only be called on
// a validated Config.
func (c *Config) Encoding() *base85.Encoding {
	enc, _ := base85.Lookup(c.Alphabet)
	return enc
}

// ParallelOptions returns the worker settings for package parallel.
func (c *Config) ParallelOptions() parallel.Options {
	return parallel.Options{Workers: c.Workers, ChunkWords: c.ChunkWords}
}
