// Package config loads the optional dotnetup.toml configuration file and
// defines the Logger interface the acquisition engine logs through.
//
// Configuration covers registry coordinates and user-supplied binary
// overrides only. There is deliberately no configurable install root: the
// engine resolves everything against its working directory.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Default registry coordinates.
const (
	DefaultDebuggerRepo  = "qwadrox/netcoredbg"
	DefaultServerPackage = "Microsoft.CodeAnalysis.LanguageServer"
	DefaultFeedURL       = "https://api.nuget.org/v3/index.json"
)

// Config is the on-disk configuration.
type Config struct {
	Debugger       DebuggerConfig `toml:"debugger"`
	LanguageServer ServerConfig   `toml:"language_server"`
}

// DebuggerConfig configures the netcoredbg acquisition path.
type DebuggerConfig struct {
	// Path is a user-supplied debugger binary. When set it is returned
	// as-is, skipping every acquisition step.
	Path string `toml:"path"`
	// Repo is the owner/repo coordinate of the release registry.
	Repo string `toml:"repo"`
}

// ServerConfig configures the language-server acquisition path.
type ServerConfig struct {
	// Path is a user-supplied server binary, trusted without validation.
	Path string `toml:"path"`
	// Package is the NuGet package id of the server payload.
	Package string `toml:"package"`
	// FeedURL is the NuGet v3 service index.
	FeedURL string `toml:"feed_url"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Debugger:       DebuggerConfig{Repo: DefaultDebuggerRepo},
		LanguageServer: ServerConfig{Package: DefaultServerPackage, FeedURL: DefaultFeedURL},
	}
}

// Load reads a TOML config file, filling unset fields from Default. A
// missing file is not an error: defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults restores defaults for fields the file left empty, so a
// config that only sets an override path keeps working registry coordinates.
func (c *Config) applyDefaults() {
	if c.Debugger.Repo == "" {
		c.Debugger.Repo = DefaultDebuggerRepo
	}
	if c.LanguageServer.Package == "" {
		c.LanguageServer.Package = DefaultServerPackage
	}
	if c.LanguageServer.FeedURL == "" {
		c.LanguageServer.FeedURL = DefaultFeedURL
	}
}
