// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config is the project configuration for a pack run, normally loaded from
// shellpack.yaml at the project root.
type Config struct {
	// Output is the output root that receives all artifacts of one run.
	Output string `mapstructure:"output" yaml:"output"`

	// Client configures the web client bundle.
	Client ClientConfig `mapstructure:"client" yaml:"client"`

	// Server configures the server runtime bundle.
	Server ScriptConfig `mapstructure:"server" yaml:"server"`

	// Main configures the desktop main-process bundle.
	Main ScriptConfig `mapstructure:"main" yaml:"main"`

	// Externals are dependencies excluded from the script bundles and
	// resolved by the host runtime instead.
	Externals []string `mapstructure:"externals" yaml:"externals"`

	// Icon is the application icon copied into the output root. Its absence
	// at pack time is tolerated.
	Icon string `mapstructure:"icon" yaml:"icon"`

	// Tools names the external bundler commands.
	Tools ToolsConfig `mapstructure:"tools" yaml:"tools"`
}

// ClientConfig configures the client bundling step.
type ClientConfig struct {
	// Root is the client project root (where the bundler finds its own
	// config and index.html).
	Root string `mapstructure:"root" yaml:"root"`
}

// ScriptConfig configures a single-file script bundle.
type ScriptConfig struct {
	// Entry is the entry-point source file.
	Entry string `mapstructure:"entry" yaml:"entry"`
}

// ToolsConfig names the external bundler commands to invoke.
type ToolsConfig struct {
	// Client is the web-bundler command (default "vite").
	Client string `mapstructure:"client" yaml:"client"`

	// Script is the script-bundler command (default "esbuild").
	Script string `mapstructure:"script" yaml:"script"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Output: "dist",
		Client: ClientConfig{Root: "."},
		Server: ScriptConfig{Entry: "src/server/index.ts"},
		Main:   ScriptConfig{Entry: "src/main/index.ts"},
		Externals: []string{
			"better-sqlite3",
			"electron",
		},
		Icon: "resources/icon.png",
		Tools: ToolsConfig{
			Client: "vite",
			Script: "esbuild",
		},
	}
}

// WithDefaults fills unset fields from DefaultConfig and returns the config.
func (c *Config) WithDefaults() *Config {
	def := DefaultConfig()

	if c.Output == "" {
		c.Output = def.Output
	}
	if c.Client.Root == "" {
		c.Client.Root = def.Client.Root
	}
	if c.Server.Entry == "" {
		c.Server.Entry = def.Server.Entry
	}
	if c.Main.Entry == "" {
		c.Main.Entry = def.Main.Entry
	}
	if c.Externals == nil {
		c.Externals = def.Externals
	}
	if c.Icon == "" {
		c.Icon = def.Icon
	}
	if c.Tools.Client == "" {
		c.Tools.Client = def.Tools.Client
	}
	if c.Tools.Script == "" {
		c.Tools.Script = def.Tools.Script
	}

	return c
}

// Validate checks the configuration for values a pack run cannot proceed
// without.
func (c *Config) Validate() error {
	if c.Output == "" {
		return errors.New("output directory must not be empty")
	}
	if c.Server.Entry == "" {
		return errors.New("server entry point must not be empty")
	}
	if c.Main.Entry == "" {
		return errors.New("main entry point must not be empty")
	}
	if c.Tools.Client == "" || c.Tools.Script == "" {
		return fmt.Errorf("bundler tools must be configured (client=%q, script=%q)",
			c.Tools.Client, c.Tools.Script)
	}
	return nil
}
