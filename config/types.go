package config

import (
	"github.com/grovetools/familiar/logging"
)

// Config is the familiar configuration file.
type Config struct {
	Options Options        `toml:"options" yaml:"options" jsonschema:"required,description=Display options"`
	Git     GitConfig      `toml:"git" yaml:"git" jsonschema:"description=Repository inspection"`
	Style   StyleConfig    `toml:"style" yaml:"style" jsonschema:"description=Colors and shell integration"`
	Logging logging.Config `toml:"logging" yaml:"logging" jsonschema:"description=Diagnostic logging (never written to stdout)"`

	// RawPlugins holds the [[plugins]] tables as decoded. Plugins is the
	// typed view, filled by Load.
	RawPlugins []map[string]interface{} `toml:"plugins" yaml:"plugins" jsonschema:"description=Prompt plugins"`
	Plugins    []PluginConfig           `toml:"-" yaml:"-"`
}

// Options are the display options read by the prompt composer.
type Options struct {
	// PromptChar is printed after the line break, followed by one space.
	PromptChar string `toml:"prompt_char" yaml:"prompt_char" mapstructure:"prompt_char" jsonschema:"required,description=Character printed at the start of the input line"`
}

// GitConfig controls repository inspection.
type GitConfig struct {
	Disabled bool `toml:"disabled" yaml:"disabled" jsonschema:"description=Skip repository inspection everywhere"`
	// DisabledPaths are .dockerignore-style patterns; "~" expands to $HOME.
	DisabledPaths []string `toml:"disabled_paths" yaml:"disabled_paths" jsonschema:"description=Directories (and their children) where inspection is skipped"`
}

// StyleConfig controls terminal styling.
type StyleConfig struct {
	Color   string `toml:"color" yaml:"color" jsonschema:"description=auto | always | never"`
	Shell   string `toml:"shell" yaml:"shell" jsonschema:"description=bash | zsh | none"`
	Palette string `toml:"palette" yaml:"palette" jsonschema:"description=terminal | kanagawa | gruvbox | kanagawa-wave | gruvbox-light"`
}

// PluginConfig is one [[plugins]] entry. Keys other than name are kept in
// Settings. Entries are decoded and shape-checked so existing config files
// keep loading, but the prompt layout is fixed and nothing reads them.
type PluginConfig struct {
	Name     string                 `mapstructure:"name"`
	Settings map[string]interface{} `mapstructure:",remain"`
}

const (
	DefaultColor   = "auto"
	DefaultShell   = "none"
	DefaultPalette = "terminal"
)

// SetDefaults fills unset style values.
func (c *Config) SetDefaults() {
	if c.Style.Color == "" {
		c.Style.Color = DefaultColor
	}
	if c.Style.Shell == "" {
		c.Style.Shell = DefaultShell
	}
	if c.Style.Palette == "" {
		c.Style.Palette = DefaultPalette
	}
}
