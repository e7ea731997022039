package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/familiar/errors"
)

const fullTOML = `
[options]
prompt_char = "$"

[git]
disabled = false
disabled_paths = ["~/src/huge-monorepo"]

[style]
color = "never"
shell = "zsh"

[logging]
level = "debug"

[logging.file]
enabled = true
path = "~/.local/state/familiar/familiar.log"

[[plugins]]
name = "cwd"

[[plugins]]
name = "git"
max_files = 500
`

func TestLoadFromBytesTOML(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(fullTOML), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "$", cfg.Options.PromptChar)
	assert.False(t, cfg.Git.Disabled)
	assert.Equal(t, []string{"~/src/huge-monorepo"}, cfg.Git.DisabledPaths)
	assert.Equal(t, "never", cfg.Style.Color)
	assert.Equal(t, "zsh", cfg.Style.Shell)
	assert.Equal(t, DefaultPalette, cfg.Style.Palette)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.File.Enabled)
	assert.Equal(t, "~/.local/state/familiar/familiar.log", cfg.Logging.File.Path)

	require.Len(t, cfg.Plugins, 2)
	assert.Equal(t, "cwd", cfg.Plugins[0].Name)
	assert.Empty(t, cfg.Plugins[0].Settings)
	assert.Equal(t, "git", cfg.Plugins[1].Name)
	assert.EqualValues(t, 500, cfg.Plugins[1].Settings["max_files"])
}

func TestLoadFromBytesYAML(t *testing.T) {
	doc := `
options:
  prompt_char: "λ"
style:
  palette: gruvbox
plugins:
  - name: cwd
`
	cfg, err := LoadFromBytes([]byte(doc), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "λ", cfg.Options.PromptChar)
	assert.Equal(t, "gruvbox", cfg.Style.Palette)
	assert.Equal(t, DefaultColor, cfg.Style.Color)
	assert.Equal(t, DefaultShell, cfg.Style.Shell)
	require.Len(t, cfg.Plugins, 1)
	assert.Equal(t, "cwd", cfg.Plugins[0].Name)
}

func TestLoadFromBytesMinimal(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("[options]\nprompt_char = \">\"\n"), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, ">", cfg.Options.PromptChar)
	assert.Empty(t, cfg.Plugins)
	assert.Equal(t, DefaultColor, cfg.Style.Color)
}

func TestLoadFromBytesErrors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		format Format
		code   errors.ErrorCode
	}{
		{"unparsable toml", "[options\nprompt_char = 1", FormatTOML, errors.ErrCodeConfigInvalid},
		{"unparsable yaml", "options: [unclosed", FormatYAML, errors.ErrCodeConfigInvalid},
		{"empty document", "", FormatTOML, errors.ErrCodeConfigValidation},
		{"empty yaml document", "", FormatYAML, errors.ErrCodeConfigValidation},
		{"missing prompt_char", "[options]\n", FormatTOML, errors.ErrCodeConfigValidation},
		{"prompt_char of the wrong type", "[options]\nprompt_char = 7\n", FormatTOML, errors.ErrCodeConfigValidation},
		{"disabled_paths not a list", "[options]\nprompt_char = \"$\"\n[git]\ndisabled_paths = \"x\"\n", FormatTOML, errors.ErrCodeConfigValidation},
		{"plugin without a name", "[options]\nprompt_char = \"$\"\n[[plugins]]\nmax = 1\n", FormatTOML, errors.ErrCodeConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.doc), tt.format)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), err.Error())
		})
	}
}

func TestLoadFromBytesIgnoresUnknownKeys(t *testing.T) {
	doc := "[options]\nprompt_char = \"$\"\nfuture = true\n[experimental]\nx = 1\n"
	cfg, err := LoadFromBytes([]byte(doc), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, "$", cfg.Options.PromptChar)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(dir, "missing.toml")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
	})

	t.Run("toml by extension", func(t *testing.T) {
		path := filepath.Join(dir, "familiar.toml")
		require.NoError(t, os.WriteFile(path, []byte(fullTOML), 0o644))
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "$", cfg.Options.PromptChar)
	})

	t.Run("yaml by extension", func(t *testing.T) {
		path := filepath.Join(dir, "familiar.yml")
		require.NoError(t, os.WriteFile(path, []byte("options:\n  prompt_char: '%'\n"), 0o644))
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "%", cfg.Options.PromptChar)
	})

	t.Run("invalid file carries its path", func(t *testing.T) {
		path := filepath.Join(dir, "broken.toml")
		require.NoError(t, os.WriteFile(path, []byte("[options]\n"), 0o644))
		_, err := Load(path)
		require.Error(t, err)
		e, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, path, e.Details["path"])
	})

	t.Run("directory is unreadable", func(t *testing.T) {
		_, err := Load(dir)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
	})
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatTOML, FormatFor("familiar.toml"))
	assert.Equal(t, FormatTOML, FormatFor("familiar"))
	assert.Equal(t, FormatYAML, FormatFor("familiar.yml"))
	assert.Equal(t, FormatYAML, FormatFor("FAMILIAR.YAML"))
}

func TestResolvePath(t *testing.T) {
	env := map[string]string{
		"HOME":            "/home/alice",
		"XDG_CONFIG_HOME": "/home/alice/.xdg",
		"PROJECT":         "demo",
	}
	getenv := func(k string) string { return env[k] }

	t.Run("flag wins", func(t *testing.T) {
		path, err := ResolvePath("~/cfg/$PROJECT.toml", getenv)
		require.NoError(t, err)
		assert.Equal(t, "/home/alice/cfg/demo.toml", path)
	})

	t.Run("environment variable", func(t *testing.T) {
		withEnv := func(k string) string {
			if k == EnvConfig {
				return "/etc/familiar.yml"
			}
			return getenv(k)
		}
		path, err := ResolvePath("", withEnv)
		require.NoError(t, err)
		assert.Equal(t, "/etc/familiar.yml", path)
	})

	t.Run("xdg default", func(t *testing.T) {
		path, err := ResolvePath("", getenv)
		require.NoError(t, err)
		assert.Equal(t, "/home/alice/.xdg/familiar/familiar.toml", path)
	})

	t.Run("no home", func(t *testing.T) {
		_, err := ResolvePath("", func(string) string { return "" })
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeEnvironment))
	})

	t.Run("tilde without home", func(t *testing.T) {
		_, err := ResolvePath("~/familiar.toml", func(string) string { return "" })
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeEnvironment))
	})
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)
	assert.Contains(t, string(data), "prompt_char")
	assert.Contains(t, string(data), "disabled_paths")
	assert.NotContains(t, string(data), "Verbose")
}
