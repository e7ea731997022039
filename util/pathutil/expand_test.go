package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(pairs map[string]string) func(string) string {
	return func(key string) string { return pairs[key] }
}

func TestExpand(t *testing.T) {
	env := envOf(map[string]string{
		"HOME":            "/home/alice",
		"XDG_CONFIG_HOME": "/home/alice/.cfg",
	})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde", "~/familiar.toml", "/home/alice/familiar.toml"},
		{"bare tilde", "~", "/home/alice"},
		{"braced variable", "${XDG_CONFIG_HOME}/familiar/familiar.toml", "/home/alice/.cfg/familiar/familiar.toml"},
		{"plain variable", "$HOME/x.toml", "/home/alice/x.toml"},
		{"default value", "${MISSING:-/etc}/familiar.toml", "/etc/familiar.toml"},
		{"absolute untouched", "/etc/familiar.toml", "/etc/familiar.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.in, env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandRelativeBecomesAbsolute(t *testing.T) {
	got, err := Expand("familiar.toml", envOf(nil))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestExpandTildeWithoutHome(t *testing.T) {
	_, err := Expand("~/x", envOf(nil))
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/home/alice/src/**", ExpandHome("~/src/**", "/home/alice"))
	assert.Equal(t, "/opt/*", ExpandHome("/opt/*", "/home/alice"))
	assert.Equal(t, "~/x", ExpandHome("~/x", ""))
}
