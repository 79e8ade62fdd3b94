package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath_Tilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/projects/app")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "projects", "app"), got)

	got, err = ExpandPath("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)
}

func TestExpandPath_PassThrough(t *testing.T) {
	for _, path := range []string{"/abs/path", "relative/path", "", "~notahome/x"} {
		got, err := ExpandPath(path)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	}
}

func TestGetConfigFile(t *testing.T) {
	t.Setenv("SHELLPACK_CONFIG", "")
	assert.Equal(t, DefaultConfigFile, GetConfigFile())

	t.Setenv("SHELLPACK_CONFIG", "/etc/shellpack.yaml")
	assert.Equal(t, "/etc/shellpack.yaml", GetConfigFile())
}
