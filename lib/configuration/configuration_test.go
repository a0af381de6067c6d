package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
}

func TestReadWithLocalOverride(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "ilias.json5")

	err := os.WriteFile(base, []byte(`{base_url: "https://portal.example", username: "alice"}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "ilias.local.json5"), []byte(`{username: "bob"}`), 0600)
	require.NoError(t, err)

	config, err := Read[testConfig](base)
	require.NoError(t, err)
	require.Equal(t, "https://portal.example", config.BaseUrl)
	require.Equal(t, "bob", config.Username)
}

func TestReadMissing(t *testing.T) {
	_, err := Read[testConfig](filepath.Join(t.TempDir(), "ilias.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
