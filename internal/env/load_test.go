package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("POIMAP_TEST_INPUT=lokasi.csv\nLOG_LEVEL_TEST=debug\n"), 0o600))
	t.Setenv("LOG_LEVEL_TEST", "warn")
	t.Cleanup(func() { _ = os.Unsetenv("POIMAP_TEST_INPUT") })

	require.NoError(t, Load(path))
	assert.Equal(t, "lokasi.csv", os.Getenv("POIMAP_TEST_INPUT"))
	assert.Equal(t, "warn", os.Getenv("LOG_LEVEL_TEST"), "existing variables win")
}

func TestLoadMissing(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "missing.env")))
}
