package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "legis.json5"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, defaultConfig, cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legis.json5")

	err := os.WriteFile(path, []byte(`{
		// a local mirror
		document_host: "http://localhost:8080",
		retry_count: 5,
		database: { file: ":memory:" },
	}`), 0600)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(filepath.Join(dir, "legis.local.json5"), []byte(`{ timeout_seconds: 5 }`), 0600)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "http://localhost:8080", cfg.DocumentHost)
	require.Equal(t, 5, cfg.RetryCount)
	require.Equal(t, 5, cfg.TimeoutSeconds)
	require.Equal(t, ":memory:", cfg.Database.File)
	require.Equal(t, defaultConfig.SessionLocator, cfg.SessionLocator)

	opts := cfg.clientOptions()
	require.Equal(t, 5*time.Second, opts.Timeout)
	require.Equal(t, 10*time.Minute, opts.CacheTTL)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legis.json5")
	err := os.WriteFile(path, []byte(`{ retry_count: `), 0600)
	if err != nil {
		t.Fatal(err)
	}
	_, err = loadConfig(path)
	require.Error(t, err)
}
