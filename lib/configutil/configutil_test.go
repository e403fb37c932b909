package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Host    string `json:"host"`
	Retries int    `json:"retries"`
	Verbose bool   `json:"verbose"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legis.json5")

	writeFile(t, path, `{
		// comments and trailing commas are fine in json5
		host: "http://example.com",
		retries: 3,
	}`)
	writeFile(t, filepath.Join(dir, "legis.local.json5"), `{ retries: 5 }`)

	cfg, err := ReadConfigWithDefaults(path, testConfig{Host: "http://default", Retries: 1, Verbose: true})
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, testConfig{
		Host:    "http://example.com",
		Retries: 5,
		Verbose: true,
	}, cfg)
}

func TestReadConfigMissing(t *testing.T) {
	defaults := testConfig{Host: "http://default"}
	cfg, err := ReadConfigWithDefaults(filepath.Join(t.TempDir(), "none.json5"), defaults)
	require.True(t, os.IsNotExist(err))
	require.Equal(t, defaults, cfg)
}

func TestReadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json5")
	writeFile(t, path, `{ host: `)
	_, err := ReadConfig[testConfig](path)
	require.Error(t, err)
	require.False(t, os.IsNotExist(err))
}

func TestLocalName(t *testing.T) {
	require.Equal(t, filepath.Join("a", "legis.local.json5"), localName(filepath.Join("a", "legis.json5")))
	require.Equal(t, "config.local", localName("config"))
}
