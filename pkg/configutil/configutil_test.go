package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl     string `json:"base_url"`
	Concurrency int    `json:"concurrency"`
	Output      string `json:"output"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
		// comments are allowed
		base_url: "https://example.edu/reg/",
		concurrency: 2,
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{concurrency: 8}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://example.edu/reg/", cfg.BaseUrl)
	require.Equal(t, 8, cfg.Concurrency)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.True(t, os.IsNotExist(err))
}

func TestReadConfigOr(t *testing.T) {
	defaults := testConfig{BaseUrl: "https://default.edu/", Concurrency: 4, Output: "courses.json"}

	cfg, err := ReadConfigOr(filepath.Join(t.TempDir(), "config.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{output: "out.json"}`)
	cfg, err = ReadConfigOr(filepath.Join(dir, "config.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, "out.json", cfg.Output)
	require.Equal(t, 4, cfg.Concurrency)
	require.Equal(t, "https://default.edu/", cfg.BaseUrl)
}
