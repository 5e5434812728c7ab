package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TASKFLOW_SERVER_URL", "TASKFLOW_TOKEN_FILE", "TASKFLOW_REQUEST_TIMEOUT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	orig := userConfigDir
	userConfigDir = func() (string, error) { return "/home/test/.config", nil }
	t.Cleanup(func() { userConfigDir = orig })
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	c := &Config{}
	c.LoadDefaults()

	want := &Config{
		ServerURL:      "http://localhost:8080/api",
		TokenFile:      filepath.Join("/home/test/.config", "taskflow", "token"),
		RequestTimeout: 10 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "cli.json")
	raw, err := json.Marshal(map[string]any{
		"server_url":      "http://json:1/api",
		"token_file":      "/tmp/json-token",
		"request_timeout": "3s",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	t.Setenv("TASKFLOW_TOKEN_FILE", "/tmp/env-token")
	t.Setenv("TASKFLOW_REQUEST_TIMEOUT", "4s")

	cfg, rest, err := Load([]string{"-c", path, "-timeout", "5s", "add", "Buy milk"})
	require.NoError(t, err)

	want := &Config{
		ServerURL:      "http://json:1/api",
		TokenFile:      "/tmp/env-token",
		RequestTimeout: 5 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, cfg))
	assert.Equal(t, []string{"add", "Buy milk"}, rest)
}

func TestLoad_FlagsOnly(t *testing.T) {
	isolate(t)

	cfg, rest, err := Load([]string{"-a", "https://tasks.example.com/api", "-t", "/tmp/tok", "list"})
	require.NoError(t, err)
	assert.Equal(t, "https://tasks.example.com/api", cfg.ServerURL)
	assert.Equal(t, "/tmp/tok", cfg.TokenFile)
	assert.Equal(t, []string{"list"}, rest)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	_, _, err := Load([]string{"-timeout", "soon"})
	assert.ErrorContains(t, err, "parse flags")

	_, _, err = Load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	assert.ErrorContains(t, err, "read config file")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, _, err = Load([]string{"-c", bad})
	assert.ErrorContains(t, err, "parse config file")

	t.Setenv("TASKFLOW_REQUEST_TIMEOUT", "forever")
	_, _, err = Load(nil)
	assert.ErrorContains(t, err, "parse env")
}
