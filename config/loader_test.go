package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
listen:
  bind: 127.0.0.1
  port: 9090
  readTimeout: 10s
log:
  level: debug
  format: console
routes:
  - name: home
    methods: [GET]
    patterns: ["/home"]
    handler: home
  - name: health
    patterns: ["/healthz"]
    response:
      status: 200
      body: ok
`

func TestLoadFromReader(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromReader(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Listen.Address())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	require.Len(t, cfg.Routes, 2)
	assert.Equal(t, "home", cfg.Routes[0].Name)
	assert.Equal(t, []string{"GET"}, cfg.Routes[0].Methods)
	require.NotNil(t, cfg.Routes[1].Response)
	assert.Equal(t, 200, cfg.Routes[1].Response.Status)
}

func TestLoadFromReader_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromReader(strings.NewReader("routes: []"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Listen.Address())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromReader_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := LoadFromReader(strings.NewReader("routes: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Listen.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("AVMUX_TEST_PORT", "7070")

	cfg, err := LoadFromReader(strings.NewReader(`
listen:
  port: ${AVMUX_TEST_PORT}
routes: []
`))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Listen.Port)
}

func TestSubstituteEnvVars_Default(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromReader(strings.NewReader(`
listen:
  bind: ${AVMUX_TEST_UNSET_BIND:-10.0.0.1}
  port: 8080
routes: []
`))
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", cfg.Listen.Bind)
}

func TestSubstituteEnvVars_EscapedDollar(t *testing.T) {
	t.Parallel()

	result := substituteEnvVars("value: $${NOT_A_VAR}")
	assert.Equal(t, "value: ${NOT_A_VAR}", result)
}
