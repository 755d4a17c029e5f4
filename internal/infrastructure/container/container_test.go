package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/reglet-dev/apmlc/internal/application/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginDoc = `name: Login Demo

## UI Components

login_form: {
  type: "form_input",
  action: "submitLogin",
  bind: user_name
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew_Defaults(t *testing.T) {
	dir := t.TempDir()
	c, err := New(context.Background(), Options{SystemConfigPath: filepath.Join(dir, "missing.yaml")})
	require.NoError(t, err)

	assert.False(t, c.FallbackEnabled())
	assert.Equal(t, 4, c.Parallelism())
	assert.Equal(t, "none", c.SystemConfig().Fallback.Provider)
	assert.NotEmpty(t, c.Registry().IDs())
	assert.NotNil(t, c.Formatters())

	resp, err := c.CompileUseCase().Execute(context.Background(), dto.CompileRequest{
		Text:    loginDoc,
		Options: dto.CompileOptions{SessionID: "s1"},
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Artifact.Markup, "submitLogin")

	cached, ok, err := c.Cache().Get(context.Background(), "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, resp.Artifact.Markup, cached.Markup)
	assert.Equal(t, int64(1), c.Metrics().Snapshot().Total)
}

func TestNew_StaticProvider(t *testing.T) {
	dir := t.TempDir()
	static := writeFile(t, dir, "reply.txt", "```html\n<div class=\"x\"></div>\n```")
	cfg := writeFile(t, dir, "config.yaml", "fallback:\n  provider: static\n  static_file: "+static+"\n  require_consent: false\n")

	c, err := New(context.Background(), Options{SystemConfigPath: cfg})
	require.NoError(t, err)
	assert.True(t, c.FallbackEnabled())
}

func TestNew_ProviderOverride(t *testing.T) {
	dir := t.TempDir()
	_, err := New(context.Background(), Options{
		SystemConfigPath: filepath.Join(dir, "missing.yaml"),
		Provider:         "carrier-pigeon",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown generative provider")
}

func TestNew_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", "batch:\n  parallelism: 0\n")

	_, err := New(context.Background(), Options{SystemConfigPath: cfg})
	require.Error(t, err)
}
