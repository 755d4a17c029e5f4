package generative

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/reglet-dev/apmlc/internal/application/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	reply := filepath.Join(t.TempDir(), "reply.html")
	require.NoError(t, os.WriteFile(reply, []byte("<template><p>hi</p></template>"), 0o600))

	t.Run("none", func(t *testing.T) {
		backend, err := New(context.Background(), Config{Provider: ProviderNone}, nil)
		require.NoError(t, err)
		assert.Nil(t, backend)
	})

	t.Run("static", func(t *testing.T) {
		backend, err := New(context.Background(), Config{Provider: ProviderStatic, StaticFile: reply}, nil)
		require.NoError(t, err)
		out, err := backend.Generate(context.Background(), ports.GenerationRequest{Prompt: "ignored"})
		require.NoError(t, err)
		assert.Equal(t, "<template><p>hi</p></template>", out)
	})

	t.Run("static without file", func(t *testing.T) {
		_, err := New(context.Background(), Config{Provider: ProviderStatic, StaticFile: filepath.Join(t.TempDir(), "missing")}, nil)
		assert.Error(t, err)
	})

	t.Run("anthropic key from env", func(t *testing.T) {
		t.Setenv("APMLC_TEST_KEY", "k")
		backend, err := New(context.Background(), Config{Provider: ProviderAnthropic, APIKeyEnv: "APMLC_TEST_KEY", Model: "m"}, nil)
		require.NoError(t, err)
		named, ok := backend.(interface{ Name() string })
		require.True(t, ok)
		assert.Equal(t, "anthropic (m)", named.Name())
	})

	t.Run("anthropic without key", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")
		_, err := New(context.Background(), Config{Provider: ProviderAnthropic}, nil)
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New(context.Background(), Config{Provider: "openai"}, nil)
		assert.ErrorContains(t, err, "unknown generative provider")
	})
}

func TestStaticBackend_CancelledContext(t *testing.T) {
	reply := filepath.Join(t.TempDir(), "reply.html")
	require.NoError(t, os.WriteFile(reply, []byte("x"), 0o600))
	backend, err := NewStaticBackend(reply)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = backend.Generate(ctx, ports.GenerationRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}
