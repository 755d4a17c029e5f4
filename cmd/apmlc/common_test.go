package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommonOptions_ApplyToContext(t *testing.T) {
	t.Parallel()

	t.Run("with timeout", func(t *testing.T) {
		t.Parallel()
		opts := CommonOptions{Timeout: 100 * time.Millisecond}
		ctx, cancel := opts.ApplyToContext(context.Background())
		defer cancel()

		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(100*time.Millisecond), deadline, 10*time.Millisecond)
	})

	t.Run("no timeout", func(t *testing.T) {
		t.Parallel()
		opts := CommonOptions{Timeout: 0}
		ctx, cancel := opts.ApplyToContext(context.Background())
		defer cancel()

		_, ok := ctx.Deadline()
		assert.False(t, ok)
	})
}

func TestCommonOptions_ValidateFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    CommonOptions
		wantErr bool
		errMsg  string
	}{
		{name: "valid format", opts: CommonOptions{Format: "html"}},
		{name: "format not supported by command", opts: CommonOptions{Format: "junit"}, wantErr: true, errMsg: "invalid format: junit"},
		{name: "negative timeout", opts: CommonOptions{Format: "json", Timeout: -time.Second}, wantErr: true, errMsg: "--timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.opts.ValidateFlags(compileFormats)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCommonOptions_OpenOutput(t *testing.T) {
	t.Parallel()

	t.Run("stdout", func(t *testing.T) {
		t.Parallel()
		opts := CommonOptions{}
		w, closeFn, err := opts.OpenOutput()
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, w)
		assert.NoError(t, closeFn())
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "page.html")
		opts := CommonOptions{Output: path}
		w, closeFn, err := opts.OpenOutput()
		require.NoError(t, err)
		_, err = w.Write([]byte("<p>hi</p>"))
		require.NoError(t, err)
		require.NoError(t, closeFn())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", string(data))
	})
}

func TestReadDocument(t *testing.T) {
	t.Parallel()

	text, err := readDocument("-", strings.NewReader("name: Demo"))
	require.NoError(t, err)
	assert.Equal(t, "name: Demo", text)

	_, err = readDocument(filepath.Join(t.TempDir(), "missing.apml"), nil)
	require.Error(t, err)
}

func TestOutputName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source, format, want string
	}{
		{"pages/login.apml", "html", "login.html"},
		{"dashboard", "json", "dashboard.json"},
		{"-", "html", "stdin.html"},
		{"report.apml", "table", "report.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, outputName(tt.source, tt.format), tt.source)
	}
}
