package generative

import (
	"context"
	"fmt"
	"os"

	"github.com/reglet-dev/apmlc/internal/application/ports"
)

var _ ports.GenerativeFallback = (*StaticBackend)(nil)

// StaticBackend answers every request with the contents of a file.
// It makes offline and reproducible compilations possible.
type StaticBackend struct {
	path string
}

// NewStaticBackend creates a backend replying with the file at path.
func NewStaticBackend(path string) (*StaticBackend, error) {
	if path == "" {
		return nil, fmt.Errorf("static backend requires a reply file")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("static reply file: %w", err)
	}
	return &StaticBackend{path: path}, nil
}

// Name identifies the backend in consent prompts.
func (s *StaticBackend) Name() string {
	return "static file " + s.path
}

// Generate returns the file contents; the request is ignored.
func (s *StaticBackend) Generate(ctx context.Context, _ ports.GenerationRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	//nolint:gosec // G304: path is the user-configured reply file
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to read static reply: %w", err)
	}
	return string(data), nil
}
