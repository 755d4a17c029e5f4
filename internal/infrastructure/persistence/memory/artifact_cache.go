// Package memory provides in-memory implementations of application ports.
package memory

import (
	"context"
	"sync"

	"github.com/reglet-dev/apmlc/internal/application/ports"
	"github.com/reglet-dev/apmlc/internal/domain/entities"
)

// DefaultHistoryLimit bounds how many artifacts a session keeps.
const DefaultHistoryLimit = 20

// Ensure interface compliance
var _ ports.ArtifactCache = (*ArtifactCache)(nil)

// ArtifactCache keeps the compilation history of each session in memory.
// The latest Put wins for Get; History returns newest first.
type ArtifactCache struct {
	sessions map[string][]*entities.CompilationArtifact
	limit    int
	mu       sync.RWMutex
}

// NewArtifactCache creates a cache keeping at most limit artifacts per session.
// A non-positive limit uses DefaultHistoryLimit.
func NewArtifactCache(limit int) *ArtifactCache {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &ArtifactCache{
		sessions: make(map[string][]*entities.CompilationArtifact),
		limit:    limit,
	}
}

// Put records artifact as the session's latest. A copy is stored so callers may keep mutating theirs.
func (c *ArtifactCache) Put(_ context.Context, sessionID string, artifact *entities.CompilationArtifact) error {
	if artifact == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	history := append(c.sessions[sessionID], artifact.Clone())
	if len(history) > c.limit {
		history = history[len(history)-c.limit:]
	}
	c.sessions[sessionID] = history
	return nil
}

// Get returns the session's latest artifact.
func (c *ArtifactCache) Get(_ context.Context, sessionID string) (*entities.CompilationArtifact, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	history := c.sessions[sessionID]
	if len(history) == 0 {
		return nil, false, nil
	}
	return history[len(history)-1].Clone(), true, nil
}

// History returns the session's artifacts, newest first.
func (c *ArtifactCache) History(_ context.Context, sessionID string) ([]*entities.CompilationArtifact, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	history := c.sessions[sessionID]
	out := make([]*entities.CompilationArtifact, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i].Clone())
	}
	return out, nil
}

// Sessions returns the number of sessions with history.
func (c *ArtifactCache) Sessions() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}
