package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactCache_LastWriterWins(t *testing.T) {
	cache := NewArtifactCache(0)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put(ctx, "s1", &entities.CompilationArtifact{Title: "first"}))
	require.NoError(t, cache.Put(ctx, "s1", &entities.CompilationArtifact{Title: "second"}))

	latest, ok, err := cache.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", latest.Title)

	history, err := cache.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second", history[0].Title)
	assert.Equal(t, "first", history[1].Title)
}

func TestArtifactCache_StoresCopies(t *testing.T) {
	cache := NewArtifactCache(0)
	ctx := context.Background()

	artifact := &entities.CompilationArtifact{Title: "app", Unresolved: []string{"ui_components.x"}}
	require.NoError(t, cache.Put(ctx, "s", artifact))
	artifact.Title = "changed"
	artifact.Unresolved[0] = "changed"

	got, _, _ := cache.Get(ctx, "s")
	assert.Equal(t, "app", got.Title)
	assert.Equal(t, []string{"ui_components.x"}, got.Unresolved)
}

func TestArtifactCache_Limit(t *testing.T) {
	cache := NewArtifactCache(2)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, cache.Put(ctx, "s", &entities.CompilationArtifact{Title: fmt.Sprint(i)}))
	}

	history, err := cache.History(ctx, "s")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "4", history[0].Title)
	assert.Equal(t, "3", history[1].Title)
}

func TestArtifactCache_Concurrent(t *testing.T) {
	cache := NewArtifactCache(100)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session := fmt.Sprintf("s%d", i%3)
			_ = cache.Put(ctx, session, &entities.CompilationArtifact{Title: session})
			_, _, _ = cache.Get(ctx, session)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, cache.Sessions())
}
