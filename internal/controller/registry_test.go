package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_GetReturnsSameController(t *testing.T) {
	created := 0
	registry := NewRegistry(func() *Controller {
		created++
		return New(&fakeRecommender{})
	})

	a := registry.Get("session-a")
	assert.Same(t, a, registry.Get("session-a"))
	assert.NotSame(t, a, registry.Get("session-b"))
	assert.Equal(t, 2, created)
	assert.Equal(t, 2, registry.Len())

	registry.Delete("session-a")
	assert.Equal(t, 1, registry.Len())
	assert.NotSame(t, a, registry.Get("session-a"))
}

func TestRegistry_SessionsAreIndependent(t *testing.T) {
	registry := NewRegistry(func() *Controller {
		return New(&fakeRecommender{result: overwhelmedResult()})
	})

	require.True(t, registry.Get("a").Submit(context.Background(), "tired"))

	assert.Equal(t, StatusSuccess, registry.Get("a").State().Status)
	assert.Equal(t, StatusIdle, registry.Get("b").State().Status)
}

func TestRegistry_Sweep(t *testing.T) {
	rec := &fakeRecommender{result: overwhelmedResult(), release: make(chan struct{})}
	registry := NewRegistry(func() *Controller { return New(rec) })

	registry.Get("idle")
	loading := registry.Get("loading")
	require.True(t, loading.Start(context.Background(), "anxious"))

	time.Sleep(5 * time.Millisecond)
	evicted := registry.Sweep(time.Millisecond)

	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, registry.Len())
	assert.Same(t, loading, registry.Get("loading"))

	close(rec.release)
	loading.Wait()

	assert.Zero(t, registry.Sweep(time.Hour))
}

func TestRegistry_GetKeepsControllerAlive(t *testing.T) {
	registry := NewRegistry(func() *Controller { return New(&fakeRecommender{result: overwhelmedResult()}) })

	stale := registry.Get("returning")
	stale.mu.Lock()
	stale.lastActive = time.Now().Add(-time.Hour)
	stale.mu.Unlock()

	// The visitor comes back just before the sweep runs
	ctrl := registry.Get("returning")
	assert.Zero(t, registry.Sweep(time.Minute))
	assert.Same(t, stale, ctrl)

	require.True(t, ctrl.Submit(context.Background(), "nostalgic"))
	assert.Same(t, ctrl, registry.Get("returning"))
	assert.Equal(t, StatusSuccess, registry.Get("returning").State().Status)
}
