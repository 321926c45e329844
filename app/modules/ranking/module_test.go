package ranking

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	rankingdb "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/infrastructure/repositories"
	"github.com/Black-And-White-Club/impiccato-bot/config"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_RunAndClose(t *testing.T) {
	cfg := &config.Config{}
	cfg.Game.ResetCheckInterval = time.Hour
	obs := observability.NewNoop()
	store := rankingdb.NewJSONStore(filepath.Join(t.TempDir(), "hangman_data.json"), nil)

	m, err := NewRankingModule(context.Background(), cfg, obs, store, nil, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, m.RankingRouter)

	_, err = m.RankingService.AddPoints(context.Background(), "u1", "Anna", 3, "test")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go m.Run(ctx, &wg)
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("module did not stop")
	}
	require.NoError(t, m.Close())

	reloaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.Historical["u1"].Points)
}

func TestModule_CloseBeforeRun(t *testing.T) {
	cfg := &config.Config{}
	cfg.Game.ResetCheckInterval = time.Hour
	store := rankingdb.NewJSONStore(filepath.Join(t.TempDir(), "hangman_data.json"), nil)

	m, err := NewRankingModule(context.Background(), cfg, observability.NewNoop(), store, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, m.Close())

	var wg sync.WaitGroup
	wg.Add(1)
	go m.Run(context.Background(), &wg)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reset loop kept running after Close")
	}
}
