package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skingford/book-web/internal/config"
	"github.com/skingford/book-web/internal/flows"
	"github.com/skingford/book-web/internal/logger"
	"github.com/skingford/book-web/internal/search"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("BOOKWEB_DB_DRIVER", "sqlite")
	t.Setenv("BOOKWEB_DB_DSN", ":memory:")
	cfg, err := config.Read("")
	require.NoError(t, err)
	return cfg
}

func TestOpenWithoutRedis(t *testing.T) {
	ctx := context.Background()
	core, err := Open(ctx, testConfig(t), logger.Nop())
	require.NoError(t, err)
	defer core.Close()

	assert.Equal(t, "memory", core.HistoryKV)

	s := core.Categories.Create(ctx, nil, flows.CategoryInput{Name: "Dev"})
	require.IsType(t, flows.Success{}, s)
	catID := s.(flows.Success).ID

	s = core.Bookmarks.Create(ctx, nil, flows.BookmarkInput{Title: "Go", URL: "https://go.dev", CategoryID: catID})
	require.IsType(t, flows.Success{}, s)

	res, err := core.Search.Search(ctx, "go", search.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	hist, err := core.Search.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, hist)
}

func TestOpenFallsBackWhenRedisIsDown(t *testing.T) {
	cfg := testConfig(t)
	cfg.RedisAddr = "127.0.0.1:1" // nothing listens there
	cfg.RedisDT = 10 * time.Millisecond
	cfg.RedisConnectTimeout = 100 * time.Millisecond
	cfg.RedisRetryInterval = 10 * time.Millisecond
	cfg.RedisPingTimeout = 20 * time.Millisecond

	core, err := Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer core.Close()

	assert.Equal(t, "memory", core.HistoryKV)
	assert.Nil(t, core.redisClient)
}

func TestOpenFailsOnBadDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBDriver = "oracle"
	_, err := Open(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}

func TestNewWiresImportReloader(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	assert.Nil(t, a.reloader)
	a.core.Close()

	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- Dev:\n    - Go:\n        - href: https://go.dev\n"), 0o600))
	cfg.ImportFile = path

	a, err = New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer a.core.Close()
	require.NotNil(t, a.reloader)

	rep, err := a.reloader.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.BookmarksCreated)
}
