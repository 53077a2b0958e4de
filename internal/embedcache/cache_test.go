package embedcache

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	v := []float32{0, 1.5, -2.25, 3e-7}
	got, err := Decode(Encode(v))
	require.NoError(t, err)
	assert.Equal(t, v, got)

	_, err = Decode([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrCorrupt)
}

// exerciseCache runs the shared contract against any backend.
func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []float32{1, 2, 3}))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, v)

	require.NoError(t, c.Set(ctx, "k", []float32{4}))
	v, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float32{4}, v)

	v[0] = 99
	v, _, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []float32{4}, v)
}

func TestMemoryCache(t *testing.T) {
	exerciseCache(t, NewMemory())
}

func TestSQLiteCache(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE embeddings (key TEXT PRIMARY KEY, vec BLOB NOT NULL, created_at TEXT NOT NULL)`)
	require.NoError(t, err)

	exerciseCache(t, NewSQLite(db))
}

func TestRedisCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedis(rdb, time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	exerciseCache(t, c)
	assert.True(t, mr.Exists(redisKeyPrefix+"k"))

	mr.FastForward(2 * time.Minute)
	_, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisFromURL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := NewRedisFromURL(context.Background(), "redis://"+mr.Addr()+"/0", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	exerciseCache(t, c)

	_, err = NewRedisFromURL(context.Background(), "not a url", 0)
	require.Error(t, err)
}
