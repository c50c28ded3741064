package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/jask/tiermaker/internal/config"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rs := NewRedis(client, "test:")
	t.Cleanup(func() { _ = rs.Close() })

	file, err := NewFile(filepath.Join(t.TempDir(), "slots"))
	require.NoError(t, err)

	return map[string]Store{
		"sqlite": sqlite,
		"redis":  rs,
		"file":   file,
		"memory": NewMemory(),
	}
}

func TestBackends(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Load(ctx, "tierListState")
			require.ErrorIs(t, err, ErrNotFound)
			names, err := st.Slots(ctx)
			require.NoError(t, err)
			require.Empty(t, names)

			require.NoError(t, st.Save(ctx, "tierListState", []byte(`{"tiers":[]}`)))
			require.NoError(t, st.Save(ctx, "tierListState", []byte(`{"tiers":[],"unranked":[]}`)))
			require.NoError(t, st.Save(ctx, "other", []byte("x")))
			names, err = st.Slots(ctx)
			require.NoError(t, err)
			require.Equal(t, []string{"other", "tierListState"}, names)

			data, err := st.Load(ctx, "tierListState")
			require.NoError(t, err)
			require.Equal(t, `{"tiers":[],"unranked":[]}`, string(data))

			require.NoError(t, st.Delete(ctx, "tierListState"))
			require.NoError(t, st.Delete(ctx, "tierListState"))
			_, err = st.Load(ctx, "tierListState")
			require.True(t, errors.Is(err, ErrNotFound))
			names, err = st.Slots(ctx)
			require.NoError(t, err)
			require.Equal(t, []string{"other"}, names)

			data, err = st.Load(ctx, "other")
			require.NoError(t, err)
			require.Equal(t, "x", string(data))

			require.Error(t, st.Save(ctx, " ", []byte("x")))
		})
	}
}

func TestRedisKeyPrefix(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rs := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "tiermaker:")
	t.Cleanup(func() { _ = rs.Close() })

	require.NoError(t, rs.Save(context.Background(), "games", []byte("doc")))
	got, err := mr.Get("tiermaker:games")
	require.NoError(t, err)
	require.Equal(t, "doc", got)
}

func TestFileRejectsPathSlots(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	for _, slot := range []string{"../escape", "a/b", `a\b`, ".."} {
		require.Error(t, f.Save(context.Background(), slot, []byte("x")), slot)
	}
}

func TestSQLiteSlotsAndVacuum(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Save(ctx, "b", []byte("1")))
	require.NoError(t, st.Save(ctx, "a", []byte("2")))
	names, err := st.Slots(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, names)
	require.NoError(t, st.Vacuum(ctx))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	dir := t.TempDir()
	for backend, want := range map[string]any{
		"":       &SQLite{},
		"SQLite": &SQLite{},
		"redis":  &Redis{},
		"file":   &File{},
		"memory": &Memory{},
	} {
		cfg := config.Config{
			Storage: config.StorageConfig{Backend: backend, Path: filepath.Join(dir, backend+".db"), Dir: filepath.Join(dir, "slots")},
			Redis:   config.RedisConfig{Addr: mr.Addr(), Prefix: "t:"},
		}
		st, err := Open(ctx, cfg)
		require.NoError(t, err, backend)
		require.IsType(t, want, st)
		require.NoError(t, st.Close())
	}

	_, err = Open(ctx, config.Config{Storage: config.StorageConfig{Backend: "etcd"}})
	require.Error(t, err)

	mr.Close()
	_, err = Open(ctx, config.Config{Storage: config.StorageConfig{Backend: "redis"}, Redis: config.RedisConfig{Addr: mr.Addr()}})
	require.Error(t, err)
}
