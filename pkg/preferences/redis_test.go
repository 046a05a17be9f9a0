package preferences

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

func newStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ""), mr
}

func TestRedisStoreGetMissing(t *testing.T) {
	store, _ := newStore(t)
	value, ok, err := store.Get(context.Background(), dashboard.PreferenceTheme)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, dashboard.PreferenceTheme, "dark"))

	value, ok, err := store.Get(ctx, dashboard.PreferenceTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", value)
	assert.Equal(t, "dark", mr.HGet(DefaultKey, dashboard.PreferenceTheme))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{dashboard.PreferenceTheme: "dark"}, all)
}

func TestSettingsServiceOverRedis(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()
	mr.HSet(DefaultKey, dashboard.PreferenceDensity, "compact")

	settings := dashboard.NewSettingsService(store, nil)
	loaded, err := settings.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, dashboard.DensityCompact, loaded.Density)
	assert.Equal(t, dashboard.ThemeLight, loaded.Theme)

	_, err = settings.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", mr.HGet(DefaultKey, dashboard.PreferenceTheme))

	reloaded := dashboard.NewSettingsService(store, nil)
	current, err := reloaded.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, dashboard.ThemeDark, current.Theme)
}

func TestRedisStoreSurfacesErrors(t *testing.T) {
	store, mr := newStore(t)
	mr.Close()
	_, _, err := store.Get(context.Background(), dashboard.PreferenceTheme)
	assert.Error(t, err)
	assert.Error(t, store.Set(context.Background(), dashboard.PreferenceTheme, "dark"))
}

func TestDialFailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err := Dial(context.Background(), addr)
	assert.Error(t, err)
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Dial(context.Background(), mr.Addr())
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}

func TestCustomKey(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	store := NewRedisStore(client, " ops:prefs ")
	require.NoError(t, store.Set(context.Background(), dashboard.PreferenceDensity, "comfortable"))
	assert.Equal(t, "comfortable", mr.HGet("ops:prefs", dashboard.PreferenceDensity))
}
