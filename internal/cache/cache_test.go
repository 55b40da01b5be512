package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsStableAndTagged(t *testing.T) {
	a := Key("cache", TagHalls, "/v1/halls", "")
	b := Key("cache", TagHalls, "/v1/halls", "")
	c := Key("cache", TagHalls, "/v1/halls/:id", "")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^cache:halls:[0-9a-f]{40}$`, a)
	assert.NotEqual(t, Key("cache", TagFoods, "/v1/foods", "category=Dessert"), Key("cache", TagFoods, "/v1/foods", ""))
}

func TestRedisInvalidatorDropsOnlyTaggedEntries(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	for i := 0; i < 250; i++ {
		require.NoError(t, rdb.Set(ctx, Key("cache", TagHalls, "/v1/halls", fmt.Sprint(i)), "x", 0).Err())
	}
	foods := Key("cache", TagFoods, "/v1/foods", "")
	require.NoError(t, rdb.Set(ctx, foods, "x", 0).Err())

	inv := NewInvalidator(rdb, "cache")
	require.NoError(t, inv.Invalidate(ctx, TagHalls))

	keys, err := rdb.Keys(ctx, Pattern("cache", TagHalls)).Result()
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.True(t, mr.Exists(foods))

	require.NoError(t, inv.Invalidate(ctx, TagFoods, TagThemes))
	assert.False(t, mr.Exists(foods))
}

func TestNilClientIsNop(t *testing.T) {
	inv := NewInvalidator(nil, "cache")
	assert.IsType(t, Nop{}, inv)
	assert.NoError(t, inv.Invalidate(context.Background(), TagHalls))
}
