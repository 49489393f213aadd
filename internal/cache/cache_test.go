package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() {
		Close()
		mr.Close()
	})

	InitRedis(mr.Addr(), nil)
	require.NotNil(t, GetClient())
	return mr
}

func TestInitRedis_Disabled(t *testing.T) {
	InitRedis("", nil)
	assert.Nil(t, GetClient())

	InitRedis("redis://%zz", nil)
	assert.Nil(t, GetClient())

	n, err := InvalidatePostLists(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, InvalidatePosts(context.Background(), []uint{1}, nil))
}

func TestInitRedis_URL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	defer Close()

	InitRedis("redis://"+mr.Addr()+"/0", nil)
	assert.NotNil(t, GetClient())
}

func TestInvalidatePostLists(t *testing.T) {
	mr := setupMiniredis(t)

	for i := 1; i <= 250; i++ {
		require.NoError(t, mr.Set(fmt.Sprintf("posts:list:page:%d", i), "[]"))
	}
	require.NoError(t, mr.Set(TagListKey, "[]"))
	require.NoError(t, mr.Set("user:1", "{}"))

	n, err := InvalidatePostLists(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(251), n)

	assert.False(t, mr.Exists("posts:list:page:1"))
	assert.False(t, mr.Exists(TagListKey))
	assert.True(t, mr.Exists("user:1"))
}

func TestInvalidatePosts(t *testing.T) {
	mr := setupMiniredis(t)

	require.NoError(t, mr.Set(PostKey(4), "{}"))
	require.NoError(t, mr.Set(PostKey(5), "{}"))
	require.NoError(t, mr.Set(PostSlugKey("hello-world-1700000000"), "{}"))

	err := InvalidatePosts(context.Background(), []uint{4}, []string{"hello-world-1700000000"})
	require.NoError(t, err)

	assert.False(t, mr.Exists(PostKey(4)))
	assert.False(t, mr.Exists("post:slug:hello-world-1700000000"))
	assert.True(t, mr.Exists("post:5"))
}

func TestMetricsHook_CountsErrors(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	defer Close()

	errs := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_redis_errors_total"}, []string{"command"})
	InitRedis(mr.Addr(), errs)
	require.NotNil(t, GetClient())

	mr.SetError("ERR forced failure")
	assert.Error(t, InvalidatePosts(context.Background(), []uint{1}, nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(errs.WithLabelValues("del")))
}
