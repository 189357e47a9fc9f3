package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/atech/cms/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

func TestBackoffCapsDelay(t *testing.T) {
	b := backoff{maxRetries: 5, delay: 500 * time.Millisecond, maxDelay: 5 * time.Second}
	require.Equal(t, 500*time.Millisecond, b.nextDelay(0))
	require.Equal(t, time.Second, b.nextDelay(1))
	require.Equal(t, 4*time.Second, b.nextDelay(3))
	require.Equal(t, 5*time.Second, b.nextDelay(4))
}

func TestOpenRedisUsesToken(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("kv-token")

	rdb, err := OpenRedis(context.Background(), "redis://"+mr.Addr(), "kv-token")
	require.NoError(t, err)
	defer rdb.Close()

	require.NoError(t, rdb.Set(context.Background(), "projects", "[]", 0).Err())
	got, err := mr.Get("projects")
	require.NoError(t, err)
	require.Equal(t, "[]", got)
}

func TestOpenRedisRejectsBadURL(t *testing.T) {
	_, err := OpenRedis(context.Background(), "http://not-redis", "")
	require.Error(t, err)
}
