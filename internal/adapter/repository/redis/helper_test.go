package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// redisFixture is an in-process Redis server and a client connected to it.
// Both are closed when the test ends.
type redisFixture struct {
	server *miniredis.Miniredis
	client *redislib.Client
	ctx    context.Context
}

func newRedisFixture(t *testing.T) *redisFixture {
	t.Helper()

	server := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return &redisFixture{server: server, client: client, ctx: context.Background()}
}
