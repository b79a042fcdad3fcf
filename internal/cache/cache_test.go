package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 127.0.0.1:1 refuses connections immediately, so every call below exercises
// the redis-error path rather than hanging on a dial.
func unreachableClient() *Client {
	return New("127.0.0.1:1", "", 0)
}

func TestClient_FailSafeWhenRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := unreachableClient()

	data, err := c.Get(ctx, "tasks:u1")
	assert.NoError(t, err)
	assert.Nil(t, data, "connectivity errors must look like cache misses")

	assert.NoError(t, c.Set(ctx, "tasks:u1", []byte(`[]`), time.Minute))
	assert.NoError(t, c.Delete(ctx, "tasks:u1"))
}

func TestClient_NilClientBehavesLikeEmptyCache(t *testing.T) {
	ctx := context.Background()
	var c *Client

	data, err := c.Get(ctx, "user:abc")
	assert.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, c.Set(ctx, "user:abc", []byte(`{}`), time.Minute))
	assert.NoError(t, c.Delete(ctx, "user:abc"))
}
