package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilClientIsEmpty(t *testing.T) {
	var c *Client
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)

	ok, err := c.SetIfExists(ctx, "k", []byte("v"), time.Minute)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}
