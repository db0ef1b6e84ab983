package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/db/dbtest"
	"storefront/internal/repository"
)

func TestRun_SeedsEmptyStoreOnce(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)

	res, err := Run(ctx, gdb)
	require.NoError(t, err)
	assert.Equal(t, Result{Categories: 5, Products: 6, Users: 5, CartItems: 4}, res)

	shoes, found, err := repository.NewProductRepository(gdb).FindByID(ctx, 6)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint(5), shoes.CategoryID)

	lines, err := repository.NewCartRepository(gdb).ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, lines, 3)

	again, err := Run(ctx, gdb)
	require.NoError(t, err)
	assert.True(t, again.Skipped)
}
