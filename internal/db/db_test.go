package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront/internal/db"
	"storefront/internal/db/dbtest"
	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := db.Open("postgres", "whatever")
	assert.Error(t, err)
}

func TestExecutor_Execute(t *testing.T) {
	gdb := dbtest.New(t)
	exec := db.NewExecutor(gdb)
	ctx := context.Background()

	require.NoError(t, gdb.Create(&model.Category{Name: "camisa"}).Error)
	require.NoError(t, gdb.Create(&model.Category{Name: "pantalon"}).Error)

	rows, err := exec.Execute(ctx, "SELECT id, name FROM categories WHERE name = ?", "pantalon")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "pantalon", rows[0]["name"])

	rows, err = exec.Execute(ctx, "SELECT * FROM categories WHERE name = ?", "' OR 1=1 --")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExecutor_QueryError(t *testing.T) {
	exec := db.NewExecutor(dbtest.New(t))

	_, err := exec.Execute(context.Background(), "SELECT * FROM no_such_table")
	require.Error(t, err)
	assert.True(t, apperrors.IsQuery(err))
	assert.Contains(t, err.Error(), "no_such_table")
}

func TestExecutor_Ping(t *testing.T) {
	assert.NoError(t, db.NewExecutor(dbtest.New(t)).Ping(context.Background()))
}

func TestMigrate_Reset(t *testing.T) {
	gdb := dbtest.New(t)
	require.NoError(t, gdb.Create(&model.Category{Name: "zapatos"}).Error)

	require.NoError(t, db.Migrate(gdb, true))

	var count int64
	require.NoError(t, gdb.Model(&model.Category{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMigrate_LegacyStore(t *testing.T) {
	gdb := dbtest.NewLegacy(t)

	// Running again is a no-op.
	require.NoError(t, db.Migrate(gdb, false))

	m := gdb.Migrator()
	assert.True(t, m.HasIndex(&model.User{}, "Handle"))
	assert.True(t, m.HasIndex(&model.User{}, "Email"))
	assert.True(t, m.HasIndex(&model.CartItem{}, "idx_cart_user_product"))

	columns, err := m.ColumnTypes(&model.Product{})
	require.NoError(t, err)
	for _, column := range columns {
		if column.Name() == "price" {
			assert.Equal(t, "REAL", column.DatabaseTypeName())
		}
	}

	var products []model.Product
	require.NoError(t, gdb.Order("id").Find(&products).Error)
	require.Len(t, products, 6)
	assert.Equal(t, "19.99", products[5].Price.StringFixed(2))
	assert.Equal(t, uint(6), products[5].CategoryID)

	var users, cartRows int64
	require.NoError(t, gdb.Model(&model.User{}).Count(&users).Error)
	require.NoError(t, gdb.Model(&model.CartItem{}).Count(&cartRows).Error)
	assert.Equal(t, int64(5), users)
	assert.Equal(t, int64(5), cartRows)

	err = gdb.Create(&model.User{
		FirstName:    "otro",
		LastName:     "yondi",
		PasswordHash: "x",
		Handle:       "yondi",
		Email:        "otro@gmail.com",
	}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
