package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendaweb/tienda/config"
	"github.com/tiendaweb/tienda/database/model"
	"github.com/tiendaweb/tienda/util/crypto"
)

func openTestDB(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tienda.db")
	require.NoError(t, InitDB(config.NewSQLiteConfig(path)))
	t.Cleanup(func() { _ = CloseDB() })
}

func TestInitDBSeedsAdmin(t *testing.T) {
	openTestDB(t)

	var users []model.User
	require.NoError(t, GetDB().Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, defaultUsername, users[0].Username)
	assert.True(t, users[0].Admin)
	assert.NotEqual(t, defaultPassword, users[0].Password)
	assert.True(t, crypto.CheckPasswordHash(users[0].Password, defaultPassword))
}

func TestInitUserIsIdempotent(t *testing.T) {
	openTestDB(t)

	require.NoError(t, initUser())
	var count int64
	require.NoError(t, GetDB().Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestForeignKeyRestrictsCategoryDelete(t *testing.T) {
	openTestDB(t)

	cat := &model.Category{Name: "Camisetas"}
	require.NoError(t, GetDB().Create(cat).Error)
	art := &model.Article{Name: "Camiseta roja", Price: 9.99, CategoryId: &cat.Id}
	require.NoError(t, GetDB().Create(art).Error)

	assert.Error(t, GetDB().Delete(&model.Category{}, cat.Id).Error)
}

func TestIsNotFound(t *testing.T) {
	openTestDB(t)

	err := GetDB().First(&model.Article{}, 42).Error
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(nil))
}

func TestCheckpoint(t *testing.T) {
	openTestDB(t)
	assert.NoError(t, Checkpoint())
}
