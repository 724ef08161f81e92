package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLogLevel(t *testing.T) {
	t.Setenv("TIENDA_DEBUG", "")
	t.Setenv("TIENDA_LOG_LEVEL", "")
	assert.Equal(t, Info, GetLogLevel())

	t.Setenv("TIENDA_LOG_LEVEL", "warn")
	assert.Equal(t, Warn, GetLogLevel())

	t.Setenv("TIENDA_DEBUG", "true")
	assert.Equal(t, Debug, GetLogLevel())
}

func TestIntDefaults(t *testing.T) {
	t.Setenv("TIENDA_PORT", "")
	assert.Equal(t, 5000, GetPort())

	t.Setenv("TIENDA_PORT", "8081")
	assert.Equal(t, 8081, GetPort())

	t.Setenv("TIENDA_PORT", "not-a-number")
	assert.Equal(t, 5000, GetPort())
}

func TestGetTrustedProxies(t *testing.T) {
	t.Setenv("TIENDA_TRUSTED_PROXIES", "")
	assert.Empty(t, GetTrustedProxies())

	t.Setenv("TIENDA_TRUSTED_PROXIES", " 10.0.0.1, ,192.168.0.0/16 ")
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, GetTrustedProxies())
}

func TestGetDBPath(t *testing.T) {
	t.Setenv("TIENDA_DB_FOLDER", "/tmp/shop")
	assert.Equal(t, "/tmp/shop/tienda.db", GetDBPath())
}

func TestDatabaseConfig(t *testing.T) {
	t.Setenv("TIENDA_DB_TYPE", "")
	cfg := GetDatabaseConfig()
	assert.True(t, cfg.IsSQLite())
	assert.NoError(t, cfg.ValidateConfig())
	assert.True(t, strings.HasSuffix(cfg.GetDSN(), "_foreign_keys=1"))
	assert.Contains(t, cfg.GetDSN(), "_journal_mode=WAL")

	t.Setenv("TIENDA_DB_TYPE", "postgres")
	t.Setenv("TIENDA_PG_HOST", "db.internal")
	cfg = GetDatabaseConfig()
	assert.False(t, cfg.IsSQLite())
	assert.NoError(t, cfg.ValidateConfig())
	assert.Contains(t, cfg.GetDSN(), "host=db.internal")

	cfg.Postgres.Port = 0
	assert.Error(t, cfg.ValidateConfig())

	cfg.Type = "mysql"
	assert.Error(t, cfg.ValidateConfig())
}
