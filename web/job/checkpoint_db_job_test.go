package job

import (
	"path/filepath"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendaweb/tienda/config"
	"github.com/tiendaweb/tienda/database"
)

func TestCheckpointDBJobRuns(t *testing.T) {
	require.NoError(t, database.InitDB(config.NewSQLiteConfig(filepath.Join(t.TempDir(), "tienda.db"))))
	defer database.CloseDB()

	assert.NotPanics(t, NewCheckpointDBJob().Run)
}

func TestCheckpointDBJobSchedules(t *testing.T) {
	c := cron.New()
	_, err := c.AddJob("@daily", NewCheckpointDBJob())
	assert.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
}
