// Package job contains the cron jobs run by the web server.
package job

import (
	"github.com/tiendaweb/tienda/database"
	"github.com/tiendaweb/tienda/logger"
)

// CheckpointDBJob folds the SQLite write-ahead log back into the database file.
type CheckpointDBJob struct{}

func NewCheckpointDBJob() *CheckpointDBJob {
	return new(CheckpointDBJob)
}

// Run implements cron.Job.
func (j *CheckpointDBJob) Run() {
	if err := database.Checkpoint(); err != nil {
		logger.Warning("checkpoint db job err:", err)
		return
	}
	logger.Debug("database checkpoint done")
}
