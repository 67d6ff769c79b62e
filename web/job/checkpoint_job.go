// Package job contains the scheduled maintenance jobs run by the web
// server's cron instance.
package job

import (
	"taskdesk/database"
	"taskdesk/logger"
	"taskdesk/util/common"
)

// CheckpointJob flushes the sqlite WAL into the main database file so the
// db file on disk stays current for backups.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

// Run implements cron.Job.
func (j *CheckpointJob) Run() {
	defer common.Recover("checkpoint job")
	if err := database.Checkpoint(); err != nil {
		logger.Warning("checkpoint job err:", err)
	}
}
