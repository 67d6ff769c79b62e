package job

import (
	"taskdesk/database/model"
	"taskdesk/logger"
	"taskdesk/util/common"
	"taskdesk/web/service"
)

// PendingTasksJob logs how many tasks are still pending. Purely
// informational; it performs no writes and sends no mail.
type PendingTasksJob struct {
	taskService service.TaskService
}

func NewPendingTasksJob() *PendingTasksJob {
	return new(PendingTasksJob)
}

// Run implements cron.Job.
func (j *PendingTasksJob) Run() {
	defer common.Recover("pending tasks job")
	count, err := j.taskService.CountByStatus(model.TaskStatusPending)
	if err != nil {
		logger.Warning("pending tasks job err:", err)
		return
	}
	logger.Infof("%d task(s) currently pending", count)
}
