package service

import (
	"taskdesk/database"
	"taskdesk/database/model"

	"github.com/google/uuid"
)

type TaskService struct{}

// CreateTask inserts a new task for the given staff email with status
// pending. StaffEmail is not checked against the users table.
func (s *TaskService) CreateTask(staffEmail string, taskName string, description string) (*model.Task, error) {
	task := &model.Task{
		Id:          uuid.NewString(),
		StaffEmail:  staffEmail,
		TaskName:    taskName,
		Description: description,
		Status:      model.TaskStatusPending,
	}

	db := database.GetDB()
	if err := db.Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// GetAllTasks lists every task across all staff.
func (s *TaskService) GetAllTasks() ([]*model.Task, error) {
	db := database.GetDB()

	var tasks []*model.Task
	err := db.Model(model.Task{}).
		Order("created_at desc").
		Find(&tasks).
		Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTasksByStaff lists the tasks assigned to one staff email.
func (s *TaskService) GetTasksByStaff(staffEmail string) ([]*model.Task, error) {
	db := database.GetDB()

	var tasks []*model.Task
	err := db.Model(model.Task{}).
		Where("staff_email = ?", staffEmail).
		Order("created_at desc").
		Find(&tasks).
		Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTaskStatus sets the status of the task with the given id. Status
// is free text; any non-empty value is persisted as-is. Ownership is not
// checked here.
func (s *TaskService) UpdateTaskStatus(taskId string, status string) error {
	db := database.GetDB()
	return db.Model(model.Task{}).
		Where("id = ?", taskId).
		Update("status", status).
		Error
}

// CountByStatus returns how many tasks currently carry the given status.
func (s *TaskService) CountByStatus(status string) (int64, error) {
	db := database.GetDB()

	var count int64
	err := db.Model(model.Task{}).
		Where("status = ?", status).
		Count(&count).
		Error
	return count, err
}
