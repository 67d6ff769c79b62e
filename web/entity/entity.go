// Package entity defines data structures shared by the web layer.
package entity

import "taskdesk/database/model"

// Msg is the standard JSON response envelope.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// TaskCreateResult reports the outcome of creating a task plus notifying
// the assignee. The task is committed before notification is attempted,
// so Notified can be false while the task exists; NotifyError carries the
// transport failure so the caller can retry notification independently.
type TaskCreateResult struct {
	Task        *model.Task `json:"task"`
	Notified    bool        `json:"notified"`
	NotifyError string      `json:"notifyError,omitempty"`
}
