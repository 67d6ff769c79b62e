package controller

import (
	"net/http"

	"taskdesk/database/model"
	"taskdesk/logger"
	"taskdesk/web/service"
	"taskdesk/web/session"

	"github.com/gin-gonic/gin"
)

// StatusForm represents the status-update request.
type StatusForm struct {
	TaskId string `json:"taskId" form:"task_id"`
	Status string `json:"status" form:"status"`
}

// StaffController handles the staff panel: listing the session user's own
// tasks and updating their status.
type StaffController struct {
	BaseController

	taskService *service.TaskService
}

func NewStaffController(g *gin.RouterGroup, taskService *service.TaskService) *StaffController {
	a := &StaffController{taskService: taskService}
	a.initRouter(g)
	return a
}

func (a *StaffController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/staff")
	g.Use(a.checkRole(model.RoleStaff))

	g.GET("", a.tasks)
	g.POST("", a.updateStatus)
}

// tasks lists only the tasks assigned to the session's email.
func (a *StaffController) tasks(c *gin.Context) {
	user := session.GetLoginUser(c)
	tasks, err := a.taskService.GetTasksByStaff(user.Email)
	if err != nil {
		logger.Warning("list staff tasks err:", err)
		tasks = nil
	}
	html(c, "staff.html", "My Tasks", gin.H{
		"tasks": tasks,
		"email": user.Email,
	})
}

// updateStatus writes the submitted status string onto the task. The
// value is free text and the task's ownership is not checked; this
// mirrors the observed behavior of the panel being replaced.
func (a *StaffController) updateStatus(c *gin.Context) {
	var form StatusForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if form.TaskId == "" || form.Status == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "task_id and status are required")
		return
	}

	if err := a.taskService.UpdateTaskStatus(form.TaskId, form.Status); err != nil {
		if isAjax(c) {
			jsonMsg(c, "update task status", err)
			return
		}
		c.String(http.StatusInternalServerError, "An error occurred while updating the task")
		return
	}

	if isAjax(c) {
		jsonMsg(c, "task status updated", nil)
		return
	}
	c.Redirect(http.StatusFound, "/staff")
}
