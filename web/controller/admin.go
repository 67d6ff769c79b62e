package controller

import (
	"net/http"

	"taskdesk/database/model"
	"taskdesk/logger"
	"taskdesk/web/entity"
	"taskdesk/web/service"

	"github.com/gin-gonic/gin"
)

// TaskForm represents the task-creation request.
type TaskForm struct {
	StaffEmail  string `json:"staffEmail" form:"staff_email"`
	TaskName    string `json:"taskName" form:"task_name"`
	Description string `json:"description" form:"description"`
}

// AdminController handles the admin panel: listing all tasks and
// assigning new ones. The Notifier is injected so the mail transport can
// be swapped out in tests.
type AdminController struct {
	BaseController

	taskService *service.TaskService
	notifier    service.Notifier
}

func NewAdminController(g *gin.RouterGroup, taskService *service.TaskService, notifier service.Notifier) *AdminController {
	a := &AdminController{
		taskService: taskService,
		notifier:    notifier,
	}
	a.initRouter(g)
	return a
}

func (a *AdminController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/admin")
	g.Use(a.checkRole(model.RoleAdmin))

	g.GET("", a.tasks)
	g.POST("", a.createTask)
}

// tasks lists every task across all staff.
func (a *AdminController) tasks(c *gin.Context) {
	tasks, err := a.taskService.GetAllTasks()
	if err != nil {
		logger.Warning("list tasks err:", err)
		tasks = nil
	}
	html(c, "admin.html", "Admin Panel", gin.H{
		"tasks":        tasks,
		"notifyFailed": c.Query("notify") == "failed",
	})
}

// createTask persists a new task and then notifies the assignee. The two
// phases are deliberately separate: a mail-transport failure leaves the
// committed task in place and reports a "created but not notified"
// outcome instead of an opaque error.
func (a *AdminController) createTask(c *gin.Context) {
	var form TaskForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if form.StaffEmail == "" || form.TaskName == "" || form.Description == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "staff_email, task_name and description are required")
		return
	}

	task, err := a.taskService.CreateTask(form.StaffEmail, form.TaskName, form.Description)
	if err != nil {
		if isAjax(c) {
			jsonMsg(c, "create task", err)
			return
		}
		c.String(http.StatusInternalServerError, "An error occurred while creating the task")
		return
	}

	result := entity.TaskCreateResult{Task: task, Notified: true}
	if err := a.notifier.SendTaskAssignment(form.StaffEmail, form.TaskName, form.Description); err != nil {
		logger.Warningf("task %s created but notification to %s failed: %v", task.Id, form.StaffEmail, err)
		result.Notified = false
		result.NotifyError = err.Error()
	}

	if isAjax(c) {
		jsonObj(c, result, nil)
		return
	}
	if !result.Notified {
		c.Redirect(http.StatusFound, "/admin?notify=failed")
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}
