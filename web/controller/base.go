// Package controller provides the HTTP handlers for the taskdesk panel:
// login, registration, the role-aware dashboard and the admin and staff
// task panels.
package controller

import (
	"net/http"

	"taskdesk/database/model"
	"taskdesk/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the authentication and role gates shared by all
// controllers.
type BaseController struct{}

// checkLogin verifies that a session exists, redirecting anonymous
// requests to the login page.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "please log in again")
		} else {
			c.Redirect(http.StatusFound, "/login")
		}
		c.Abort()
		return
	}
	c.Next()
}

// checkRole admits only sessions holding exactly the wanted role. Anyone
// else, anonymous included, is sent to the dashboard rather than
// rejected; the dashboard in turn bounces anonymous visitors to the login
// page. The switch is over the raw stored role, so a value outside the
// enum can never land in a panel.
func (a *BaseController) checkRole(want model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := session.GetLoginUser(c)
		if user == nil {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		switch user.Role {
		case want:
			c.Next()
		default:
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
		}
	}
}
