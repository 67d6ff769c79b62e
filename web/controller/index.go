package controller

import (
	"net/http"

	"taskdesk/config"
	"taskdesk/database/model"
	"taskdesk/logger"
	"taskdesk/web/service"
	"taskdesk/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request.
type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// RegisterForm represents the registration request. Role is optional and
// defaults to staff.
type RegisterForm struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

// IndexController handles the root, login, registration, dashboard and
// logout routes.
type IndexController struct {
	BaseController

	userService *service.UserService
}

func NewIndexController(g *gin.RouterGroup, userService *service.UserService) *IndexController {
	a := &IndexController{userService: userService}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/register", a.registerPage)
	g.POST("/register", a.register)
	g.GET("/dashboard", a.checkLogin, a.dashboard)
	g.GET("/logout", a.logout)
}

// index redirects the bare root to the login page.
func (a *IndexController) index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
}

func (a *IndexController) loginPage(c *gin.Context) {
	html(c, "login.html", "Login", nil)
}

// login authenticates the email/password pair and establishes the
// session. Failures share one generic message regardless of cause.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm

	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusOK, "Invalid credentials")
		return
	}
	if form.Email == "" || form.Password == "" {
		c.String(http.StatusOK, "Invalid credentials")
		return
	}

	user := a.userService.CheckUser(form.Email, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q, IP: %q", form.Email, getRemoteIp(c))
		if isAjax(c) {
			pureJsonMsg(c, http.StatusOK, false, "Invalid credentials")
			return
		}
		c.String(http.StatusOK, "Invalid credentials")
		return
	}

	if err := session.SetMaxAge(c, config.GetSessionMaxAge()*60); err != nil {
		logger.Warning("unable to set session max age:", err)
	}
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("unable to save session:", err)
	}

	logger.Infof("%s logged in successfully, IP: %s", form.Email, getRemoteIp(c))
	c.Redirect(http.StatusFound, "/dashboard")
}

func (a *IndexController) registerPage(c *gin.Context) {
	html(c, "register.html", "Register", nil)
}

// register creates a new account. The insert is unconditional: no
// uniqueness check on email.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm

	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusInternalServerError, "An error occurred during registration")
		return
	}
	if form.Name == "" || form.Email == "" || form.Password == "" {
		c.String(http.StatusInternalServerError, "An error occurred during registration")
		return
	}

	role := model.ParseRole(form.Role)
	if _, err := a.userService.RegisterUser(form.Name, form.Email, form.Password, role); err != nil {
		logger.Error("error during registration:", err)
		c.String(http.StatusInternalServerError, "An error occurred during registration")
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// dashboard renders the role-specific landing page. checkLogin guarantees
// a session here.
func (a *IndexController) dashboard(c *gin.Context) {
	user := session.GetLoginUser(c)
	html(c, "dashboard.html", "Dashboard", gin.H{
		"name":    user.Name,
		"email":   user.Email,
		"role":    string(model.ParseRole(string(user.Role))),
		"isAdmin": model.ParseRole(string(user.Role)) == model.RoleAdmin,
	})
}

// logout clears the session. A no-op for anonymous visitors, who are
// still redirected to the login page.
func (a *IndexController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out successfully", user.Email)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.Redirect(http.StatusFound, "/login")
}
