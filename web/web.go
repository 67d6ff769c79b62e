// Package web provides the web server for the taskdesk panel: routing,
// cookie sessions, embedded templates and scheduled maintenance jobs.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net"
	"net/http"
	"strconv"

	"taskdesk/config"
	"taskdesk/logger"
	"taskdesk/util/common"
	"taskdesk/util/random"
	"taskdesk/web/controller"
	"taskdesk/web/job"
	"taskdesk/web/middleware"
	"taskdesk/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed html/*
var htmlFS embed.FS

// Server is the taskdesk web server. Services are constructed once at
// startup and shared by every request; there is no teardown beyond
// process exit.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index *controller.IndexController
	admin *controller.AdminController
	staff *controller.StaffController

	userService *service.UserService
	taskService *service.TaskService
	notifier    service.Notifier

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context
// and an SMTP-backed notifier.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		userService: &service.UserService{},
		taskService: &service.TaskService{},
		notifier:    service.NewMailService(),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// getHtmlTemplate parses the embedded HTML templates.
func (s *Server) getHtmlTemplate() (*template.Template, error) {
	return template.ParseFS(htmlFS, "html/*.html")
}

// initRouter initializes gin, registers middleware, templates and
// controllers and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	if webDomain := config.GetWebDomain(); webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}

	secret := config.GetSecret()
	if secret == "" {
		// An ephemeral secret keeps the panel usable but invalidates
		// all sessions on restart. Not for production.
		secret = random.Seq(32)
		logger.Warning("TD_SECRET is not set, using an ephemeral session secret")
	}
	store := cookie.NewStore([]byte(secret))
	engine.Use(sessions.Sessions("taskdesk", store))

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	tpl, err := s.getHtmlTemplate()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	g := engine.Group("/")
	s.index = controller.NewIndexController(g, s.userService)
	s.admin = controller.NewAdminController(g, s.taskService, s.notifier)
	s.staff = controller.NewStaffController(g, s.taskService)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the maintenance jobs. All request-path work,
// including the notification mail, stays inline; these jobs only do
// housekeeping.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewCheckpointJob())
	s.cron.AddJob("@daily", job.NewPendingTasksJob())
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its cron jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
