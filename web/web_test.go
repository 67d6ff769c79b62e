package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"taskdesk/database"
	"taskdesk/database/model"
	"taskdesk/logger"
	"taskdesk/web/service"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("TD_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}

type notifyCall struct {
	to, taskName, description string
}

// stubNotifier records notification attempts instead of talking to SMTP.
type stubNotifier struct {
	calls []notifyCall
	err   error
}

func (s *stubNotifier) SendTaskAssignment(staffEmail string, taskName string, description string) error {
	s.calls = append(s.calls, notifyCall{to: staffEmail, taskName: taskName, description: description})
	return s.err
}

func setupWeb(t *testing.T) (*gin.Engine, *stubNotifier) {
	t.Helper()

	dbPath := "webtest.db"
	os.Remove(dbPath)
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() {
		db, _ := database.GetDB().DB()
		db.Close()
		os.Remove(dbPath)
	})

	stub := &stubNotifier{}
	server := NewServer()
	server.notifier = stub
	engine, err := server.initRouter()
	require.NoError(t, err)
	return engine, stub
}

func do(engine *gin.Engine, method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// mergeCookies overlays the response's cookies onto the jar, keeping the
// last value per name the way a browser would.
func mergeCookies(jar []*http.Cookie, w *httptest.ResponseRecorder) []*http.Cookie {
	byName := map[string]*http.Cookie{}
	for _, c := range jar {
		byName[c.Name] = c
	}
	for _, c := range w.Result().Cookies() {
		byName[c.Name] = c
	}
	merged := make([]*http.Cookie, 0, len(byName))
	for _, c := range byName {
		merged = append(merged, c)
	}
	return merged
}

func login(t *testing.T, engine *gin.Engine, email, password string) []*http.Cookie {
	t.Helper()
	w := do(engine, http.MethodPost, "/login", url.Values{
		"email":    {email},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))
	return mergeCookies(nil, w)
}

func register(t *testing.T, engine *gin.Engine, name, email, password, role string) {
	t.Helper()
	w := do(engine, http.MethodPost, "/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
		"role":     {role},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRootRedirectsToLogin(t *testing.T) {
	engine, _ := setupWeb(t)

	w := do(engine, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAuthGates(t *testing.T) {
	engine, _ := setupWeb(t)

	// Anonymous dashboard access bounces to login
	w := do(engine, http.MethodGet, "/dashboard", nil, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// Anonymous panel access bounces to the dashboard, exposing no data
	for _, path := range []string{"/admin", "/staff"} {
		w := do(engine, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	engine, _ := setupWeb(t)
	register(t, engine, "Alice", "alice@x.com", "s3cret", "staff")

	// Unknown email and wrong password produce the identical response
	w1 := do(engine, http.MethodPost, "/login", url.Values{
		"email": {"nobody@x.com"}, "password": {"s3cret"},
	}, nil)
	w2 := do(engine, http.MethodPost, "/login", url.Values{
		"email": {"alice@x.com"}, "password": {"wrong"},
	}, nil)

	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, w1.Body.String(), w2.Body.String())
	assert.Contains(t, w1.Body.String(), "Invalid credentials")
}

func TestRegisterDefaultsToStaff(t *testing.T) {
	engine, _ := setupWeb(t)

	// Role omitted entirely
	w := do(engine, http.MethodPost, "/register", url.Values{
		"name":     {"Carol"},
		"email":    {"carol@x.com"},
		"password": {"pw"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)

	cookies := login(t, engine, "carol@x.com", "pw")
	w = do(engine, http.MethodGet, "/dashboard", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "staff")
	assert.Contains(t, w.Body.String(), "your task list")
}

func TestUnrecognizedRoleReachesNoPanel(t *testing.T) {
	engine, _ := setupWeb(t)

	// A role outside the enum can end up in the store (hand-edited row,
	// older data); it must bounce off both panels.
	userService := service.UserService{}
	_, err := userService.RegisterUser("Mallory", "mallory@x.com", "pw", model.Role("superuser"))
	require.NoError(t, err)

	cookies := login(t, engine, "mallory@x.com", "pw")
	for _, path := range []string{"/admin", "/staff"} {
		w := do(engine, http.MethodGet, path, nil, cookies)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	}
}

func TestStaffCannotReachAdminPanel(t *testing.T) {
	engine, _ := setupWeb(t)
	register(t, engine, "Alice", "alice@x.com", "pw", "staff")
	cookies := login(t, engine, "alice@x.com", "pw")

	w := do(engine, http.MethodGet, "/admin", nil, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestAdminCreatesTaskAndNotifies(t *testing.T) {
	engine, stub := setupWeb(t)
	cookies := login(t, engine, "admin@example.com", "admin")

	w := do(engine, http.MethodPost, "/admin", url.Values{
		"staff_email": {"bob@x.com"},
		"task_name":   {"Fix bug"},
		"description": {"urgent"},
	}, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))

	// Exactly one notification attempt, addressed to the assignee and
	// carrying both the task name and the description
	require.Len(t, stub.calls, 1)
	assert.Equal(t, "bob@x.com", stub.calls[0].to)
	assert.Equal(t, "Fix bug", stub.calls[0].taskName)
	assert.Equal(t, "urgent", stub.calls[0].description)

	// Exactly one task, committed with status pending
	taskService := service.TaskService{}
	tasks, err := taskService.GetAllTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.TaskStatusPending, tasks[0].Status)
	assert.Equal(t, "bob@x.com", tasks[0].StaffEmail)
}

func TestTaskSurvivesNotificationFailure(t *testing.T) {
	engine, stub := setupWeb(t)
	stub.err = assert.AnError
	cookies := login(t, engine, "admin@example.com", "admin")

	w := do(engine, http.MethodPost, "/admin", url.Values{
		"staff_email": {"bob@x.com"},
		"task_name":   {"Fix bug"},
		"description": {"urgent"},
	}, cookies)

	// The failure is distinguishable, not an opaque error
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin?notify=failed", w.Header().Get("Location"))

	// The task stays committed
	taskService := service.TaskService{}
	tasks, err := taskService.GetAllTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	w = do(engine, http.MethodGet, "/admin?notify=failed", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "could not be sent")
}

func TestAdminCreateTaskAjaxReportsNotifyOutcome(t *testing.T) {
	engine, stub := setupWeb(t)
	stub.err = assert.AnError
	cookies := login(t, engine, "admin@example.com", "admin")

	form := url.Values{
		"staff_email": {"bob@x.com"},
		"task_name":   {"Fix bug"},
		"description": {"urgent"},
	}
	req := httptest.NewRequest(http.MethodPost, "/admin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"notified":false`)
	assert.Contains(t, w.Body.String(), `"notifyError"`)
}

func TestStaffSeesOnlyOwnTasks(t *testing.T) {
	engine, _ := setupWeb(t)
	register(t, engine, "Alice", "alice@x.com", "pw", "staff")

	taskService := service.TaskService{}
	_, err := taskService.CreateTask("alice@x.com", "Alice task", "for alice")
	require.NoError(t, err)
	_, err = taskService.CreateTask("bob@x.com", "Bob task", "for bob")
	require.NoError(t, err)

	cookies := login(t, engine, "alice@x.com", "pw")
	w := do(engine, http.MethodGet, "/staff", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice task")
	assert.NotContains(t, w.Body.String(), "Bob task")
}

func TestStaffUpdatesStatus(t *testing.T) {
	engine, _ := setupWeb(t)
	register(t, engine, "Alice", "alice@x.com", "pw", "staff")

	taskService := service.TaskService{}
	task, err := taskService.CreateTask("alice@x.com", "Alice task", "d")
	require.NoError(t, err)

	cookies := login(t, engine, "alice@x.com", "pw")
	w := do(engine, http.MethodPost, "/staff", url.Values{
		"task_id": {task.Id},
		"status":  {"blocked on review"},
	}, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/staff", w.Header().Get("Location"))

	tasks, err := taskService.GetTasksByStaff("alice@x.com")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "blocked on review", tasks[0].Status)
}

func TestStatusUpdateDoesNotCheckOwnership(t *testing.T) {
	engine, _ := setupWeb(t)
	register(t, engine, "Alice", "alice@x.com", "pw", "staff")
	register(t, engine, "Bob", "bob@x.com", "pw", "staff")

	taskService := service.TaskService{}
	task, err := taskService.CreateTask("alice@x.com", "Alice task", "d")
	require.NoError(t, err)

	// Bob updates Alice's task: the panel applies the write without
	// checking ownership, observed behavior of the system this replaces.
	cookies := login(t, engine, "bob@x.com", "pw")
	w := do(engine, http.MethodPost, "/staff", url.Values{
		"task_id": {task.Id},
		"status":  {"hijacked"},
	}, cookies)
	assert.Equal(t, http.StatusFound, w.Code)

	tasks, err := taskService.GetTasksByStaff("alice@x.com")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "hijacked", tasks[0].Status)
}

func TestLogoutClearsSession(t *testing.T) {
	engine, _ := setupWeb(t)
	cookies := login(t, engine, "admin@example.com", "admin")

	w := do(engine, http.MethodGet, "/logout", nil, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cookies = mergeCookies(cookies, w)
	w = do(engine, http.MethodGet, "/dashboard", nil, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// Logging out with no session is a no-op that still redirects
	w = do(engine, http.MethodGet, "/logout", nil, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
