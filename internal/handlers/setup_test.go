package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"todo-list-api/internal/auth"
	"todo-list-api/internal/middleware"
	"todo-list-api/internal/models"
	"todo-list-api/internal/progress"
	"todo-list-api/internal/realtime"
	"todo-list-api/internal/service"
	"todo-list-api/internal/store"
	"todo-list-api/internal/testutil"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	tokens := auth.NewTokenManager("test-secret", "todo-list-api", "todo-list-clients")
	users := store.NewUserStore(db)
	tasks := store.NewTaskStore(db)
	subtasks := store.NewSubtaskStore(db)
	reconciler := progress.NewReconciler(tasks, subtasks)
	hub := realtime.NewHub()

	taskHandler := NewTaskHandler(service.NewTaskService(db, tasks, reconciler), hub)
	subtaskHandler := NewSubtaskHandler(service.NewSubtaskService(db, tasks, subtasks, reconciler), hub)
	authHandler := NewAuthHandler(users, tokens)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/signin", authHandler.Signin)

	protected := api.Group("")
	protected.Use(middleware.NewAuth(tokens, users).Handler())
	protected.GET("/tasks", taskHandler.List)
	protected.GET("/tasks/:task_id", taskHandler.Get)
	protected.POST("/tasks", taskHandler.Create)
	protected.PUT("/tasks/:task_id", taskHandler.Update)
	protected.PATCH("/tasks/:task_id/status", taskHandler.UpdateStatus)
	protected.DELETE("/tasks/:task_id", taskHandler.Delete)
	protected.POST("/tasks/:task_id/subtasks", subtaskHandler.Create)
	protected.GET("/tasks/:task_id/subtasks", subtaskHandler.List)
	protected.PUT("/tasks/:task_id/subtasks/:subtask_id", subtaskHandler.Update)
	protected.PATCH("/tasks/:task_id/subtasks/:subtask_id/status", subtaskHandler.UpdateStatus)
	protected.DELETE("/tasks/:task_id/subtasks/:subtask_id", subtaskHandler.Delete)

	return &testEnv{db: db, router: r, tokens: tokens}
}

// seedUser registers a user directly and returns a valid token for it.
func (e *testEnv) seedUser(t *testing.T, username string) (models.User, string) {
	t.Helper()
	hashed, err := auth.HashPassword("secret")
	require.NoError(t, err)
	user := models.User{Username: username, Email: username + "@example.com", Password: hashed}
	require.NoError(t, e.db.Create(&user).Error)

	token, err := e.tokens.Generate(user.ID, user.Username)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}
