package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type handlerTestEnv struct {
	db             *gorm.DB
	router         *gin.Engine
	projectService *services.ProjectService
	columnService  *services.ColumnService
	taskService    *services.TaskService
	authService    *services.AuthService
}

// setupHandlerTest builds the full route tree against an in-memory database.
// Requests authenticate with a cookie session, same as production.
func setupHandlerTest(t *testing.T) *handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Column{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	columnService := services.NewColumnService(columnRepo)
	taskService := services.NewTaskService(taskRepo, columnRepo, userRepo)

	authHandler := NewAuthHandler(authService)
	projectHandler := NewProjectHandler(projectService)
	columnHandler := NewColumnHandler(columnService)
	taskHandler := NewTaskHandler(taskService)

	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions(constants.SessionCookieName, store))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)

			access := middleware.RequireProjectAccess(projectService)

			projects.GET("/:id", access, projectHandler.GetProject)
			projects.PUT("/:id", access, projectHandler.UpdateProject)
			projects.DELETE("/:id", access, projectHandler.DeleteProject)
			projects.PUT("/:id/un-assign", access, projectHandler.UnassignUsers)
			projects.POST("/:id/members/toggle", access, projectHandler.ToggleMember)
			projects.PUT("/:id/order-columns", access, columnHandler.ReorderColumns)

			projects.GET("/:id/columns", access, columnHandler.ListColumns)
			projects.POST("/:id/columns", access, columnHandler.CreateColumn)
			projects.PATCH("/:id/columns/:column_id", access, columnHandler.UpdateColumn)
			projects.DELETE("/:id/columns/:column_id", access, columnHandler.DeleteColumn)

			projects.GET("/:id/tasks", access, taskHandler.ListTasks)
			projects.POST("/:id/tasks", access, taskHandler.CreateTask)
			projects.GET("/:id/tasks/:task_id", access, taskHandler.GetTask)
			projects.PATCH("/:id/tasks/:task_id", access, taskHandler.UpdateTask)
			projects.DELETE("/:id/tasks/:task_id", access, taskHandler.DeleteTask)
			projects.POST("/:id/tasks/:task_id/assign/:user_id", access, taskHandler.AssignUser)
			projects.POST("/:id/tasks/:task_id/unassign/:user_id", access, taskHandler.UnassignUser)
		}
	}

	return &handlerTestEnv{
		db:             db,
		router:         router,
		projectService: projectService,
		columnService:  columnService,
		taskService:    taskService,
		authService:    authService,
	}
}

// signupAndLogin registers a user and returns the user plus the session
// cookies a logged-in client would carry.
func (env *handlerTestEnv) signupAndLogin(t *testing.T, username string) (*models.User, []*http.Cookie) {
	t.Helper()

	user, err := env.authService.Signup(services.SignupInput{
		Username: username,
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	body, _ := json.Marshal(gin.H{"username": username, "password": "supersecret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	return user, w.Result().Cookies()
}

// doJSON performs an authenticated JSON request against the router.
func (env *handlerTestEnv) doJSON(t *testing.T, method, path string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
