package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-vault/internal/handler"
	"github.com/iliyamo/task-vault/internal/middleware"
	"github.com/iliyamo/task-vault/internal/repository"
	"github.com/iliyamo/task-vault/internal/session"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring hit this to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the account endpoints. Register, login and logout
// stay public: logout is idempotent and must succeed even with a dead
// session, so it does not sit behind the guard. /me does, since it has
// nothing to say to an anonymous caller.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, sessions session.Store, users *repository.UserRepo) {
	e.POST("/register", a.Register)
	e.POST("/login", a.Login)
	e.GET("/logout", a.Logout)

	// The guard resolves the session cookie (or bearer token), checks
	// that the referenced user still exists and injects the user id
	// into the request context before the handler runs.
	e.GET("/me", a.Me, middleware.SessionAuth(sessions, users))
}

// RegisterTasks wires the task CRUD endpoints. Every route is guarded;
// the handlers never see an anonymous request.
func RegisterTasks(e *echo.Echo, t *handler.TaskHandler, sessions session.Store, users *repository.UserRepo) {
	g := e.Group("/tasks")
	g.Use(middleware.SessionAuth(sessions, users))
	g.GET("", t.List)
	g.POST("", t.Create)
	g.PUT("/:id", t.Update)
	g.DELETE("/:id", t.Delete)
}
