package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-vault/internal/middleware"
	"github.com/iliyamo/task-vault/internal/model"
	"github.com/iliyamo/task-vault/internal/queue"
	"github.com/iliyamo/task-vault/internal/repository"
	"github.com/iliyamo/task-vault/internal/validate"
	queue_publisher "github.com/iliyamo/task-vault/internal/service"
)

// TaskHandler bundles the task endpoints. All routes it serves sit
// behind the session guard, so every request arrives with a resolved
// user id and every repository call is scoped to that id.
type TaskHandler struct {
	Tasks         *repository.TaskRepo
	PublishEvents bool
}

func NewTaskHandler(tasks *repository.TaskRepo, publishEvents bool) *TaskHandler {
	return &TaskHandler{Tasks: tasks, PublishEvents: publishEvents}
}

type createTaskReq struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
}

// updateTaskReq uses pointers so "field absent" and "field set to zero
// value" stay distinguishable; only provided fields are patched.
type updateTaskReq struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
	Priority  *string `json:"priority"`
}

// List handles GET /tasks?filter=all|active|completed.
func (h *TaskHandler) List(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required", "redirect": "/login"})
	}

	filter := repository.Filter(c.QueryParam("filter"))
	if filter == "" {
		filter = repository.FilterAll
	}
	if !repository.ValidFilter(filter) {
		return c.JSON(http.StatusBadRequest, echo.Map{"violations": []validate.Violation{
			{Field: "filter", Message: "filter must be one of: all, active, completed"},
		}})
	}

	tasks, err := h.Tasks.List(c.Request().Context(), uid, filter)
	if err != nil {
		c.Logger().Errorf("tasks: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load tasks failed"})
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required", "redirect": "/login"})
	}
	var req createTaskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	err := validate.Run(ctx,
		validate.Length("title", req.Title, 1, 100),
		validate.OneOf("priority", req.Priority,
			string(model.PriorityLow), string(model.PriorityMedium), string(model.PriorityHigh)),
	)
	var verrs *validate.Errors
	if errors.As(err, &verrs) {
		return violationsJSON(c, verrs)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
	}

	task, err := h.Tasks.Create(ctx, uid, req.Title, model.Priority(req.Priority))
	if err != nil {
		c.Logger().Errorf("tasks: create: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cannot persist task"})
	}

	h.publish(queue.TaskCreated, task)
	return c.JSON(http.StatusCreated, task)
}

// Update handles PUT /tasks/:id.
func (h *TaskHandler) Update(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required", "redirect": "/login"})
	}
	id, err := taskID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
	}
	var req updateTaskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	// Validate only what was actually sent; a bare {"completed":true}
	// toggle must not trip the title rule.
	ctx := c.Request().Context()
	var rules []validate.Rule
	if req.Title != nil {
		rules = append(rules, validate.Length("title", *req.Title, 1, 100))
	}
	if req.Priority != nil {
		rules = append(rules, validate.OneOf("priority", *req.Priority,
			string(model.PriorityLow), string(model.PriorityMedium), string(model.PriorityHigh)))
	}
	verr := validate.Run(ctx, rules...)
	var verrs *validate.Errors
	if errors.As(verr, &verrs) {
		return violationsJSON(c, verrs)
	}
	if verr != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
	}

	patch := repository.TaskPatch{Title: req.Title, Completed: req.Completed}
	if req.Priority != nil {
		p := model.Priority(*req.Priority)
		patch.Priority = &p
	}

	task, err := h.Tasks.Update(ctx, uid, id, patch)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
	}
	if err != nil {
		c.Logger().Errorf("tasks: update: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cannot persist task"})
	}

	if req.Completed != nil && *req.Completed {
		h.publish(queue.TaskCompleted, task)
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /tasks/:id and returns the removed record.
func (h *TaskHandler) Delete(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required", "redirect": "/login"})
	}
	id, err := taskID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
	}

	task, err := h.Tasks.Delete(c.Request().Context(), uid, id)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
	}
	if err != nil {
		c.Logger().Errorf("tasks: delete: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cannot persist task"})
	}
	return c.JSON(http.StatusOK, task)
}

// taskID parses the :id route parameter. A non-numeric id maps to the
// same 404 a missing task produces.
func taskID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// publish fires a task event without blocking or failing the request.
// The goroutine is detached from the request context on purpose: the
// response has already been decided and the broker call may outlive it.
func (h *TaskHandler) publish(kind string, task model.Task) {
	if !h.PublishEvents {
		return
	}
	event := queue.NewTaskEvent(kind, task)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishTaskEvent(ctx, event)
	}()
}
