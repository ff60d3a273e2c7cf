package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/miyako/todoweb/internal/constants"
	"github.com/miyako/todoweb/internal/flash"
	"github.com/miyako/todoweb/internal/middleware"
	"github.com/miyako/todoweb/internal/services"
)

// TodoHandler serves the dashboard and the todo CRUD routes. All routes are
// mounted behind middleware.RequireAuth.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// Dashboard lists the user's todos, optionally filtered by the q parameter.
func (h *TodoHandler) Dashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		redirectToLogin(c)
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	todos, err := h.todoService.ListTodos(userID, query)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load tasks")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"todos":    todos,
		"q":        query,
		"username": sessions.Default(c).Get(constants.SessionKeyUsername),
		"flashes":  flash.Pop(c),
	})
}

// ShowCreate renders the empty task form.
func (h *TodoHandler) ShowCreate(c *gin.Context) {
	c.HTML(http.StatusOK, "task_form.html", gin.H{
		"action":  "Add",
		"task":    nil,
		"flashes": flash.Pop(c),
	})
}

// Create adds a new todo from the submitted form.
func (h *TodoHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		redirectToLogin(c)
		return
	}

	dueDate, err := parseDueDate(c.PostForm("due_date"))
	if err != nil {
		flash.Add(c, flash.CategoryDanger, "Invalid due date.")
		c.Redirect(http.StatusFound, "/todos/new")
		return
	}

	if _, err := h.todoService.CreateTodo(services.CreateTodoInput{
		UserID:      userID,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		DueDate:     dueDate,
	}); err != nil {
		if errors.Is(err, services.ErrTitleRequired) {
			flash.Add(c, flash.CategoryDanger, "Title is required.")
			c.Redirect(http.StatusFound, "/todos/new")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to create task")
		return
	}

	flash.Add(c, flash.CategorySuccess, "Task added.")
	c.Redirect(http.StatusFound, "/")
}

// ShowEdit renders the task form pre-filled with one of the user's todos.
func (h *TodoHandler) ShowEdit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		redirectToLogin(c)
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	todo, err := h.todoService.GetTodo(userID, todoID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.HTML(http.StatusOK, "task_form.html", gin.H{
		"action":  "Edit",
		"task":    todo,
		"flashes": flash.Pop(c),
	})
}

// Edit updates one of the user's todos from the submitted form.
func (h *TodoHandler) Edit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		redirectToLogin(c)
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	editPath := "/todos/" + strconv.FormatUint(todoID, 10) + "/edit"

	dueDate, err := parseDueDate(c.PostForm("due_date"))
	if err != nil {
		flash.Add(c, flash.CategoryDanger, "Invalid due date.")
		c.Redirect(http.StatusFound, editPath)
		return
	}

	if _, err := h.todoService.UpdateTodo(userID, todoID, services.UpdateTodoInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		DueDate:     dueDate,
		Done:        c.PostForm("done") == "on",
	}); err != nil {
		if errors.Is(err, services.ErrTitleRequired) {
			flash.Add(c, flash.CategoryDanger, "Title is required.")
			c.Redirect(http.StatusFound, editPath)
			return
		}
		respondTodoError(c, err)
		return
	}

	flash.Add(c, flash.CategorySuccess, "Task updated.")
	c.Redirect(http.StatusFound, "/")
}

// Delete removes one of the user's todos. Deleting an absent or foreign todo
// is a silent no-op, so the redirect and flash happen either way.
func (h *TodoHandler) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		redirectToLogin(c)
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	if err := h.todoService.DeleteTodo(userID, todoID); err != nil {
		c.String(http.StatusInternalServerError, "Failed to delete task")
		return
	}

	flash.Add(c, flash.CategoryInfo, "Task deleted.")
	c.Redirect(http.StatusFound, "/")
}

// Toggle flips the done flag on one of the user's todos.
func (h *TodoHandler) Toggle(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		redirectToLogin(c)
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	if _, err := h.todoService.ToggleTodo(userID, todoID); err != nil {
		respondTodoError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
}

// parseTodoID reads the :id route parameter. A malformed ID is reported as
// not found, the same as a missing row.
func parseTodoID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "404 Not Found")
		return 0, false
	}
	return id, true
}

// parseDueDate converts the due_date form field to a nullable date. An empty
// field means no due date.
func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(constants.DueDateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func respondTodoError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrTodoNotFound) {
		c.String(http.StatusNotFound, "404 Not Found")
		return
	}
	c.String(http.StatusInternalServerError, "Internal server error")
}
