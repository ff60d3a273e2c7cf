package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/miyako/todoweb/internal/models"
	"github.com/miyako/todoweb/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTodoNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("title is required")
)

// TodoService handles todo business logic. Every method takes the
// authenticated user's ID explicitly and scopes all data access to it.
type TodoService struct {
	todoRepo repository.TodoRepository
}

// NewTodoService creates a new TodoService
func NewTodoService(todoRepo repository.TodoRepository) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
	}
}

// ListTodos returns the user's todos, incomplete first, newest first within
// each group. A non-empty query restricts the listing to todos whose title or
// description contains it.
func (s *TodoService) ListTodos(userID uint64, query string) ([]models.Todo, error) {
	todos, err := s.todoRepo.List(repository.TodoFilter{
		UserID: userID,
		Query:  strings.TrimSpace(query),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// GetTodo returns one of the user's todos. A todo owned by someone else is
// reported as not found.
func (s *TodoService) GetTodo(userID, todoID uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByOwner(userID, todoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	return todo, nil
}

// CreateTodoInput represents input for creating a todo
type CreateTodoInput struct {
	UserID      uint64
	Title       string
	Description string
	DueDate     *time.Time
}

// CreateTodo creates a new todo for the user
func (s *TodoService) CreateTodo(input CreateTodoInput) (*models.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	todo := &models.Todo{
		UserID:      input.UserID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		DueDate:     input.DueDate,
		Done:        false,
	}

	if err := s.todoRepo.Create(todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

// UpdateTodoInput represents input for updating a todo
type UpdateTodoInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Done        bool
}

// UpdateTodo replaces the mutable fields of one of the user's todos. A nil
// DueDate clears any stored date.
func (s *TodoService) UpdateTodo(userID, todoID uint64, input UpdateTodoInput) (*models.Todo, error) {
	todo, err := s.GetTodo(userID, todoID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	todo.Title = title
	todo.Description = strings.TrimSpace(input.Description)
	todo.DueDate = input.DueDate
	todo.Done = input.Done

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

// DeleteTodo deletes one of the user's todos. Deleting a todo that does not
// exist, or that belongs to someone else, is a silent no-op.
func (s *TodoService) DeleteTodo(userID, todoID uint64) error {
	if err := s.todoRepo.Delete(userID, todoID); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

// ToggleTodo flips the done flag on one of the user's todos
func (s *TodoService) ToggleTodo(userID, todoID uint64) (*models.Todo, error) {
	todo, err := s.GetTodo(userID, todoID)
	if err != nil {
		return nil, err
	}

	todo.Done = !todo.Done

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, fmt.Errorf("failed to toggle todo: %w", err)
	}

	return todo, nil
}
