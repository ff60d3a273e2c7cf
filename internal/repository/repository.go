package repository

import (
	"github.com/miyako/todoweb/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by exact username match
	FindByUsername(username string) (*models.User, error)
}

// TodoFilter holds filtering options for listing todos
type TodoFilter struct {
	// UserID scopes the listing to one owner. Required.
	UserID uint64

	// Query, when non-empty, restricts results to todos whose title or
	// description contains it as a substring.
	Query string
}

// TodoRepository defines the interface for todo data access.
// Every operation that names a todo is scoped to its owner: a todo ID that
// belongs to another user behaves exactly like a missing ID.
type TodoRepository interface {
	// Create creates a new todo
	Create(todo *models.Todo) error

	// FindByOwner finds a todo by ID, restricted to the given owner
	FindByOwner(userID, id uint64) (*models.Todo, error)

	// List retrieves all todos matching the filter, incomplete first,
	// newest first within each group
	List(filter TodoFilter) ([]models.Todo, error)

	// Update updates a todo
	Update(todo *models.Todo) error

	// Delete deletes the todo if owned by userID; deleting a missing or
	// foreign todo is a no-op
	Delete(userID, id uint64) error
}
