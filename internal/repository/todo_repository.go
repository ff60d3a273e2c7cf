package repository

import (
	"github.com/miyako/todoweb/internal/models"
	"gorm.io/gorm"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// Create creates a new todo
func (r *GormTodoRepository) Create(todo *models.Todo) error {
	return r.db.Create(todo).Error
}

// FindByOwner finds a todo by ID, restricted to the given owner
func (r *GormTodoRepository) FindByOwner(userID, id uint64) (*models.Todo, error) {
	var todo models.Todo
	if err := r.db.Where("user_id = ?", userID).First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// List retrieves todos for one owner, optionally filtered by a substring
// match on title or description
func (r *GormTodoRepository) List(filter TodoFilter) ([]models.Todo, error) {
	query := r.db.Where("user_id = ?", filter.UserID)

	if filter.Query != "" {
		// LIKE metacharacters in the search string are passed through
		// unescaped, so % and _ act as wildcards.
		like := "%" + filter.Query + "%"
		query = query.Where("(title LIKE ? OR description LIKE ?)", like, like)
	}

	var todos []models.Todo
	if err := query.Order("done ASC, created_at DESC").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// Update updates a todo
func (r *GormTodoRepository) Update(todo *models.Todo) error {
	return r.db.Save(todo).Error
}

// Delete deletes a todo owned by userID; zero affected rows is not an error
func (r *GormTodoRepository) Delete(userID, id uint64) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Todo{}, id).Error
}
