package repositories

import (
	"context"

	"taskflow/internal/models"

	"gorm.io/gorm"
)

// TaskRepository translates task operations into parameterized SQL against
// the store. Absence is reported as gorm.ErrRecordNotFound; callers decide
// whether that is a 404.
type TaskRepository interface {
	List(ctx context.Context) ([]models.Task, error)
	GetByID(ctx context.Context, id int64) (models.Task, error)
	Insert(ctx context.Context, input models.CreateTaskInput) (models.Task, error)
	Patch(ctx context.Context, id int64, input models.UpdateTaskInput) (models.Task, error)
	Remove(ctx context.Context, id int64) (bool, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// List returns all tasks, most recent first. Ties on created_at fall back
// to id so the order stays deterministic within one timestamp tick.
func (r *taskRepository) List(ctx context.Context) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).First(&task, id).Error
	return task, err
}

// Insert forces status to todo; a missing assignee is stored as NULL.
// The returned task carries the store-assigned id and timestamps, with
// created_at == updated_at.
func (r *taskRepository) Insert(ctx context.Context, input models.CreateTaskInput) (models.Task, error) {
	task := models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.StatusTodo,
		Assignee:    input.Assignee,
	}
	if err := r.db.WithContext(ctx).Create(&task).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// Patch updates only the columns present in input, in a single parameterized
// statement that also refreshes updated_at. An empty patch returns the row
// untouched. The column map is assembled from known fields only; user input
// never reaches the SQL text.
func (r *taskRepository) Patch(ctx context.Context, id int64, input models.UpdateTaskInput) (models.Task, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	updates := make(map[string]any, 4)
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Assignee.Set {
		updates["assignee"] = input.Assignee.Value
	}
	if len(updates) == 0 {
		return existing, nil
	}

	err = r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return models.Task{}, err
	}
	return r.GetByID(ctx, id)
}

// Remove hard-deletes the row and reports whether anything was deleted.
func (r *taskRepository) Remove(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
