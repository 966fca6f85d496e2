package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
)

// taskRepository implements the TaskRepository interface
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task board repository
func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &taskRepository{db: db}
}

// FindByID retrieves a task with its subtasks
func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	var task entities.Task
	err := r.db.WithContext(ctx).
		Preload("Subtasks").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByPhase retrieves all tasks of a phase
func (r *taskRepository) ListByPhase(ctx context.Context, phaseID uuid.UUID) ([]*entities.Task, error) {
	var tasks []*entities.Task
	err := r.db.WithContext(ctx).
		Preload("Subtasks").
		Where("phase_id = ?", phaseID).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task row
func (r *taskRepository) Update(ctx context.Context, task *entities.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// UpdateStatus moves a task between board columns
func (r *taskRepository) UpdateStatus(ctx context.Context, taskID uuid.UUID, status entities.TaskStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// UpdateAssignee changes who the task is assigned to; nil unassigns
func (r *taskRepository) UpdateAssignee(ctx context.Context, taskID uuid.UUID, assigneeID *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"assignee_id": assigneeID,
			"updated_at":  time.Now(),
		}).Error
}

// UpdateSubtaskDone toggles a subtask's completion flag
func (r *taskRepository) UpdateSubtaskDone(ctx context.Context, subtaskID uuid.UUID, done bool) error {
	return r.db.WithContext(ctx).
		Model(&entities.Subtask{}).
		Where("id = ?", subtaskID).
		Updates(map[string]interface{}{
			"done":       done,
			"updated_at": time.Now(),
		}).Error
}
