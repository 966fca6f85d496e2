package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
)

// TaskRepository defines the interface for task board data access
type TaskRepository interface {
	// FindByID retrieves a task with its subtasks
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)

	// ListByPhase retrieves all tasks of a phase
	ListByPhase(ctx context.Context, phaseID uuid.UUID) ([]*entities.Task, error)

	// Update updates a task row
	Update(ctx context.Context, task *entities.Task) error

	// UpdateStatus moves a task between board columns
	UpdateStatus(ctx context.Context, taskID uuid.UUID, status entities.TaskStatus) error

	// UpdateAssignee changes who the task is assigned to; nil unassigns
	UpdateAssignee(ctx context.Context, taskID uuid.UUID, assigneeID *uuid.UUID) error

	// UpdateSubtaskDone toggles a subtask's completion flag
	UpdateSubtaskDone(ctx context.Context, subtaskID uuid.UUID, done bool) error
}
