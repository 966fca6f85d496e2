package task

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-ai/errors"
	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
)

// Service handles task board updates on generated project plans
type Service struct {
	tasks repositories.TaskRepository
	plans repositories.PlanRepository
}

// NewService creates a task board service
func NewService(tasks repositories.TaskRepository, plans repositories.PlanRepository) *Service {
	return &Service{tasks: tasks, plans: plans}
}

// Board returns the normalized board of the latest plan of a meeting
func (s *Service) Board(ctx context.Context, meetingID uuid.UUID) (*entities.ProjectPlanDoc, []*entities.Phase, error) {
	plan, err := s.plans.FindLatestByMeeting(ctx, meetingID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.ErrNotFound("project plan")
		}
		return nil, nil, errors.ErrDBQuery(err)
	}

	phases, err := s.plans.ListPhases(ctx, plan.ID)
	if err != nil {
		return nil, nil, errors.ErrDBQuery(err)
	}
	return plan, phases, nil
}

// Get retrieves one task with its subtasks
func (s *Service) Get(ctx context.Context, taskID uuid.UUID) (*entities.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrTaskNotFound(taskID.String())
		}
		return nil, errors.ErrDBQuery(err)
	}
	return task, nil
}

// MoveStatus moves a task between board columns
func (s *Service) MoveStatus(ctx context.Context, taskID uuid.UUID, status entities.TaskStatus) (*entities.Task, error) {
	switch status {
	case entities.TaskStatusTodo, entities.TaskStatusInProgress, entities.TaskStatusDone:
	default:
		return nil, errors.ErrInvalidArgument("unknown task status")
	}

	if _, err := s.Get(ctx, taskID); err != nil {
		return nil, err
	}
	if err := s.tasks.UpdateStatus(ctx, taskID, status); err != nil {
		return nil, errors.ErrDBQuery(err)
	}
	return s.Get(ctx, taskID)
}

// Assign assigns a task to a user; nil unassigns
func (s *Service) Assign(ctx context.Context, taskID uuid.UUID, assigneeID *uuid.UUID) (*entities.Task, error) {
	if _, err := s.Get(ctx, taskID); err != nil {
		return nil, err
	}
	if err := s.tasks.UpdateAssignee(ctx, taskID, assigneeID); err != nil {
		return nil, errors.ErrDBQuery(err)
	}
	return s.Get(ctx, taskID)
}

// ToggleSubtask flips a subtask's done flag
func (s *Service) ToggleSubtask(ctx context.Context, subtaskID uuid.UUID, done bool) error {
	if err := s.tasks.UpdateSubtaskDone(ctx, subtaskID, done); err != nil {
		return errors.ErrDBQuery(err)
	}
	return nil
}
