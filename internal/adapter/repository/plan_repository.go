package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
)

// planRepository implements the PlanRepository interface
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new project plan repository
func NewPlanRepository(db *gorm.DB) repositories.PlanRepository {
	return &planRepository{db: db}
}

// SaveGeneratedPlan stores the denormalized plan blob and the normalized
// phase/task/subtask rows in one transaction. Tasks reference the
// generated phase row ids, not the document's phase labels. A failure at
// any step rolls back the whole plan.
func (r *planRepository) SaveGeneratedPlan(ctx context.Context, plan *entities.ProjectPlanDoc, doc *entities.PlanDocument) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plan).Error; err != nil {
			return err
		}

		for _, p := range doc.Phases {
			phase := &entities.Phase{
				MeetingID: plan.MeetingID,
				PlanID:    plan.ID,
				Name:      p.Name,
				Order:     p.Order,
				Color:     p.Color,
			}
			if err := tx.Create(phase).Error; err != nil {
				return err
			}

			for _, t := range p.Tasks {
				task := &entities.Task{
					PhaseID:        phase.ID,
					Title:          t.Title,
					Status:         entities.TaskStatusTodo,
					Priority:       t.Priority,
					EstimatedHours: t.EstimatedHours,
				}
				if t.Description != "" {
					desc := t.Description
					task.Description = &desc
				}
				if t.SuggestedAssignee != "" {
					assignee := t.SuggestedAssignee
					task.SuggestedAssignee = &assignee
				}
				if err := tx.Create(task).Error; err != nil {
					return err
				}

				for _, st := range t.Subtasks {
					subtask := &entities.Subtask{
						TaskID: task.ID,
						Title:  st.Title,
					}
					if err := tx.Create(subtask).Error; err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

// FindByID retrieves a plan row (document blob) by its ID
func (r *planRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ProjectPlanDoc, error) {
	var plan entities.ProjectPlanDoc
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindLatestByMeeting retrieves the most recent plan generated for a meeting
func (r *planRepository) FindLatestByMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.ProjectPlanDoc, error) {
	var plan entities.ProjectPlanDoc
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListPhases retrieves the normalized phases of a plan ordered by phase_order
func (r *planRepository) ListPhases(ctx context.Context, planID uuid.UUID) ([]*entities.Phase, error) {
	var phases []*entities.Phase
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.created_at ASC")
		}).
		Preload("Tasks.Subtasks").
		Where("plan_id = ?", planID).
		Order("phase_order ASC").
		Find(&phases).Error
	if err != nil {
		return nil, err
	}
	return phases, nil
}

// Delete removes a plan and its normalized rows
func (r *planRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var phaseIDs []uuid.UUID
		if err := tx.Model(&entities.Phase{}).
			Where("plan_id = ?", id).
			Pluck("id", &phaseIDs).Error; err != nil {
			return err
		}

		if len(phaseIDs) > 0 {
			var taskIDs []uuid.UUID
			if err := tx.Model(&entities.Task{}).
				Where("phase_id IN ?", phaseIDs).
				Pluck("id", &taskIDs).Error; err != nil {
				return err
			}
			if len(taskIDs) > 0 {
				if err := tx.Delete(&entities.Subtask{}, "task_id IN ?", taskIDs).Error; err != nil {
					return err
				}
				if err := tx.Delete(&entities.Task{}, "id IN ?", taskIDs).Error; err != nil {
					return err
				}
			}
			if err := tx.Delete(&entities.Phase{}, "id IN ?", phaseIDs).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entities.ProjectPlanDoc{}, "id = ?", id).Error
	})
}
