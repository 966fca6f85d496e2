package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
)

// PlanRepository defines the interface for project plan data access.
// SaveGeneratedPlan persists the denormalized document and the normalized
// phase/task/subtask rows in one transaction so readers never observe a
// plan with half its rows.
type PlanRepository interface {
	// SaveGeneratedPlan stores the plan document blob and its normalized rows atomically
	SaveGeneratedPlan(ctx context.Context, plan *entities.ProjectPlanDoc, doc *entities.PlanDocument) error

	// FindByID retrieves a plan row (document blob) by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ProjectPlanDoc, error)

	// FindLatestByMeeting retrieves the most recent plan generated for a meeting
	FindLatestByMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.ProjectPlanDoc, error)

	// ListPhases retrieves the normalized phases of a plan ordered by phase_order
	ListPhases(ctx context.Context, planID uuid.UUID) ([]*entities.Phase, error)

	// Delete removes a plan and its normalized rows
	Delete(ctx context.Context, id uuid.UUID) error
}
