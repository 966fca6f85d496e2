package plan

import (
	"time"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
)

// GeneratePlanRequest triggers plan generation from a meeting transcript
type GeneratePlanRequest struct {
	MeetingName string `json:"meeting_name,omitempty" validate:"omitempty,max=255"`
}

// PlanResponse is the API shape of a generated project plan
type PlanResponse struct {
	ID          string                 `json:"id"`
	MeetingID   string                 `json:"meeting_id"`
	GeneratedBy string                 `json:"generated_by"`
	Document    *entities.PlanDocument `json:"document"`
	CreatedAt   time.Time              `json:"created_at"`
}
