package presenter

import (
	"encoding/json"

	planDTO "github.com/collabsphere/collabsphere-ai/internal/adapter/dto/plan"
	taskDTO "github.com/collabsphere/collabsphere-ai/internal/adapter/dto/task"
	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
)

// ToPlanResponse converts a stored plan row to its API shape, decoding
// the document blob
func ToPlanResponse(plan *entities.ProjectPlanDoc) *planDTO.PlanResponse {
	if plan == nil {
		return nil
	}

	var doc entities.PlanDocument
	if len(plan.Document) > 0 {
		_ = json.Unmarshal(plan.Document, &doc)
	}

	return &planDTO.PlanResponse{
		ID:          plan.ID.String(),
		MeetingID:   plan.MeetingID.String(),
		GeneratedBy: string(plan.GeneratedBy),
		Document:    &doc,
		CreatedAt:   plan.CreatedAt,
	}
}

// ToTaskResponse converts a task row with subtasks to its API shape
func ToTaskResponse(t *entities.Task) taskDTO.TaskResponse {
	resp := taskDTO.TaskResponse{
		ID:                t.ID.String(),
		PhaseID:           t.PhaseID.String(),
		Title:             t.Title,
		Description:       t.Description,
		Status:            string(t.Status),
		Priority:          t.Priority,
		EstimatedHours:    t.EstimatedHours,
		SuggestedAssignee: t.SuggestedAssignee,
		Subtasks:          make([]taskDTO.SubtaskResponse, 0, len(t.Subtasks)),
		CreatedAt:         t.CreatedAt,
	}
	if t.AssigneeID != nil {
		id := t.AssigneeID.String()
		resp.AssigneeID = &id
	}
	for _, st := range t.Subtasks {
		resp.Subtasks = append(resp.Subtasks, taskDTO.SubtaskResponse{
			ID:    st.ID.String(),
			Title: st.Title,
			Done:  st.Done,
		})
	}
	return resp
}

// ToBoardResponse converts a plan and its normalized phases to the board shape
func ToBoardResponse(plan *entities.ProjectPlanDoc, phases []*entities.Phase) *taskDTO.BoardResponse {
	if plan == nil {
		return nil
	}

	board := &taskDTO.BoardResponse{
		PlanID:      plan.ID.String(),
		MeetingID:   plan.MeetingID.String(),
		GeneratedBy: string(plan.GeneratedBy),
		Phases:      make([]taskDTO.PhaseResponse, 0, len(phases)),
		CreatedAt:   plan.CreatedAt,
	}

	for _, p := range phases {
		phase := taskDTO.PhaseResponse{
			ID:    p.ID.String(),
			Name:  p.Name,
			Order: p.Order,
			Color: p.Color,
			Tasks: make([]taskDTO.TaskResponse, 0, len(p.Tasks)),
		}
		for i := range p.Tasks {
			phase.Tasks = append(phase.Tasks, ToTaskResponse(&p.Tasks[i]))
		}
		board.Phases = append(board.Phases, phase)
	}
	return board
}
