package task

import "time"

// MoveTaskRequest moves a task between board columns
type MoveTaskRequest struct {
	Status string `json:"status" validate:"required,oneof=todo in_progress done"`
}

// AssignTaskRequest assigns or unassigns a task
type AssignTaskRequest struct {
	AssigneeID *string `json:"assignee_id,omitempty" validate:"omitempty,uuid"`
}

// ToggleSubtaskRequest flips a subtask's done flag
type ToggleSubtaskRequest struct {
	Done bool `json:"done"`
}

// SubtaskResponse is the API shape of a subtask
type SubtaskResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// TaskResponse is the API shape of a board task
type TaskResponse struct {
	ID                string            `json:"id"`
	PhaseID           string            `json:"phase_id"`
	Title             string            `json:"title"`
	Description       *string           `json:"description,omitempty"`
	Status            string            `json:"status"`
	Priority          string            `json:"priority"`
	EstimatedHours    float64           `json:"estimated_hours"`
	SuggestedAssignee *string           `json:"suggested_assignee,omitempty"`
	AssigneeID        *string           `json:"assignee_id,omitempty"`
	Subtasks          []SubtaskResponse `json:"subtasks"`
	CreatedAt         time.Time         `json:"created_at"`
}

// PhaseResponse is the API shape of a board phase
type PhaseResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Order int            `json:"order"`
	Color string         `json:"color"`
	Tasks []TaskResponse `json:"tasks"`
}

// BoardResponse is the normalized task board of a meeting's latest plan
type BoardResponse struct {
	PlanID      string          `json:"plan_id"`
	MeetingID   string          `json:"meeting_id"`
	GeneratedBy string          `json:"generated_by"`
	Phases      []PhaseResponse `json:"phases"`
	CreatedAt   time.Time       `json:"created_at"`
}
