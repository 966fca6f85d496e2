package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlanGenerator identifies which path produced a project plan
type PlanGenerator string

const (
	PlanGeneratorGroq     PlanGenerator = "groq"
	PlanGeneratorFallback PlanGenerator = "fallback"
)

// PlanDocument is the denormalized project plan generated from a transcript.
// It is persisted as one JSONB blob and additionally normalized into
// Phase/Task/Subtask rows.
type PlanDocument struct {
	Phases             []PlanPhase      `json:"phases"`
	SuggestedAssignees []PlanAssignee   `json:"suggestedAssignees"`
	WorkloadAnalysis   WorkloadAnalysis `json:"workloadAnalysis"`
}

// PlanPhase is one ordered phase of the generated plan
type PlanPhase struct {
	Name  string     `json:"name"`
	Order int        `json:"order"`
	Color string     `json:"color"`
	Tasks []PlanTask `json:"tasks"`
}

// PlanTask is a task inside a phase
type PlanTask struct {
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	Priority          string        `json:"priority"`
	EstimatedHours    float64       `json:"estimatedHours"`
	SuggestedAssignee string        `json:"suggestedAssignee,omitempty"`
	Subtasks          []PlanSubtask `json:"subtasks"`
}

// PlanSubtask is a checklist item inside a task
type PlanSubtask struct {
	Title string `json:"title"`
}

// PlanAssignee is a suggested assignee with the reason they were picked
type PlanAssignee struct {
	Name      string `json:"name"`
	Reasoning string `json:"reasoning,omitempty"`
}

// WorkloadAnalysis summarizes the generated plan's workload
type WorkloadAnalysis struct {
	TotalTasks           int               `json:"totalTasks"`
	EstimatedTotalHours  float64           `json:"estimatedTotalHours"`
	WorkloadDistribution map[string]string `json:"workloadDistribution,omitempty"`
	Recommendations      []string          `json:"recommendations,omitempty"`
}

// TotalTaskCount counts tasks across all phases
func (d *PlanDocument) TotalTaskCount() int {
	n := 0
	for _, p := range d.Phases {
		n += len(p.Tasks)
	}
	return n
}

// TotalEstimatedHours sums estimated hours across all tasks
func (d *PlanDocument) TotalEstimatedHours() float64 {
	var h float64
	for _, p := range d.Phases {
		for _, t := range p.Tasks {
			h += t.EstimatedHours
		}
	}
	return h
}

// ProjectPlanDoc is the persisted denormalized plan row
type ProjectPlanDoc struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Meeting     *Meeting       `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"meeting,omitempty"`
	Document    datatypes.JSON `gorm:"type:jsonb;not null" json:"document"`
	GeneratedBy PlanGenerator  `gorm:"type:varchar(20);not null" json:"generated_by"`
	CreatedAt   time.Time      `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for ProjectPlanDoc
func (ProjectPlanDoc) TableName() string {
	return "project_plans"
}

// Phase is a normalized plan phase row
type Phase struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID uuid.UUID       `gorm:"type:uuid;not null;index" json:"meeting_id"`
	PlanID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"plan_id"`
	Plan      *ProjectPlanDoc `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"plan,omitempty"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Order     int             `gorm:"column:phase_order;not null" json:"order"`
	Color     string          `gorm:"type:varchar(20);not null" json:"color"`
	CreatedAt time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time       `gorm:"default:now()" json:"updated_at"`

	Tasks []Task `gorm:"foreignKey:PhaseID" json:"tasks,omitempty"`
}

// TableName specifies the table name for Phase
func (Phase) TableName() string {
	return "phases"
}

// TaskStatus represents the board state of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Task is a normalized plan task row. PhaseID references the generated
// phase row id, never the LLM's arbitrary phase label.
type Task struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PhaseID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"phase_id"`
	Phase             *Phase     `gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE" json:"phase,omitempty"`
	Title             string     `gorm:"type:varchar(255);not null" json:"title"`
	Description       *string    `gorm:"type:text" json:"description,omitempty"`
	Status            TaskStatus `gorm:"type:varchar(20);default:'todo';index" json:"status"`
	Priority          string     `gorm:"type:varchar(20);default:'medium'" json:"priority"`
	EstimatedHours    float64    `gorm:"default:0" json:"estimated_hours"`
	SuggestedAssignee *string    `gorm:"type:varchar(255)" json:"suggested_assignee,omitempty"`
	AssigneeID        *uuid.UUID `gorm:"type:uuid;index" json:"assignee_id,omitempty"`
	Assignee          *User      `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	CreatedAt         time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"default:now()" json:"updated_at"`

	Subtasks []Subtask `gorm:"foreignKey:TaskID" json:"subtasks,omitempty"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// Subtask is a normalized checklist item row
type Subtask struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
	Task      *Task     `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"task,omitempty"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Done      bool      `gorm:"default:false" json:"done"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Subtask
func (Subtask) TableName() string {
	return "subtasks"
}
