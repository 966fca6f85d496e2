package agent

import "time"

// CreateAgentRequest is the payload for creating an agent persona
type CreateAgentRequest struct {
	Name        string                 `json:"name" validate:"required,min=1,max=255"`
	Personality string                 `json:"personality" validate:"omitempty,max=4000"`
	Voice       string                 `json:"voice" validate:"omitempty,max=100"`
	Model       string                 `json:"model" validate:"omitempty,max=100"`
	Settings    map[string]interface{} `json:"settings,omitempty"`
}

// UpdateAgentRequest is the payload for updating an agent persona
type UpdateAgentRequest = CreateAgentRequest

// AgentResponse is the API shape of an agent persona
type AgentResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Personality string    `json:"personality"`
	Voice       string    `json:"voice"`
	Model       string    `json:"model"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
