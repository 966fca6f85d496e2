package meeting

import "time"

// CreateMeetingRequest is the payload for creating a meeting
type CreateMeetingRequest struct {
	Name               string                 `json:"name" validate:"required,min=1,max=255"`
	Description        *string                `json:"description,omitempty" validate:"omitempty,max=2000"`
	AgentID            *string                `json:"agent_id,omitempty" validate:"omitempty,uuid"`
	ScheduledStartTime *time.Time             `json:"scheduled_start_time,omitempty"`
	Settings           map[string]interface{} `json:"settings,omitempty"`
}

// UpdateMeetingRequest is the payload for updating meeting metadata
type UpdateMeetingRequest struct {
	Name        string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// JoinMeetingRequest is the payload for joining a meeting
type JoinMeetingRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=255"`
}

// ListMeetingsRequest captures list query parameters
type ListMeetingsRequest struct {
	Status    *string `query:"status" validate:"omitempty,oneof=scheduled active ended cancelled"`
	Search    string  `query:"search" validate:"omitempty,max=255"`
	Page      int     `query:"page" validate:"omitempty,min=1"`
	PageSize  int     `query:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string  `query:"sort_by" validate:"omitempty,oneof=created_at started_at name"`
	SortOrder string  `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}
