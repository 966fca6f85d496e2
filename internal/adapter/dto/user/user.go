package user

import (
	"encoding/json"
	"time"
)

// UpdateProfileRequest represents the editable profile fields
type UpdateProfileRequest struct {
	Name               string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	AvatarURL          *string         `json:"avatar_url,omitempty" validate:"omitempty,url,max=500"`
	Timezone           string          `json:"timezone,omitempty" validate:"omitempty,max=50"`
	Language           string          `json:"language,omitempty" validate:"omitempty,max=10"`
	MeetingPreferences json.RawMessage `json:"meeting_preferences,omitempty"`
}

// UserResponse represents user profile data in responses
type UserResponse struct {
	ID                 string          `json:"id"`
	Email              string          `json:"email"`
	Name               string          `json:"name"`
	Role               string          `json:"role"`
	AvatarURL          *string         `json:"avatar_url,omitempty"`
	Timezone           string          `json:"timezone"`
	Language           string          `json:"language"`
	MeetingPreferences json.RawMessage `json:"meeting_preferences,omitempty"`
	LastActiveAt       *time.Time      `json:"last_active_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}
