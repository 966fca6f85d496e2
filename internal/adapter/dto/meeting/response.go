package meeting

import (
	"time"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
)

// MeetingResponse is the API shape of a meeting
type MeetingResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Description        *string    `json:"description,omitempty"`
	HostID             string     `json:"host_id"`
	AgentID            *string    `json:"agent_id,omitempty"`
	Status             string     `json:"status"`
	LivekitRoomName    string     `json:"livekit_room_name"`
	ScheduledStartTime *time.Time `json:"scheduled_start_time,omitempty"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	EndedAt            *time.Time `json:"ended_at,omitempty"`
	Duration           *int       `json:"duration,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// JoinMeetingResponse carries the LiveKit access credentials for a participant
type JoinMeetingResponse struct {
	Meeting     *MeetingResponse     `json:"meeting"`
	Participant *ParticipantResponse `json:"participant"`
	AccessToken string               `json:"access_token"`
	LivekitURL  string               `json:"livekit_url"`
}

// ParticipantResponse is the API shape of a meeting participant
type ParticipantResponse struct {
	ID          string     `json:"id"`
	MeetingID   string     `json:"meeting_id"`
	UserID      *string    `json:"user_id,omitempty"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	DisplayName string     `json:"display_name"`
	JoinedAt    *time.Time `json:"joined_at,omitempty"`
	LeftAt      *time.Time `json:"left_at,omitempty"`
}

// SummaryResponse is the API shape of a meeting summary with insights
type SummaryResponse struct {
	SummaryText string                     `json:"summary_text"`
	Insights    *entities.InsightsPayload  `json:"insights,omitempty"`
}

// CompleteMeetingResponse is returned when a meeting is completed
type CompleteMeetingResponse struct {
	Meeting *MeetingResponse `json:"meeting"`
	Summary *SummaryResponse `json:"summary"`
}
