package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingStatus represents the current status of a meeting
type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusActive    MeetingStatus = "active"
	MeetingStatusEnded     MeetingStatus = "ended"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

// Meeting represents an AI-assisted video meeting.
//
// Summary holds either a JSON-encoded SummaryDocument ({summary_text,
// insights}) written by meeting completion, or a legacy plain-text summary
// with no JSON structure. Readers must accept both.
type Meeting struct {
	ID              uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name            string        `gorm:"type:varchar(255);not null" json:"name"`
	Description     *string       `gorm:"type:text" json:"description,omitempty"`
	HostID          uuid.UUID     `gorm:"type:uuid;not null;index" json:"host_id"`
	Host            *User         `gorm:"foreignKey:HostID" json:"host,omitempty"`
	AgentID         *uuid.UUID    `gorm:"type:uuid;index" json:"agent_id,omitempty"`
	Agent           *Agent        `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	Status          MeetingStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	LivekitRoomName string        `gorm:"type:varchar(255);unique;not null" json:"livekit_room_name"`
	Summary         *string       `gorm:"type:text" json:"summary,omitempty"`

	Settings datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"settings"`

	ScheduledStartTime *time.Time `gorm:"index" json:"scheduled_start_time,omitempty"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	EndedAt            *time.Time `json:"ended_at,omitempty"`
	Duration           *int       `json:"duration,omitempty"` // seconds

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// IsActive checks if the meeting is currently active
func (m *Meeting) IsActive() bool {
	return m.Status == MeetingStatusActive
}

// IsEnded checks if the meeting has ended
func (m *Meeting) IsEnded() bool {
	return m.Status == MeetingStatusEnded
}

// Start marks the meeting as active
func (m *Meeting) Start() {
	now := time.Now()
	m.Status = MeetingStatusActive
	m.StartedAt = &now
}

// End marks the meeting as ended and calculates duration
func (m *Meeting) End() {
	now := time.Now()
	m.Status = MeetingStatusEnded
	m.EndedAt = &now

	if m.StartedAt != nil {
		duration := int(now.Sub(*m.StartedAt).Seconds())
		m.Duration = &duration
	}
}
