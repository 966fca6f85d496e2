package entities

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantRole represents the role of a participant in a meeting
type ParticipantRole string

const (
	ParticipantRoleHost        ParticipantRole = "host"
	ParticipantRoleParticipant ParticipantRole = "participant"
	ParticipantRoleGuest       ParticipantRole = "guest"
)

// ParticipantStatus represents the status of a participant
type ParticipantStatus string

const (
	ParticipantStatusInvited ParticipantStatus = "invited"
	ParticipantStatusJoined  ParticipantStatus = "joined"
	ParticipantStatusLeft    ParticipantStatus = "left"
)

// Participant represents a user's participation in a meeting
type Participant struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID uuid.UUID         `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Meeting   *Meeting          `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"meeting,omitempty"`
	UserID    *uuid.UUID        `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User      *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      ParticipantRole   `gorm:"type:varchar(20);default:'participant'" json:"role"`
	Status    ParticipantStatus `gorm:"type:varchar(20);default:'invited';index" json:"status"`

	DisplayName string     `gorm:"type:varchar(255)" json:"display_name"`
	JoinedAt    *time.Time `gorm:"index" json:"joined_at,omitempty"`
	LeftAt      *time.Time `json:"left_at,omitempty"`
	Duration    *int       `json:"duration,omitempty"` // seconds in meeting

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Participant
func (Participant) TableName() string {
	return "meeting_participants"
}

// Join marks the participant as joined
func (p *Participant) Join() {
	now := time.Now()
	p.Status = ParticipantStatusJoined
	p.JoinedAt = &now
}

// Leave marks the participant as left and calculates duration
func (p *Participant) Leave() {
	now := time.Now()
	p.Status = ParticipantStatusLeft
	p.LeftAt = &now

	if p.JoinedAt != nil {
		duration := int(now.Sub(*p.JoinedAt).Seconds())
		p.Duration = &duration
	}
}
