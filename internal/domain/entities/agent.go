package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Agent represents an AI meeting assistant persona owned by a user.
// The personality prompt is prepended as the system prompt when the
// agent responds during a live call.
type Agent struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner       *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Personality string    `gorm:"type:text" json:"personality"`
	Voice       string    `gorm:"type:varchar(100);default:'default'" json:"voice"`
	Model       string    `gorm:"type:varchar(100);default:'llama-3.1-70b-versatile'" json:"model"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`

	Settings datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"settings"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Agent
func (Agent) TableName() string {
	return "agents"
}
