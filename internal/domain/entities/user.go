package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserRole defines user roles
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleHost        UserRole = "host"
	RoleParticipant UserRole = "participant"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHost, RoleParticipant:
		return true
	}
	return false
}

// User represents a user in the system. Authentication itself is delegated
// to an external identity provider; we only store the profile we are handed.
type User struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email    string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name     string    `json:"name" gorm:"type:varchar(255);not null"`
	Role     UserRole  `json:"role" gorm:"type:varchar(50);default:'participant';not null"`
	IsActive bool      `json:"is_active" gorm:"default:true;not null"`

	AvatarURL *string `json:"avatar_url,omitempty" gorm:"type:varchar(500)"`
	Timezone  string  `json:"timezone" gorm:"type:varchar(50);default:'UTC';not null"`
	Language  string  `json:"language" gorm:"type:varchar(10);default:'en';not null"`

	LastActiveAt *time.Time `json:"last_active_at,omitempty" gorm:"type:timestamp"`

	MeetingPreferences datatypes.JSON `json:"meeting_preferences" gorm:"type:jsonb;default:'{}'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
