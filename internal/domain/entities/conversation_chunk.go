package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Speaker identifies who produced a conversation chunk
type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerAI   Speaker = "ai"
)

// ConversationChunk is one captured utterance of a live call. Chunks are
// append-only and read back ordered by timestamp ascending; that ordering
// determines transcript reconstruction for summarization.
type ConversationChunk struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID uuid.UUID  `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Meeting   *Meeting   `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"meeting,omitempty"`
	Speaker   Speaker    `gorm:"type:varchar(10);not null" json:"speaker"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	UserName  *string    `gorm:"type:varchar(255)" json:"user_name,omitempty"`
	Text      string     `gorm:"type:text;not null" json:"text"`
	Timestamp time.Time  `gorm:"not null;index" json:"timestamp"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for ConversationChunk
func (ConversationChunk) TableName() string {
	return "conversation_chunks"
}

// SpeakerLabel returns the display name used in the joined transcript
func (c *ConversationChunk) SpeakerLabel() string {
	if c.Speaker == SpeakerAI {
		return "AI"
	}
	if c.UserName != nil && *c.UserName != "" {
		return *c.UserName
	}
	return "User"
}

// JoinTranscript renders chunks as "Speaker: text" lines joined by newline.
// Chunks are expected to already be ordered by timestamp ascending.
func JoinTranscript(chunks []*ConversationChunk) string {
	var sb strings.Builder
	for i, c := range chunks {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s: %s", c.SpeakerLabel(), c.Text))
	}
	return sb.String()
}
