package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
)

// ConversationRepository defines the interface for transcript chunk data access
type ConversationRepository interface {
	// Append stores one conversation chunk
	Append(ctx context.Context, chunk *entities.ConversationChunk) error

	// ListByMeeting retrieves all chunks of a meeting ordered by timestamp
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ConversationChunk, error)

	// CountByMeeting returns the number of chunks captured for a meeting
	CountByMeeting(ctx context.Context, meetingID uuid.UUID) (int64, error)

	// DeleteByMeeting removes all chunks of a meeting
	DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) error
}
