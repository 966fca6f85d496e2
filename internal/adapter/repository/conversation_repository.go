package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
)

// conversationRepository implements the ConversationRepository interface
type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new conversation chunk repository
func NewConversationRepository(db *gorm.DB) repositories.ConversationRepository {
	return &conversationRepository{db: db}
}

// Append stores one conversation chunk
func (r *conversationRepository) Append(ctx context.Context, chunk *entities.ConversationChunk) error {
	return r.db.WithContext(ctx).Create(chunk).Error
}

// ListByMeeting retrieves all chunks of a meeting ordered by timestamp
func (r *conversationRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ConversationChunk, error) {
	var chunks []*entities.ConversationChunk
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("timestamp ASC").
		Find(&chunks).Error
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// CountByMeeting returns the number of chunks captured for a meeting
func (r *conversationRepository) CountByMeeting(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.ConversationChunk{}).
		Where("meeting_id = ?", meetingID).
		Count(&count).Error
	return count, err
}

// DeleteByMeeting removes all chunks of a meeting
func (r *conversationRepository) DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&entities.ConversationChunk{}, "meeting_id = ?", meetingID).Error
}
