package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
)

// participantRepository implements the ParticipantRepository interface
type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *gorm.DB) repositories.ParticipantRepository {
	return &participantRepository{db: db}
}

// Create adds a participant to a meeting
func (r *participantRepository) Create(ctx context.Context, participant *entities.Participant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

// FindByID retrieves a participant by its ID
func (r *participantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Participant, error) {
	var participant entities.Participant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindByMeetingAndUser retrieves a participant record for a user in a meeting
func (r *participantRepository) FindByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.Participant, error) {
	var participant entities.Participant
	err := r.db.WithContext(ctx).
		Where("meeting_id = ? AND user_id = ?", meetingID, userID).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// ListByMeeting retrieves all participants of a meeting
func (r *participantRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Participant, error) {
	var participants []*entities.Participant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

// Update updates a participant record
func (r *participantRepository) Update(ctx context.Context, participant *entities.Participant) error {
	return r.db.WithContext(ctx).Save(participant).Error
}

// Delete removes a participant from a meeting
func (r *participantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Participant{}, "id = ?", id).Error
}
