package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
)

// ParticipantRepository defines the interface for meeting participant data access
type ParticipantRepository interface {
	// Create adds a participant to a meeting
	Create(ctx context.Context, participant *entities.Participant) error

	// FindByID retrieves a participant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Participant, error)

	// FindByMeetingAndUser retrieves a participant record for a user in a meeting
	FindByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.Participant, error)

	// ListByMeeting retrieves all participants of a meeting
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Participant, error)

	// Update updates a participant record
	Update(ctx context.Context, participant *entities.Participant) error

	// Delete removes a participant from a meeting
	Delete(ctx context.Context, id uuid.UUID) error
}
