package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// FindByLivekitName retrieves a meeting by its LiveKit room name
	FindByLivekitName(ctx context.Context, livekitName string) (*entities.Meeting, error)

	// Update updates an existing meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// Delete soft deletes a meeting
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves meetings with filters and pagination
	List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, int64, error)

	// FindByHostID retrieves all meetings hosted by a user
	FindByHostID(ctx context.Context, hostID uuid.UUID, limit, offset int) ([]*entities.Meeting, error)

	// FindActive retrieves all currently active meetings
	FindActive(ctx context.Context) ([]*entities.Meeting, error)

	// UpdateStatus updates the meeting status
	UpdateStatus(ctx context.Context, meetingID uuid.UUID, status entities.MeetingStatus) error

	// UpdateSummary stores the encoded summary document for a meeting
	UpdateSummary(ctx context.Context, meetingID uuid.UUID, summary string) error

	// EndMeeting marks a meeting as ended and calculates duration
	EndMeeting(ctx context.Context, meetingID uuid.UUID) error
}

// MeetingFilters represents filter options for listing meetings
type MeetingFilters struct {
	Status    *entities.MeetingStatus
	HostID    *uuid.UUID
	Search    string // Search in name, description
	Limit     int
	Offset    int
	SortBy    string // "created_at", "started_at", "name"
	SortOrder string // "asc", "desc"
}
