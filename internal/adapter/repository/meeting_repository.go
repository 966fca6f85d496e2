package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Host").
		Preload("Agent").
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// FindByLivekitName retrieves a meeting by its LiveKit room name
func (r *meetingRepository) FindByLivekitName(ctx context.Context, livekitName string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Host").
		Where("livekit_room_name = ?", livekitName).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Update updates an existing meeting
func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

// Delete soft deletes a meeting
func (r *meetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Meeting{}, "id = ?", id).Error
}

// List retrieves meetings with filters and pagination
func (r *meetingRepository) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Meeting{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.HostID != nil {
		query = query.Where("host_id = ?", *filters.HostID)
	}
	if filters.Search != "" {
		search := "%" + filters.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := filters.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	var meetings []*entities.Meeting
	err := query.
		Preload("Host").
		Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&meetings).Error
	if err != nil {
		return nil, 0, err
	}
	return meetings, total, nil
}

// FindByHostID retrieves all meetings hosted by a user
func (r *meetingRepository) FindByHostID(ctx context.Context, hostID uuid.UUID, limit, offset int) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

// FindActive retrieves all currently active meetings
func (r *meetingRepository) FindActive(ctx context.Context) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("status = ?", entities.MeetingStatusActive).
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

// UpdateStatus updates the meeting status
func (r *meetingRepository) UpdateStatus(ctx context.Context, meetingID uuid.UUID, status entities.MeetingStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", meetingID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// UpdateSummary stores the encoded summary document for a meeting
func (r *meetingRepository) UpdateSummary(ctx context.Context, meetingID uuid.UUID, summary string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", meetingID).
		Updates(map[string]interface{}{
			"summary":    summary,
			"updated_at": time.Now(),
		}).Error
}

// EndMeeting marks a meeting as ended and calculates duration
func (r *meetingRepository) EndMeeting(ctx context.Context, meetingID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meeting entities.Meeting
		if err := tx.Where("id = ?", meetingID).First(&meeting).Error; err != nil {
			return err
		}
		meeting.End()
		return tx.Save(&meeting).Error
	})
}
