package user

import (
	"context"
	"time"

	stdErrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-ai/errors"
	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
)

// Service handles user profile logic. Sign-in is handled by the external
// identity provider; this service only serves and updates stored profiles.
type Service struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewService creates a user service
func NewService(users repositories.UserRepository, logger *zap.Logger) *Service {
	return &Service{users: users, logger: logger}
}

// UpdateProfileInput represents the editable profile fields
type UpdateProfileInput struct {
	Name               string
	AvatarURL          *string
	Timezone           string
	Language           string
	MeetingPreferences []byte
}

// Get retrieves a user by ID
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound("user")
		}
		return nil, errors.ErrDBQuery(err)
	}
	return user, nil
}

// UpdateProfile applies profile changes and bumps last_active_at
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*entities.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}
	if input.Timezone != "" {
		user.Timezone = input.Timezone
	}
	if input.Language != "" {
		user.Language = input.Language
	}
	if len(input.MeetingPreferences) > 0 {
		user.MeetingPreferences = datatypes.JSON(input.MeetingPreferences)
	}
	now := time.Now().UTC()
	user.LastActiveAt = &now

	if err := s.users.Update(ctx, user); err != nil {
		return nil, errors.ErrDBQuery(err)
	}
	return user, nil
}
