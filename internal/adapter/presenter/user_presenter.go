package presenter

import (
	"encoding/json"

	userDTO "github.com/collabsphere/collabsphere-ai/internal/adapter/dto/user"
	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
)

// ToUserResponse converts a User entity to its API shape
func ToUserResponse(u *entities.User) *userDTO.UserResponse {
	if u == nil {
		return nil
	}
	return &userDTO.UserResponse{
		ID:                 u.ID.String(),
		Email:              u.Email,
		Name:               u.Name,
		Role:               string(u.Role),
		AvatarURL:          u.AvatarURL,
		Timezone:           u.Timezone,
		Language:           u.Language,
		MeetingPreferences: json.RawMessage(u.MeetingPreferences),
		LastActiveAt:       u.LastActiveAt,
		CreatedAt:          u.CreatedAt,
	}
}
