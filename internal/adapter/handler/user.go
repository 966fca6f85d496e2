package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	userDTO "github.com/collabsphere/collabsphere-ai/internal/adapter/dto/user"
	"github.com/collabsphere/collabsphere-ai/internal/adapter/presenter"
	userUsecase "github.com/collabsphere/collabsphere-ai/internal/usecase/user"
)

// User handles user profile HTTP requests
type User struct {
	users  *userUsecase.Service
	logger *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *userUsecase.Service, logger *zap.Logger) *User {
	return &User{users: users, logger: logger}
}

// Me handles GET /users/me
// @Summary      Get the authenticated user's profile
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  user.UserResponse
// @Router       /users/me [get]
func (h *User) Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}

	u, err := h.users.Get(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToUserResponse(u))
}

// UpdateMe handles PUT /users/me
// @Summary      Update the authenticated user's profile
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  user.UpdateProfileRequest  true  "Profile changes"
// @Success      200  {object}  user.UserResponse
// @Router       /users/me [put]
func (h *User) UpdateMe(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}

	var req userDTO.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	u, err := h.users.UpdateProfile(c.Request().Context(), userID, userUsecase.UpdateProfileInput{
		Name:               req.Name,
		AvatarURL:          req.AvatarURL,
		Timezone:           req.Timezone,
		Language:           req.Language,
		MeetingPreferences: req.MeetingPreferences,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToUserResponse(u))
}
