package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
)

// RequireMeetingHost middleware: only allow the meeting host to perform the action
func RequireMeetingHost(meetings repositories.MeetingRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			meetingID, err := uuid.Parse(c.Param("id"))
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]interface{}{
					"error":   "invalid_meeting_id",
					"message": "meeting ID must be a valid UUID",
				})
			}
			userID, ok := c.Get("user_id").(uuid.UUID)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error":   "unauthorized",
					"message": "user not authenticated",
				})
			}
			meeting, err := meetings.FindByID(c.Request().Context(), meetingID)
			if err != nil {
				return c.JSON(http.StatusNotFound, map[string]interface{}{
					"error":   "meeting_not_found",
					"message": err.Error(),
				})
			}
			if meeting.HostID != userID {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"error":   "not_host",
					"message": "user is not the host",
				})
			}
			return next(c)
		}
	}
}

// RequireParticipantStatus middleware: only allow a participant with one of the given statuses
func RequireParticipantStatus(participants repositories.ParticipantRepository, allowedStatus ...entities.ParticipantStatus) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			meetingID, err := uuid.Parse(c.Param("id"))
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]interface{}{
					"error":   "invalid_meeting_id",
					"message": "meeting ID must be a valid UUID",
				})
			}
			userID, ok := c.Get("user_id").(uuid.UUID)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error":   "unauthorized",
					"message": "user not authenticated",
				})
			}
			participant, err := participants.FindByMeetingAndUser(c.Request().Context(), meetingID, userID)
			if err != nil {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"error":   "not_participant",
					"message": "user is not a participant in this meeting",
				})
			}
			for _, status := range allowedStatus {
				if participant.Status == status {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]interface{}{
				"error":   "invalid_participant_status",
				"message": "participant status not allowed for this action",
			})
		}
	}
}
