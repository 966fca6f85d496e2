package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	meetingDTO "github.com/collabsphere/collabsphere-ai/internal/adapter/dto/meeting"
	"github.com/collabsphere/collabsphere-ai/internal/adapter/presenter"
	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
	meetingUsecase "github.com/collabsphere/collabsphere-ai/internal/usecase/meeting"
)

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	meetings *meetingUsecase.Service
	speech   *Speech
	logger   *zap.Logger
}

// NewMeetingHandler creates a new meeting handler. speech may be nil;
// completion then skips speech-session shutdown.
func NewMeetingHandler(meetings *meetingUsecase.Service, speech *Speech, logger *zap.Logger) *Meeting {
	return &Meeting{meetings: meetings, speech: speech, logger: logger}
}

// Create handles POST /meetings
// @Summary      Create a meeting
// @Description  Creates a new AI-assisted meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  meeting.CreateMeetingRequest  true  "Meeting creation request"
// @Success      201  {object}  meeting.MeetingResponse
// @Router       /meetings [post]
func (h *Meeting) Create(c echo.Context) error {
	var req meetingDTO.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}

	input := meetingUsecase.CreateInput{
		Name:               req.Name,
		Description:        req.Description,
		HostID:             userID,
		ScheduledStartTime: req.ScheduledStartTime,
	}
	if req.AgentID != nil {
		agentID, err := uuid.Parse(*req.AgentID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "agent_id must be a valid UUID")
		}
		input.AgentID = &agentID
	}
	if req.Settings != nil {
		if raw, err := json.Marshal(req.Settings); err == nil {
			input.Settings = raw
		}
	}

	created, err := h.meetings.Create(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToMeetingResponse(created))
}

// Get handles GET /meetings/:id
// @Summary      Get a meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  meeting.MeetingResponse
// @Router       /meetings/{id} [get]
func (h *Meeting) Get(c echo.Context) error {
	meetingID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	found, err := h.meetings.Get(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(found))
}

// List handles GET /meetings
// @Summary      List meetings
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        status     query  string  false  "Filter by status"
// @Param        search     query  string  false  "Search in name and description"
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {array}  meeting.MeetingResponse
// @Router       /meetings [get]
func (h *Meeting) List(c echo.Context) error {
	var req meetingDTO.ListMeetingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	filters := repositories.MeetingFilters{
		Search:    req.Search,
		Limit:     req.PageSize,
		Offset:    (req.Page - 1) * req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if req.Status != nil {
		status := entities.MeetingStatus(*req.Status)
		filters.Status = &status
	}

	meetings, total, err := h.meetings.List(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"meetings": presenter.ToMeetingResponses(meetings),
		"total":    total,
		"page":     req.Page,
	})
}

// Update handles PUT /meetings/:id
// @Summary      Update meeting metadata
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                        true  "Meeting ID"
// @Param        request  body  meeting.UpdateMeetingRequest  true  "Update request"
// @Success      200  {object}  meeting.MeetingResponse
// @Router       /meetings/{id} [put]
func (h *Meeting) Update(c echo.Context) error {
	meetingID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}

	var req meetingDTO.UpdateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	updated, err := h.meetings.Update(c.Request().Context(), meetingID, userID, req.Name, req.Description)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(updated))
}

// Delete handles DELETE /meetings/:id
// @Summary      Delete a meeting
// @Description  Removes a meeting and its transcript, participants and plans
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /meetings/{id} [delete]
func (h *Meeting) Delete(c echo.Context) error {
	meetingID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}

	if err := h.meetings.Delete(c.Request().Context(), meetingID, userID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"deleted": true})
}

// Start handles POST /meetings/:id/start
// @Summary      Start a meeting
// @Description  Moves a scheduled meeting to active and creates the LiveKit room
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  meeting.MeetingResponse
// @Router       /meetings/{id}/start [post]
func (h *Meeting) Start(c echo.Context) error {
	meetingID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}

	started, err := h.meetings.Start(c.Request().Context(), meetingID, userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(started))
}

// Join handles POST /meetings/:id/join
// @Summary      Join a meeting
// @Description  Registers the user as a participant and returns a LiveKit access token
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                     true  "Meeting ID"
// @Param        request  body  meeting.JoinMeetingRequest true  "Join request"
// @Success      200  {object}  meeting.JoinMeetingResponse
// @Router       /meetings/{id}/join [post]
func (h *Meeting) Join(c echo.Context) error {
	meetingID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}

	var req meetingDTO.JoinMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	participant, token, err := h.meetings.Join(c.Request().Context(), meetingID, userID, req.DisplayName)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	found, err := h.meetings.Get(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &meetingDTO.JoinMeetingResponse{
		Meeting:     presenter.ToMeetingResponse(found),
		Participant: presenter.ToParticipantResponse(participant),
		AccessToken: token,
		LivekitURL:  h.meetings.LivekitURL(),
	})
}

// Leave handles POST /meetings/:id/leave
// @Summary      Leave a meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /meetings/{id}/leave [post]
func (h *Meeting) Leave(c echo.Context) error {
	meetingID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}

	if err := h.meetings.Leave(c.Request().Context(), meetingID, userID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"left": true})
}

// Participants handles GET /meetings/:id/participants
// @Summary      List meeting participants
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {array}  meeting.ParticipantResponse
// @Router       /meetings/{id}/participants [get]
func (h *Meeting) Participants(c echo.Context) error {
	meetingID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	participants, err := h.meetings.Participants(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToParticipantResponses(participants))
}

// Complete handles POST /meetings/:id/complete
// @Summary      Complete a meeting
// @Description  Ends the meeting, generates the AI summary with insights, and stores it
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  meeting.CompleteMeetingResponse
// @Router       /meetings/{id}/complete [post]
func (h *Meeting) Complete(c echo.Context) error {
	meetingID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}

	ended, doc, err := h.meetings.Complete(c.Request().Context(), meetingID, userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if h.speech != nil {
		h.speech.StopMeeting(meetingID)
	}

	return HandleSuccess(h.logger, c, &meetingDTO.CompleteMeetingResponse{
		Meeting: presenter.ToMeetingResponse(ended),
		Summary: presenter.ToSummaryResponse(doc),
	})
}

// Summary handles GET /meetings/:id/summary
// @Summary      Get the meeting summary
// @Description  Returns the stored summary document; legacy plain-text summaries are wrapped
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  meeting.SummaryResponse
// @Router       /meetings/{id}/summary [get]
func (h *Meeting) Summary(c echo.Context) error {
	meetingID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	doc, err := h.meetings.Summary(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(doc))
}

func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "id must be a valid UUID")
	}
	return id, nil
}
