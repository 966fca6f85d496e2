package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	conversationDTO "github.com/collabsphere/collabsphere-ai/internal/adapter/dto/conversation"
	"github.com/collabsphere/collabsphere-ai/internal/adapter/presenter"
	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	conversationUsecase "github.com/collabsphere/collabsphere-ai/internal/usecase/conversation"
)

// Conversation handles transcript capture HTTP requests
type Conversation struct {
	conversations *conversationUsecase.Service
	logger        *zap.Logger
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(conversations *conversationUsecase.Service, logger *zap.Logger) *Conversation {
	return &Conversation{conversations: conversations, logger: logger}
}

// Append handles POST /meetings/:id/chunks
// @Summary      Record a conversation chunk
// @Description  Appends one captured utterance to the meeting transcript
// @Tags         Conversation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                            true  "Meeting ID"
// @Param        request  body  conversation.AppendChunkRequest  true  "Chunk"
// @Success      201  {object}  conversation.ChunkResponse
// @Router       /meetings/{id}/chunks [post]
func (h *Conversation) Append(c echo.Context) error {
	meetingID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req conversationDTO.AppendChunkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := conversationUsecase.AppendInput{
		MeetingID: meetingID,
		Speaker:   entities.Speaker(req.Speaker),
		UserName:  req.UserName,
		Text:      req.Text,
	}
	if req.UserID != nil {
		userID, err := uuid.Parse(*req.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "user_id must be a valid UUID")
		}
		input.UserID = &userID
	}
	if req.Timestamp != nil {
		input.Timestamp = *req.Timestamp
	}

	chunk, err := h.conversations.Append(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToChunkResponse(chunk))
}

// List handles GET /meetings/:id/chunks
// @Summary      List conversation chunks
// @Tags         Conversation
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {array}  conversation.ChunkResponse
// @Router       /meetings/{id}/chunks [get]
func (h *Conversation) List(c echo.Context) error {
	meetingID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	chunks, err := h.conversations.List(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToChunkResponses(chunks))
}

// Transcript handles GET /meetings/:id/transcript
// @Summary      Get the joined transcript
// @Tags         Conversation
// @Produce      json
// @Security     BearerAuth
// @Param        id      path   string  true   "Meeting ID"
// @Param        format  query  string  false  "Response format: json (default) or text"
// @Success      200  {object}  conversation.TranscriptResponse
// @Router       /meetings/{id}/transcript [get]
func (h *Conversation) Transcript(c echo.Context) error {
	meetingID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	transcript, err := h.conversations.Transcript(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if c.QueryParam("format") == "text" {
		return c.String(http.StatusOK, transcript)
	}
	return HandleSuccess(h.logger, c, &conversationDTO.TranscriptResponse{
		MeetingID:  meetingID.String(),
		Transcript: transcript,
	})
}
