package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/collabsphere/collabsphere-ai/errors"
	planDTO "github.com/collabsphere/collabsphere-ai/internal/adapter/dto/plan"
	"github.com/collabsphere/collabsphere-ai/internal/adapter/presenter"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
	conversationUsecase "github.com/collabsphere/collabsphere-ai/internal/usecase/conversation"
	planUsecase "github.com/collabsphere/collabsphere-ai/internal/usecase/plan"
)

// Plan handles project plan HTTP requests
type Plan struct {
	plans         *planUsecase.Service
	planRepo      repositories.PlanRepository
	conversations *conversationUsecase.Service
	logger        *zap.Logger
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(plans *planUsecase.Service, planRepo repositories.PlanRepository, conversations *conversationUsecase.Service, logger *zap.Logger) *Plan {
	return &Plan{plans: plans, planRepo: planRepo, conversations: conversations, logger: logger}
}

// Generate handles POST /meetings/:id/plan
// @Summary      Generate a project plan
// @Description  Builds a phased task plan from the meeting transcript
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                   true   "Meeting ID"
// @Param        request  body  plan.GeneratePlanRequest false  "Options"
// @Success      201  {object}  plan.PlanResponse
// @Failure      502  {object}  map[string]interface{}  "Upstream AI service failure"
// @Router       /meetings/{id}/plan [post]
func (h *Plan) Generate(c echo.Context) error {
	meetingID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req planDTO.GeneratePlanRequest
	// body is optional
	_ = c.Bind(&req)

	transcript, err := h.conversations.Transcript(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	row, _, err := h.plans.Generate(c.Request().Context(), meetingID, transcript, req.MeetingName)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrPlanGenerationFailed(err))
	}

	return HandleCreated(h.logger, c, presenter.ToPlanResponse(row))
}

// Latest handles GET /meetings/:id/plan
// @Summary      Get the latest project plan
// @Tags         Plans
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  plan.PlanResponse
// @Router       /meetings/{id}/plan [get]
func (h *Plan) Latest(c echo.Context) error {
	meetingID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	row, err := h.planRepo.FindLatestByMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrNotFound("project plan"))
	}
	return HandleSuccess(h.logger, c, presenter.ToPlanResponse(row))
}
