package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	agentDTO "github.com/collabsphere/collabsphere-ai/internal/adapter/dto/agent"
	"github.com/collabsphere/collabsphere-ai/internal/adapter/presenter"
	agentUsecase "github.com/collabsphere/collabsphere-ai/internal/usecase/agent"
)

// Agent handles agent persona HTTP requests
type Agent struct {
	agents *agentUsecase.Service
	logger *zap.Logger
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(agents *agentUsecase.Service, logger *zap.Logger) *Agent {
	return &Agent{agents: agents, logger: logger}
}

// Create handles POST /agents
// @Summary      Create an agent persona
// @Tags         Agents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  agent.CreateAgentRequest  true  "Agent persona"
// @Success      201  {object}  agent.AgentResponse
// @Router       /agents [post]
func (h *Agent) Create(c echo.Context) error {
	var req agentDTO.CreateAgentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}

	input := agentUsecase.CreateInput{
		OwnerID:     userID,
		Name:        req.Name,
		Personality: req.Personality,
		Voice:       req.Voice,
		Model:       req.Model,
	}
	if req.Settings != nil {
		if raw, err := json.Marshal(req.Settings); err == nil {
			input.Settings = raw
		}
	}

	created, err := h.agents.Create(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToAgentResponse(created))
}

// Get handles GET /agents/:id
// @Summary      Get an agent persona
// @Tags         Agents
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Agent ID"
// @Success      200  {object}  agent.AgentResponse
// @Router       /agents/{id} [get]
func (h *Agent) Get(c echo.Context) error {
	agentID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	found, err := h.agents.Get(c.Request().Context(), agentID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToAgentResponse(found))
}

// List handles GET /agents
// @Summary      List the caller's agent personas
// @Tags         Agents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  agent.AgentResponse
// @Router       /agents [get]
func (h *Agent) List(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}

	agents, err := h.agents.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToAgentResponses(agents))
}

// Update handles PUT /agents/:id
// @Summary      Update an agent persona
// @Tags         Agents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                    true  "Agent ID"
// @Param        request  body  agent.UpdateAgentRequest  true  "Agent persona"
// @Success      200  {object}  agent.AgentResponse
// @Router       /agents/{id} [put]
func (h *Agent) Update(c echo.Context) error {
	agentID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}

	var req agentDTO.UpdateAgentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := agentUsecase.CreateInput{
		Name:        req.Name,
		Personality: req.Personality,
		Voice:       req.Voice,
		Model:       req.Model,
	}
	if req.Settings != nil {
		if raw, err := json.Marshal(req.Settings); err == nil {
			input.Settings = raw
		}
	}

	updated, err := h.agents.Update(c.Request().Context(), agentID, userID, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToAgentResponse(updated))
}

// Delete handles DELETE /agents/:id
// @Summary      Delete an agent persona
// @Tags         Agents
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Agent ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /agents/{id} [delete]
func (h *Agent) Delete(c echo.Context) error {
	agentID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}

	if err := h.agents.Delete(c.Request().Context(), agentID, userID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"deleted": true})
}
