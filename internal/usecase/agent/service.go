package agent

import (
	stdErrors "errors"

	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-ai/errors"
	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
)

// Service handles AI agent persona management
type Service struct {
	agents repositories.AgentRepository
}

// NewService creates an agent service
func NewService(agents repositories.AgentRepository) *Service {
	return &Service{agents: agents}
}

// CreateInput represents input for creating an agent persona
type CreateInput struct {
	OwnerID     uuid.UUID
	Name        string
	Personality string
	Voice       string
	Model       string
	Settings    []byte
}

// Create creates a new agent persona
func (s *Service) Create(ctx context.Context, input CreateInput) (*entities.Agent, error) {
	if input.Name == "" {
		return nil, errors.ErrInvalidArgument("agent name must not be empty")
	}

	agent := &entities.Agent{
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Personality: input.Personality,
		Voice:       input.Voice,
		Model:       input.Model,
		IsActive:    true,
	}
	if len(input.Settings) > 0 {
		agent.Settings = input.Settings
	}

	if err := s.agents.Create(ctx, agent); err != nil {
		return nil, errors.ErrDBQuery(err)
	}
	return agent, nil
}

// Get retrieves an agent by ID
func (s *Service) Get(ctx context.Context, agentID uuid.UUID) (*entities.Agent, error) {
	agent, err := s.agents.FindByID(ctx, agentID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrAgentNotFound(agentID.String())
		}
		return nil, errors.ErrDBQuery(err)
	}
	return agent, nil
}

// ListByOwner retrieves all agents owned by a user
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Agent, error) {
	agents, err := s.agents.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.ErrDBQuery(err)
	}
	return agents, nil
}

// Update updates an agent persona (owner only)
func (s *Service) Update(ctx context.Context, agentID, userID uuid.UUID, input CreateInput) (*entities.Agent, error) {
	agent, err := s.Get(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if agent.OwnerID != userID {
		return nil, errors.ErrPermissionDenied("update agent")
	}

	if input.Name != "" {
		agent.Name = input.Name
	}
	if input.Personality != "" {
		agent.Personality = input.Personality
	}
	if input.Voice != "" {
		agent.Voice = input.Voice
	}
	if input.Model != "" {
		agent.Model = input.Model
	}
	if len(input.Settings) > 0 {
		agent.Settings = input.Settings
	}

	if err := s.agents.Update(ctx, agent); err != nil {
		return nil, errors.ErrDBQuery(err)
	}
	return agent, nil
}

// Delete soft deletes an agent (owner only)
func (s *Service) Delete(ctx context.Context, agentID, userID uuid.UUID) error {
	agent, err := s.Get(ctx, agentID)
	if err != nil {
		return err
	}
	if agent.OwnerID != userID {
		return errors.ErrPermissionDenied("delete agent")
	}
	if err := s.agents.Delete(ctx, agentID); err != nil {
		return errors.ErrDBQuery(err)
	}
	return nil
}
