package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
)

// AgentRepository defines the interface for AI agent persona data access
type AgentRepository interface {
	// Create creates a new agent persona
	Create(ctx context.Context, agent *entities.Agent) error

	// FindByID retrieves an agent by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Agent, error)

	// ListByOwner retrieves all agents owned by a user
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Agent, error)

	// Update updates an agent persona
	Update(ctx context.Context, agent *entities.Agent) error

	// Delete soft deletes an agent
	Delete(ctx context.Context, id uuid.UUID) error
}
