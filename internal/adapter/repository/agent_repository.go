package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
)

// agentRepository implements the AgentRepository interface
type agentRepository struct {
	db *gorm.DB
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(db *gorm.DB) repositories.AgentRepository {
	return &agentRepository{db: db}
}

// Create creates a new agent persona
func (r *agentRepository) Create(ctx context.Context, agent *entities.Agent) error {
	return r.db.WithContext(ctx).Create(agent).Error
}

// FindByID retrieves an agent by its ID
func (r *agentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Agent, error) {
	var agent entities.Agent
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&agent).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// ListByOwner retrieves all agents owned by a user
func (r *agentRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Agent, error) {
	var agents []*entities.Agent
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		Order("created_at DESC").
		Find(&agents).Error
	if err != nil {
		return nil, err
	}
	return agents, nil
}

// Update updates an agent persona
func (r *agentRepository) Update(ctx context.Context, agent *entities.Agent) error {
	return r.db.WithContext(ctx).Save(agent).Error
}

// Delete soft deletes an agent
func (r *agentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Agent{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
