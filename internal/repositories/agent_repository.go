package repositories

import (
	"tactical-server/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AgentRepository struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

func (r *AgentRepository) Create(agent *models.Agent) error {
	return r.db.Create(agent).Error
}

func (r *AgentRepository) GetByID(id uuid.UUID) (*models.Agent, error) {
	var agent models.Agent
	err := r.db.First(&agent, "id = ?", id).Error
	return &agent, err
}

// GetByRef resolves an agent by surrogate id, business key or codename.
func (r *AgentRepository) GetByRef(ref string) (*models.Agent, error) {
	var agent models.Agent
	query := r.db.Where("agent_id = ? OR codename = ?", ref, ref)
	if id, err := uuid.Parse(ref); err == nil {
		query = r.db.Where("id = ? OR agent_id = ? OR codename = ?", id, ref, ref)
	}
	err := query.First(&agent).Error
	return &agent, err
}

func (r *AgentRepository) List(status, riskLevel string, isActive *bool) ([]models.Agent, error) {
	var agents []models.Agent

	query := r.db.Model(&models.Agent{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if riskLevel != "" {
		query = query.Where("risk_level = ?", riskLevel)
	}
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}

	err := query.Order("created_at DESC").Find(&agents).Error
	return agents, err
}

func (r *AgentRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.Agent{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AgentRepository) Delete(tx *gorm.DB, id uuid.UUID) error {
	result := tx.Delete(&models.Agent{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AgentRepository) Exists(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Agent{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *AgentRepository) CountByStatus(tx *gorm.DB, status string) (int64, error) {
	var count int64
	err := tx.Model(&models.Agent{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *AgentRepository) CountAll(tx *gorm.DB) (int64, error) {
	var count int64
	err := tx.Model(&models.Agent{}).Count(&count).Error
	return count, err
}
