package repositories

import (
	"tactical-server/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(assignment *models.OperationAgent) error {
	return r.db.Create(assignment).Error
}

func (r *AssignmentRepository) GetByPair(agentID, operationID uuid.UUID) (*models.OperationAgent, error) {
	var assignment models.OperationAgent
	err := r.db.Where("agent_id = ? AND operation_id = ?", agentID, operationID).
		First(&assignment).Error
	return &assignment, err
}

func (r *AssignmentRepository) ListByOperation(operationID uuid.UUID) ([]models.OperationAgent, error) {
	var assignments []models.OperationAgent
	err := r.db.Preload("Agent").
		Where("operation_id = ?", operationID).
		Order("created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) ListByAgent(agentID uuid.UUID) ([]models.OperationAgent, error) {
	var assignments []models.OperationAgent
	err := r.db.Preload("Operation").
		Where("agent_id = ?", agentID).
		Order("created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) UpdateRole(id uuid.UUID, role string) error {
	return r.db.Model(&models.OperationAgent{}).Where("id = ?", id).
		Update("role", role).Error
}

func (r *AssignmentRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.OperationAgent{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AssignmentRepository) CountForPair(agentID, operationID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.OperationAgent{}).
		Where("agent_id = ? AND operation_id = ?", agentID, operationID).
		Count(&count).Error
	return count, err
}
