package repositories

import (
	"tactical-server/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OperationRepository struct {
	db *gorm.DB
}

func NewOperationRepository(db *gorm.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

func (r *OperationRepository) Create(op *models.Operation) error {
	return r.db.Create(op).Error
}

func (r *OperationRepository) GetByID(id uuid.UUID, includeAgents bool) (*models.Operation, error) {
	var op models.Operation
	query := r.db
	if includeAgents {
		query = query.Preload("Assignments.Agent")
	}
	err := query.First(&op, "id = ?", id).Error
	return &op, err
}

// GetByRef resolves an operation by surrogate id or business key.
func (r *OperationRepository) GetByRef(ref string) (*models.Operation, error) {
	var op models.Operation
	query := r.db.Where("operation_id = ?", ref)
	if id, err := uuid.Parse(ref); err == nil {
		query = r.db.Where("id = ? OR operation_id = ?", id, ref)
	}
	err := query.First(&op).Error
	return &op, err
}

func (r *OperationRepository) List(status string, includeAgents bool) ([]models.Operation, error) {
	var ops []models.Operation

	query := r.db.Model(&models.Operation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if includeAgents {
		query = query.Preload("Assignments.Agent")
	}

	err := query.Order("created_at DESC").Find(&ops).Error
	return ops, err
}

func (r *OperationRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.Operation{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OperationRepository) Delete(tx *gorm.DB, id uuid.UUID) error {
	result := tx.Delete(&models.Operation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OperationRepository) Exists(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Operation{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *OperationRepository) CountByStatus(tx *gorm.DB, status string) (int64, error) {
	var count int64
	err := tx.Model(&models.Operation{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *OperationRepository) CountAll(tx *gorm.DB) (int64, error) {
	var count int64
	err := tx.Model(&models.Operation{}).Count(&count).Error
	return count, err
}
