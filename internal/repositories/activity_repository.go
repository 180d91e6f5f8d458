package repositories

import (
	"tactical-server/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(log *models.ActivityLog) error {
	return r.db.Create(log).Error
}

func (r *ActivityRepository) GetByID(id uuid.UUID) (*models.ActivityLog, error) {
	var log models.ActivityLog
	err := r.withRefs().First(&log, "id = ?", id).Error
	return &log, err
}

func (r *ActivityRepository) List(activityType string, limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog

	query := r.withRefs()
	if activityType != "" {
		query = query.Where("type = ?", activityType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Order("timestamp DESC").Find(&logs).Error
	return logs, err
}

func (r *ActivityRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.ActivityLog{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ActivityRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.ActivityLog{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ActivityRepository) CountByType(tx *gorm.DB, activityType string) (int64, error) {
	var count int64
	err := tx.Model(&models.ActivityLog{}).Where("type = ?", activityType).Count(&count).Error
	return count, err
}

// NullifyRef clears one reference column on every log row pointing at the
// given id. Used by the nullify-on-delete policy.
func (r *ActivityRepository) NullifyRef(tx *gorm.DB, column string, id uuid.UUID) error {
	return tx.Model(&models.ActivityLog{}).
		Where(column+" = ?", id).
		Update(column, nil).Error
}

func (r *ActivityRepository) withRefs() *gorm.DB {
	return r.db.
		Preload("User").
		Preload("Agent").
		Preload("Operation").
		Preload("Report").
		Preload("System")
}
