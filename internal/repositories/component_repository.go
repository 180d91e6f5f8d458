package repositories

import (
	"tactical-server/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComponentRepository struct {
	db *gorm.DB
}

func NewComponentRepository(db *gorm.DB) *ComponentRepository {
	return &ComponentRepository{db: db}
}

func (r *ComponentRepository) Create(component *models.SystemComponent) error {
	return r.db.Create(component).Error
}

func (r *ComponentRepository) GetByID(id uuid.UUID) (*models.SystemComponent, error) {
	var component models.SystemComponent
	err := r.db.First(&component, "id = ?", id).Error
	return &component, err
}

func (r *ComponentRepository) List(status string) ([]models.SystemComponent, error) {
	var components []models.SystemComponent

	query := r.db.Model(&models.SystemComponent{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	err := query.Order("name ASC").Find(&components).Error
	return components, err
}

func (r *ComponentRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.SystemComponent{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ComponentRepository) Delete(tx *gorm.DB, id uuid.UUID) error {
	result := tx.Delete(&models.SystemComponent{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ComponentRepository) Exists(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.SystemComponent{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ComponentRepository) CountByStatus(tx *gorm.DB, status string) (int64, error) {
	var count int64
	err := tx.Model(&models.SystemComponent{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *ComponentRepository) CountAll(tx *gorm.DB) (int64, error) {
	var count int64
	err := tx.Model(&models.SystemComponent{}).Count(&count).Error
	return count, err
}

// AverageUptime returns the arithmetic mean of component uptime in days,
// zero when no components exist.
func (r *ComponentRepository) AverageUptime(tx *gorm.DB) (float64, error) {
	var result struct {
		Avg float64
	}
	err := tx.Model(&models.SystemComponent{}).
		Select("COALESCE(AVG(uptime), 0) as avg").
		Scan(&result).Error
	return result.Avg, err
}
