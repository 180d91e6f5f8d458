package repositories

import (
	"tactical-server/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(report *models.IntelligenceReport) error {
	return r.db.Create(report).Error
}

func (r *ReportRepository) GetByID(id uuid.UUID) (*models.IntelligenceReport, error) {
	var report models.IntelligenceReport
	err := r.db.Preload("Source").Preload("Operation").
		First(&report, "id = ?", id).Error
	return &report, err
}

func (r *ReportRepository) List(classification, intelType, threatLevel string) ([]models.IntelligenceReport, error) {
	var reports []models.IntelligenceReport

	query := r.db.Model(&models.IntelligenceReport{})
	if classification != "" {
		query = query.Where("classification = ?", classification)
	}
	if intelType != "" {
		query = query.Where("type = ?", intelType)
	}
	if threatLevel != "" {
		query = query.Where("threat_level = ?", threatLevel)
	}

	err := query.Order("published_at DESC").Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.IntelligenceReport{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReportRepository) Delete(tx *gorm.DB, id uuid.UUID) error {
	result := tx.Delete(&models.IntelligenceReport{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReportRepository) Exists(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.IntelligenceReport{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
