package repositories

import (
	"tactical-server/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Create(tx *gorm.DB, stats *models.SystemStats) error {
	return tx.Create(stats).Error
}

func (r *StatsRepository) GetByID(id uuid.UUID) (*models.SystemStats, error) {
	var stats models.SystemStats
	err := r.db.First(&stats, "id = ?", id).Error
	return &stats, err
}

func (r *StatsRepository) Latest() (*models.SystemStats, error) {
	var stats models.SystemStats
	err := r.db.Order("date DESC").First(&stats).Error
	return &stats, err
}

func (r *StatsRepository) List(limit int) ([]models.SystemStats, error) {
	var snapshots []models.SystemStats
	query := r.db.Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&snapshots).Error
	return snapshots, err
}

// Delete prunes an old snapshot. Snapshots are never updated.
func (r *StatsRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.SystemStats{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
