package repositories

import (
	"tactical-server/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Create(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

func (r *ChatRepository) GetByID(id uuid.UUID) (*models.ChatMessage, error) {
	var message models.ChatMessage
	err := r.db.Preload("Sender").Preload("Agent").
		First(&message, "id = ?", id).Error
	return &message, err
}

// List returns messages newest first, optionally scoped to a channel,
// truncated to limit.
func (r *ChatRepository) List(channelID string, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage

	query := r.db.Preload("Sender").Preload("Agent")
	if channelID != "" {
		query = query.Where("channel_id = ?", channelID)
	}

	err := query.Order("timestamp DESC").Limit(limit).Find(&messages).Error
	return messages, err
}

func (r *ChatRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.ChatMessage{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ChatRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.ChatMessage{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// NullifyRef clears one reference column on every message pointing at the
// given id. Used by the nullify-on-delete policy.
func (r *ChatRepository) NullifyRef(tx *gorm.DB, column string, id uuid.UUID) error {
	return tx.Model(&models.ChatMessage{}).
		Where(column+" = ?", id).
		Update(column, nil).Error
}
