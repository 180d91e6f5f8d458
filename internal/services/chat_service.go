package services

import (
	"time"

	"tactical-server/internal/errs"
	"tactical-server/internal/models"
	"tactical-server/internal/repositories"
	"tactical-server/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultChatLimit = 50
	maxChatLimit     = 200
)

type ChatService struct {
	db        *gorm.DB
	chatRepo  *repositories.ChatRepository
	userRepo  *repositories.UserRepository
	agentRepo *repositories.AgentRepository
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{
		db:        db,
		chatRepo:  repositories.NewChatRepository(db),
		userRepo:  repositories.NewUserRepository(db),
		agentRepo: repositories.NewAgentRepository(db),
	}
}

func (s *ChatService) Create(payload map[string]interface{}) (*models.ChatMessage, error) {
	n, err := validate(validation.ChatMessageSchema, payload, false)
	if err != nil {
		return nil, err
	}
	if err := s.checkSender(n, nil); err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		ChannelID:   n.String("channelId"),
		Handle:      n.String("handle"),
		Message:     n.String("message"),
		IsEncrypted: n.Bool("isEncrypted"),
		KeyLocked:   n.Bool("keyLocked"),
		IsActive:    n.Bool("isActive"),
		Timestamp:   time.Now().UTC(),
	}
	if id, ok := n.UUID("senderId"); ok {
		message.SenderID = &id
	}
	if id, ok := n.UUID("agentId"); ok {
		message.AgentID = &id
	}
	if t, ok := n.Time("timestamp"); ok {
		message.Timestamp = t
	}

	if err := s.chatRepo.Create(message); err != nil {
		return nil, translate("create chat message", "chat message", err)
	}
	return message, nil
}

func (s *ChatService) Get(id uuid.UUID) (*models.ChatMessage, error) {
	message, err := s.chatRepo.GetByID(id)
	if err != nil {
		return nil, translate("get chat message", "chat message", err)
	}
	return message, nil
}

// List returns messages newest first, scoped to a channel when one is
// given, truncated to limit (default 50).
func (s *ChatService) List(channelID string, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = defaultChatLimit
	}
	if limit > maxChatLimit {
		limit = maxChatLimit
	}

	messages, err := s.chatRepo.List(channelID, limit)
	if err != nil {
		return nil, translate("list chat messages", "chat message", err)
	}
	return messages, nil
}

func (s *ChatService) Update(id uuid.UUID, payload map[string]interface{}) (*models.ChatMessage, error) {
	n, err := validate(validation.ChatMessageSchema, payload, true)
	if err != nil {
		return nil, err
	}
	current, err := s.chatRepo.GetByID(id)
	if err != nil {
		return nil, translate("update chat message", "chat message", err)
	}
	if err := s.checkSender(n, current); err != nil {
		return nil, err
	}

	updates := buildUpdates(validation.ChatMessageSchema, n)
	if len(updates) > 0 {
		if err := s.chatRepo.Update(id, updates); err != nil {
			return nil, translate("update chat message", "chat message", err)
		}
	}
	return s.Get(id)
}

func (s *ChatService) Delete(id uuid.UUID) error {
	return translate("delete chat message", "chat message", s.chatRepo.Delete(id))
}

// checkSender enforces that senderId (user) and agentId are mutually
// exclusive and resolve when supplied. Both absent is a system message.
// On updates current carries the stored row, so the exclusivity check runs
// against the merged result: a payload value when the field is supplied
// (null clears it), the stored value otherwise.
func (s *ChatService) checkSender(n validation.Normalized, current *models.ChatMessage) error {
	ve := &errs.ValidationError{}

	senderID, hasSender := n.UUID("senderId")
	agentID, hasAgent := n.UUID("agentId")

	senderSet := hasSender
	if !n.Has("senderId") && current != nil {
		senderSet = current.SenderID != nil
	}
	agentSet := hasAgent
	if !n.Has("agentId") && current != nil {
		agentSet = current.AgentID != nil
	}

	if senderSet && agentSet {
		ve.Add("senderId", "senderId and agentId are mutually exclusive")
	}
	if hasSender {
		exists, err := s.userRepo.Exists(senderID)
		if err != nil {
			return errs.Dependency("check sender", err)
		}
		if !exists {
			ve.Add("senderId", "references unknown user")
		}
	}
	if hasAgent {
		exists, err := s.agentRepo.Exists(agentID)
		if err != nil {
			return errs.Dependency("check agent", err)
		}
		if !exists {
			ve.Add("agentId", "references unknown agent")
		}
	}

	if ve.HasViolations() {
		return ve
	}
	return nil
}
