package services

import (
	"time"

	"tactical-server/internal/models"
	"tactical-server/internal/repositories"
	"tactical-server/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AgentService struct {
	db           *gorm.DB
	agentRepo    *repositories.AgentRepository
	activityRepo *repositories.ActivityRepository
	chatRepo     *repositories.ChatRepository
	reportRepo   *repositories.ReportRepository
}

func NewAgentService(db *gorm.DB) *AgentService {
	return &AgentService{
		db:           db,
		agentRepo:    repositories.NewAgentRepository(db),
		activityRepo: repositories.NewActivityRepository(db),
		chatRepo:     repositories.NewChatRepository(db),
		reportRepo:   repositories.NewReportRepository(db),
	}
}

func (s *AgentService) Create(payload map[string]interface{}) (*models.Agent, error) {
	n, err := validate(validation.AgentSchema, payload, false)
	if err != nil {
		return nil, err
	}

	agent := &models.Agent{
		AgentID:        n.String("agentId"),
		Codename:       n.String("codename"),
		RealName:       n.String("realName"),
		Status:         n.String("status"),
		Location:       n.String("location"),
		RiskLevel:      n.String("riskLevel"),
		MissionCount:   n.Int("missionCount"),
		Skills:         models.StringList(n.List("skills")),
		ClearanceLevel: n.Int("clearanceLevel"),
		IsActive:       n.Bool("isActive"),
		LastSeen:       time.Now().UTC(),
	}
	if t, ok := n.Time("lastSeen"); ok {
		agent.LastSeen = t
	}

	if err := s.agentRepo.Create(agent); err != nil {
		return nil, translate("create agent", "agent", err, "agentId", "codename")
	}
	return agent, nil
}

func (s *AgentService) Get(id uuid.UUID) (*models.Agent, error) {
	agent, err := s.agentRepo.GetByID(id)
	if err != nil {
		return nil, translate("get agent", "agent", err)
	}
	return agent, nil
}

func (s *AgentService) List(status, riskLevel string, isActive *bool) ([]models.Agent, error) {
	agents, err := s.agentRepo.List(status, riskLevel, isActive)
	if err != nil {
		return nil, translate("list agents", "agent", err)
	}
	return agents, nil
}

func (s *AgentService) Update(id uuid.UUID, payload map[string]interface{}) (*models.Agent, error) {
	n, err := validate(validation.AgentSchema, payload, true)
	if err != nil {
		return nil, err
	}

	if _, err := s.agentRepo.GetByID(id); err != nil {
		return nil, translate("update agent", "agent", err)
	}

	updates := buildUpdates(validation.AgentSchema, n)
	if len(updates) > 0 {
		if err := s.agentRepo.Update(id, updates); err != nil {
			return nil, translate("update agent", "agent", err, "agentId", "codename")
		}
	}
	return s.Get(id)
}

// Delete removes an agent, its operation assignments, and nulls the agent
// references held by activity logs, chat messages and reports.
func (s *AgentService) Delete(id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("agent_id = ?", id).Delete(&models.OperationAgent{}).Error; err != nil {
			return err
		}
		if err := s.activityRepo.NullifyRef(tx, "agent_id", id); err != nil {
			return err
		}
		if err := s.chatRepo.NullifyRef(tx, "agent_id", id); err != nil {
			return err
		}
		if err := tx.Model(&models.IntelligenceReport{}).
			Where("source_id = ?", id).Update("source_id", nil).Error; err != nil {
			return err
		}
		return s.agentRepo.Delete(tx, id)
	})
	return translate("delete agent", "agent", err)
}
