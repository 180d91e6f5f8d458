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

const defaultActivityLimit = 100

type ActivityService struct {
	db            *gorm.DB
	activityRepo  *repositories.ActivityRepository
	userRepo      *repositories.UserRepository
	agentRepo     *repositories.AgentRepository
	operationRepo *repositories.OperationRepository
	reportRepo    *repositories.ReportRepository
	componentRepo *repositories.ComponentRepository
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{
		db:            db,
		activityRepo:  repositories.NewActivityRepository(db),
		userRepo:      repositories.NewUserRepository(db),
		agentRepo:     repositories.NewAgentRepository(db),
		operationRepo: repositories.NewOperationRepository(db),
		reportRepo:    repositories.NewReportRepository(db),
		componentRepo: repositories.NewComponentRepository(db),
	}
}

func (s *ActivityService) Create(payload map[string]interface{}) (*models.ActivityLog, error) {
	n, err := validate(validation.ActivityLogSchema, payload, false)
	if err != nil {
		return nil, err
	}
	if err := s.checkRefs(n); err != nil {
		return nil, err
	}

	log := &models.ActivityLog{
		Type:      n.String("type"),
		Message:   n.String("message"),
		Details:   models.JSONB(n.Object("details")),
		Timestamp: time.Now().UTC(),
	}
	if id, ok := n.UUID("userId"); ok {
		log.UserID = &id
	}
	if id, ok := n.UUID("agentId"); ok {
		log.AgentID = &id
	}
	if id, ok := n.UUID("operationId"); ok {
		log.OperationID = &id
	}
	if id, ok := n.UUID("reportId"); ok {
		log.ReportID = &id
	}
	if id, ok := n.UUID("systemId"); ok {
		log.SystemID = &id
	}
	if t, ok := n.Time("timestamp"); ok {
		log.Timestamp = t
	}

	if err := s.activityRepo.Create(log); err != nil {
		return nil, translate("create activity log", "activity log", err)
	}
	return s.Get(log.ID)
}

func (s *ActivityService) Get(id uuid.UUID) (*models.ActivityLog, error) {
	log, err := s.activityRepo.GetByID(id)
	if err != nil {
		return nil, translate("get activity log", "activity log", err)
	}
	return log, nil
}

// List returns logs newest first with their referenced entities loaded for
// display.
func (s *ActivityService) List(activityType string, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	logs, err := s.activityRepo.List(activityType, limit)
	if err != nil {
		return nil, translate("list activity logs", "activity log", err)
	}
	return logs, nil
}

func (s *ActivityService) Update(id uuid.UUID, payload map[string]interface{}) (*models.ActivityLog, error) {
	n, err := validate(validation.ActivityLogSchema, payload, true)
	if err != nil {
		return nil, err
	}
	if err := s.checkRefs(n); err != nil {
		return nil, err
	}

	if _, err := s.activityRepo.GetByID(id); err != nil {
		return nil, translate("update activity log", "activity log", err)
	}

	updates := buildUpdates(validation.ActivityLogSchema, n)
	if len(updates) > 0 {
		if err := s.activityRepo.Update(id, updates); err != nil {
			return nil, translate("update activity log", "activity log", err)
		}
	}
	return s.Get(id)
}

func (s *ActivityService) Delete(id uuid.UUID) error {
	return translate("delete activity log", "activity log", s.activityRepo.Delete(id))
}

// checkRefs verifies that every supplied reference resolves to an existing
// row. A dangling reference is a validation error naming the field.
func (s *ActivityService) checkRefs(n validation.Normalized) error {
	ve := &errs.ValidationError{}

	checks := []struct {
		field    string
		resource string
		exists   func(uuid.UUID) (bool, error)
	}{
		{"userId", "user", s.userRepo.Exists},
		{"agentId", "agent", s.agentRepo.Exists},
		{"operationId", "operation", s.operationRepo.Exists},
		{"reportId", "intelligence report", s.reportRepo.Exists},
		{"systemId", "system component", s.componentRepo.Exists},
	}

	for _, check := range checks {
		id, ok := n.UUID(check.field)
		if !ok {
			continue
		}
		exists, err := check.exists(id)
		if err != nil {
			return errs.Dependency("check "+check.resource, err)
		}
		if !exists {
			ve.Add(check.field, "references unknown "+check.resource)
		}
	}

	if ve.HasViolations() {
		return ve
	}
	return nil
}
