package services

import (
	"tactical-server/internal/models"
	"tactical-server/internal/repositories"
	"tactical-server/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OperationService struct {
	db            *gorm.DB
	operationRepo *repositories.OperationRepository
	activityRepo  *repositories.ActivityRepository
}

func NewOperationService(db *gorm.DB) *OperationService {
	return &OperationService{
		db:            db,
		operationRepo: repositories.NewOperationRepository(db),
		activityRepo:  repositories.NewActivityRepository(db),
	}
}

func (s *OperationService) Create(payload map[string]interface{}) (*models.Operation, error) {
	n, err := validate(validation.OperationSchema, payload, false)
	if err != nil {
		return nil, err
	}

	op := &models.Operation{
		OperationID: n.String("operationId"),
		Name:        n.String("name"),
		Description: n.String("description"),
		Status:      n.String("status"),
		RiskLevel:   n.String("riskLevel"),
		Location:    n.String("location"),
		Briefing:    n.String("briefing"),
		Objectives:  models.StringList(n.List("objectives")),
		IsActive:    n.Bool("isActive"),
	}
	if t, ok := n.Time("startDate"); ok {
		op.StartDate = &t
	}
	if t, ok := n.Time("endDate"); ok {
		op.EndDate = &t
	}
	if t, ok := n.Time("plannedEndDate"); ok {
		op.PlannedEndDate = &t
	}

	if err := s.operationRepo.Create(op); err != nil {
		return nil, translate("create operation", "operation", err, "operationId")
	}
	return op, nil
}

func (s *OperationService) Get(id uuid.UUID, includeAgents bool) (*models.Operation, error) {
	op, err := s.operationRepo.GetByID(id, includeAgents)
	if err != nil {
		return nil, translate("get operation", "operation", err)
	}
	return op, nil
}

func (s *OperationService) List(status string, includeAgents bool) ([]models.Operation, error) {
	ops, err := s.operationRepo.List(status, includeAgents)
	if err != nil {
		return nil, translate("list operations", "operation", err)
	}
	return ops, nil
}

func (s *OperationService) Update(id uuid.UUID, payload map[string]interface{}) (*models.Operation, error) {
	n, err := validate(validation.OperationSchema, payload, true)
	if err != nil {
		return nil, err
	}

	if _, err := s.operationRepo.GetByID(id, false); err != nil {
		return nil, translate("update operation", "operation", err)
	}

	updates := buildUpdates(validation.OperationSchema, n)
	if len(updates) > 0 {
		if err := s.operationRepo.Update(id, updates); err != nil {
			return nil, translate("update operation", "operation", err, "operationId")
		}
	}
	return s.Get(id, false)
}

// Delete removes an operation, its assignments, and nulls the operation
// references held by activity logs and reports.
func (s *OperationService) Delete(id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("operation_id = ?", id).Delete(&models.OperationAgent{}).Error; err != nil {
			return err
		}
		if err := s.activityRepo.NullifyRef(tx, "operation_id", id); err != nil {
			return err
		}
		if err := tx.Model(&models.IntelligenceReport{}).
			Where("operation_id = ?", id).Update("operation_id", nil).Error; err != nil {
			return err
		}
		return s.operationRepo.Delete(tx, id)
	})
	return translate("delete operation", "operation", err)
}
