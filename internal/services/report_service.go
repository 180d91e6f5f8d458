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

type ReportService struct {
	db            *gorm.DB
	reportRepo    *repositories.ReportRepository
	agentRepo     *repositories.AgentRepository
	operationRepo *repositories.OperationRepository
	activityRepo  *repositories.ActivityRepository
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{
		db:            db,
		reportRepo:    repositories.NewReportRepository(db),
		agentRepo:     repositories.NewAgentRepository(db),
		operationRepo: repositories.NewOperationRepository(db),
		activityRepo:  repositories.NewActivityRepository(db),
	}
}

func (s *ReportService) Create(payload map[string]interface{}) (*models.IntelligenceReport, error) {
	n, err := validate(validation.ReportSchema, payload, false)
	if err != nil {
		return nil, err
	}
	if err := s.checkRefs(n); err != nil {
		return nil, err
	}

	report := &models.IntelligenceReport{
		ReportID:       n.String("reportId"),
		Title:          n.String("title"),
		Description:    n.String("description"),
		Content:        n.String("content"),
		Classification: n.String("classification"),
		Type:           n.String("type"),
		Location:       n.String("location"),
		Tags:           models.StringList(n.List("tags")),
		ThreatLevel:    n.String("threatLevel"),
		IsActive:       n.Bool("isActive"),
		PublishedAt:    time.Now().UTC(),
	}
	if id, ok := n.UUID("sourceId"); ok {
		report.SourceID = &id
	}
	if id, ok := n.UUID("operationId"); ok {
		report.OperationID = &id
	}
	if t, ok := n.Time("publishedAt"); ok {
		report.PublishedAt = t
	}

	if err := s.reportRepo.Create(report); err != nil {
		return nil, translate("create report", "intelligence report", err, "reportId")
	}
	return report, nil
}

func (s *ReportService) Get(id uuid.UUID) (*models.IntelligenceReport, error) {
	report, err := s.reportRepo.GetByID(id)
	if err != nil {
		return nil, translate("get report", "intelligence report", err)
	}
	return report, nil
}

func (s *ReportService) List(classification, intelType, threatLevel string) ([]models.IntelligenceReport, error) {
	reports, err := s.reportRepo.List(classification, intelType, threatLevel)
	if err != nil {
		return nil, translate("list reports", "intelligence report", err)
	}
	return reports, nil
}

func (s *ReportService) Update(id uuid.UUID, payload map[string]interface{}) (*models.IntelligenceReport, error) {
	n, err := validate(validation.ReportSchema, payload, true)
	if err != nil {
		return nil, err
	}
	if err := s.checkRefs(n); err != nil {
		return nil, err
	}

	if _, err := s.reportRepo.GetByID(id); err != nil {
		return nil, translate("update report", "intelligence report", err)
	}

	updates := buildUpdates(validation.ReportSchema, n)
	if len(updates) > 0 {
		if err := s.reportRepo.Update(id, updates); err != nil {
			return nil, translate("update report", "intelligence report", err, "reportId")
		}
	}
	return s.Get(id)
}

// Delete removes a report and nulls the report references held by activity
// logs.
func (s *ReportService) Delete(id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.activityRepo.NullifyRef(tx, "report_id", id); err != nil {
			return err
		}
		return s.reportRepo.Delete(tx, id)
	})
	return translate("delete report", "intelligence report", err)
}

// checkRefs verifies that supplied optional references resolve. A dangling
// reference is a validation error naming the field.
func (s *ReportService) checkRefs(n validation.Normalized) error {
	ve := &errs.ValidationError{}

	if id, ok := n.UUID("sourceId"); ok {
		exists, err := s.agentRepo.Exists(id)
		if err != nil {
			return errs.Dependency("check source", err)
		}
		if !exists {
			ve.Add("sourceId", "references unknown agent")
		}
	}
	if id, ok := n.UUID("operationId"); ok {
		exists, err := s.operationRepo.Exists(id)
		if err != nil {
			return errs.Dependency("check operation", err)
		}
		if !exists {
			ve.Add("operationId", "references unknown operation")
		}
	}

	if ve.HasViolations() {
		return ve
	}
	return nil
}
