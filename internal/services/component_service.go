package services

import (
	"time"

	"tactical-server/internal/models"
	"tactical-server/internal/repositories"
	"tactical-server/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComponentService struct {
	db            *gorm.DB
	componentRepo *repositories.ComponentRepository
	activityRepo  *repositories.ActivityRepository
}

func NewComponentService(db *gorm.DB) *ComponentService {
	return &ComponentService{
		db:            db,
		componentRepo: repositories.NewComponentRepository(db),
		activityRepo:  repositories.NewActivityRepository(db),
	}
}

func (s *ComponentService) Create(payload map[string]interface{}) (*models.SystemComponent, error) {
	n, err := validate(validation.ComponentSchema, payload, false)
	if err != nil {
		return nil, err
	}

	component := &models.SystemComponent{
		Name:         n.String("name"),
		Role:         n.String("role"),
		Status:       n.String("status"),
		Location:     n.String("location"),
		Health:       n.Float("health"),
		CPUUsage:     n.Float("cpuUsage"),
		MemoryUsage:  n.Float("memoryUsage"),
		StorageUsage: n.Float("storageUsage"),
		Uptime:       n.Float("uptime"),
		IsActive:     n.Bool("isActive"),
		LastCheck:    time.Now().UTC(),
	}
	if t, ok := n.Time("lastCheck"); ok {
		component.LastCheck = t
	}

	if err := s.componentRepo.Create(component); err != nil {
		return nil, translate("create component", "system component", err, "name")
	}
	return component, nil
}

func (s *ComponentService) Get(id uuid.UUID) (*models.SystemComponent, error) {
	component, err := s.componentRepo.GetByID(id)
	if err != nil {
		return nil, translate("get component", "system component", err)
	}
	return component, nil
}

func (s *ComponentService) List(status string) ([]models.SystemComponent, error) {
	components, err := s.componentRepo.List(status)
	if err != nil {
		return nil, translate("list components", "system component", err)
	}
	return components, nil
}

func (s *ComponentService) Update(id uuid.UUID, payload map[string]interface{}) (*models.SystemComponent, error) {
	n, err := validate(validation.ComponentSchema, payload, true)
	if err != nil {
		return nil, err
	}

	if _, err := s.componentRepo.GetByID(id); err != nil {
		return nil, translate("update component", "system component", err)
	}

	updates := buildUpdates(validation.ComponentSchema, n)
	if len(updates) > 0 {
		if err := s.componentRepo.Update(id, updates); err != nil {
			return nil, translate("update component", "system component", err, "name")
		}
	}
	return s.Get(id)
}

// Delete removes a component and nulls the system references held by
// activity logs.
func (s *ComponentService) Delete(id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.activityRepo.NullifyRef(tx, "system_id", id); err != nil {
			return err
		}
		return s.componentRepo.Delete(tx, id)
	})
	return translate("delete component", "system component", err)
}
