package services

import (
	"errors"

	"tactical-server/internal/errs"
	"tactical-server/internal/models"
	"tactical-server/internal/repositories"

	"gorm.io/gorm"
)

type AssignmentService struct {
	db             *gorm.DB
	assignmentRepo *repositories.AssignmentRepository
	agentRepo      *repositories.AgentRepository
	operationRepo  *repositories.OperationRepository
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{
		db:             db,
		assignmentRepo: repositories.NewAssignmentRepository(db),
		agentRepo:      repositories.NewAgentRepository(db),
		operationRepo:  repositories.NewOperationRepository(db),
	}
}

// Assign links an agent to an operation. Both sides resolve by surrogate id
// or business key (agentId/codename, operationId). If the pair is already
// assigned the role is updated in place; no duplicate row is created.
func (s *AssignmentService) Assign(agentRef, operationRef, role string) (*models.OperationAgent, error) {
	agent, err := s.agentRepo.GetByRef(agentRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("agent", agentRef)
		}
		return nil, errs.Dependency("resolve agent", err)
	}

	operation, err := s.operationRepo.GetByRef(operationRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("operation", operationRef)
		}
		return nil, errs.Dependency("resolve operation", err)
	}

	existing, err := s.assignmentRepo.GetByPair(agent.ID, operation.ID)
	if err == nil {
		if err := s.assignmentRepo.UpdateRole(existing.ID, role); err != nil {
			return nil, errs.Dependency("update assignment", err)
		}
		existing.Role = role
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Dependency("lookup assignment", err)
	}

	assignment := &models.OperationAgent{
		AgentID:     agent.ID,
		OperationID: operation.ID,
		Role:        role,
	}
	if err := s.assignmentRepo.Create(assignment); err != nil {
		// A concurrent assign for the same pair can win the insert; the
		// unique pair index turns that into a duplicate-key error, and the
		// second caller falls back to updating the role.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, lookupErr := s.assignmentRepo.GetByPair(agent.ID, operation.ID)
			if lookupErr != nil {
				return nil, errs.Dependency("lookup assignment", lookupErr)
			}
			if updateErr := s.assignmentRepo.UpdateRole(winner.ID, role); updateErr != nil {
				return nil, errs.Dependency("update assignment", updateErr)
			}
			winner.Role = role
			return winner, nil
		}
		return nil, errs.Dependency("create assignment", err)
	}
	return assignment, nil
}

// ListByOperation returns the assignments for an operation resolved by
// surrogate id or business key, each with its agent loaded.
func (s *AssignmentService) ListByOperation(operationRef string) ([]models.OperationAgent, error) {
	operation, err := s.operationRepo.GetByRef(operationRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("operation", operationRef)
		}
		return nil, errs.Dependency("resolve operation", err)
	}

	assignments, err := s.assignmentRepo.ListByOperation(operation.ID)
	if err != nil {
		return nil, errs.Dependency("list assignments", err)
	}
	return assignments, nil
}

// Unassign removes the assignment for an (agent, operation) pair.
func (s *AssignmentService) Unassign(agentRef, operationRef string) error {
	agent, err := s.agentRepo.GetByRef(agentRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("agent", agentRef)
		}
		return errs.Dependency("resolve agent", err)
	}

	operation, err := s.operationRepo.GetByRef(operationRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("operation", operationRef)
		}
		return errs.Dependency("resolve operation", err)
	}

	assignment, err := s.assignmentRepo.GetByPair(agent.ID, operation.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("assignment", agentRef)
		}
		return errs.Dependency("lookup assignment", err)
	}

	return translate("delete assignment", "assignment", s.assignmentRepo.Delete(assignment.ID))
}
