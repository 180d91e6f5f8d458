package services

import (
	"testing"

	"tactical-server/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignResolvesByBusinessKeys(t *testing.T) {
	db := newTestDB(t)
	agentSvc := NewAgentService(db)
	operationSvc := NewOperationService(db)
	svc := NewAssignmentService(db)

	agent, err := agentSvc.Create(agentPayload("G-010A", "KESTREL"))
	require.NoError(t, err)
	operation, err := operationSvc.Create(operationPayload("OP-200", "Ironveil"))
	require.NoError(t, err)

	// By codename and operationId.
	a1, err := svc.Assign("KESTREL", "OP-200", "Lead")
	require.NoError(t, err)
	assert.Equal(t, agent.ID, a1.AgentID)
	assert.Equal(t, operation.ID, a1.OperationID)
	assert.Equal(t, "Lead", a1.Role)

	// By surrogate ids: same pair, so the role updates in place.
	a2, err := svc.Assign(agent.ID.String(), operation.ID.String(), "Support")
	require.NoError(t, err)
	assert.Equal(t, a1.ID, a2.ID)
	assert.Equal(t, "Support", a2.Role)

	assignments, err := svc.ListByOperation("OP-200")
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "Support", assignments[0].Role)
	assert.Equal(t, "KESTREL", assignments[0].Agent.Codename)
}

func TestAssignUnknownSidesNamed(t *testing.T) {
	db := newTestDB(t)
	agentSvc := NewAgentService(db)
	operationSvc := NewOperationService(db)
	svc := NewAssignmentService(db)

	_, err := agentSvc.Create(agentPayload("G-011B", "TALON"))
	require.NoError(t, err)
	_, err = operationSvc.Create(operationPayload("OP-201", "Glasswing"))
	require.NoError(t, err)

	_, err = svc.Assign("NOBODY", "OP-201", "")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Contains(t, err.Error(), "agent not found")

	_, err = svc.Assign("TALON", "OP-404", "")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Contains(t, err.Error(), "operation not found")
}

func TestUnassign(t *testing.T) {
	db := newTestDB(t)
	agentSvc := NewAgentService(db)
	operationSvc := NewOperationService(db)
	svc := NewAssignmentService(db)

	_, err := agentSvc.Create(agentPayload("G-012C", "MANTIS"))
	require.NoError(t, err)
	_, err = operationSvc.Create(operationPayload("OP-202", "Duskwatch"))
	require.NoError(t, err)

	_, err = svc.Assign("MANTIS", "OP-202", "Infiltrator")
	require.NoError(t, err)

	require.NoError(t, svc.Unassign("MANTIS", "OP-202"))

	assignments, err := svc.ListByOperation("OP-202")
	require.NoError(t, err)
	assert.Empty(t, assignments)

	err = svc.Unassign("MANTIS", "OP-202")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestOperationDeleteRemovesAssignments(t *testing.T) {
	db := newTestDB(t)
	agentSvc := NewAgentService(db)
	operationSvc := NewOperationService(db)
	svc := NewAssignmentService(db)

	agent, err := agentSvc.Create(agentPayload("G-013D", "GARNET"))
	require.NoError(t, err)
	operation, err := operationSvc.Create(operationPayload("OP-203", "Silverthread"))
	require.NoError(t, err)

	_, err = svc.Assign("GARNET", "OP-203", "Lead")
	require.NoError(t, err)

	require.NoError(t, operationSvc.Delete(operation.ID))

	_, err = operationSvc.Get(operation.ID, false)
	assert.True(t, errs.IsNotFound(err))

	// The agent survives; only the link rows went with the operation.
	kept, err := agentSvc.Get(agent.ID)
	require.NoError(t, err)
	assert.Equal(t, "GARNET", kept.Codename)

	var count int64
	require.NoError(t, db.Table("operation_agents").Count(&count).Error)
	assert.Zero(t, count)
}
