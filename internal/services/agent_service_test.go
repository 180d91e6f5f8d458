package services

import (
	"testing"

	"tactical-server/internal/errs"
	"tactical-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentCreateAppliesDefaults(t *testing.T) {
	svc := NewAgentService(newTestDB(t))

	agent, err := svc.Create(agentPayload("G-001A", "VIPER"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, agent.ID)
	assert.Equal(t, models.AgentStandby, agent.Status)
	assert.Equal(t, models.RiskLow, agent.RiskLevel)
	assert.Equal(t, 1, agent.ClearanceLevel)
	assert.True(t, agent.IsActive)
	assert.False(t, agent.LastSeen.IsZero())
}

func TestAgentCreateDuplicateBusinessKey(t *testing.T) {
	svc := NewAgentService(newTestDB(t))

	_, err := svc.Create(agentPayload("G-999Z", "CIPHER"))
	require.NoError(t, err)

	_, err = svc.Create(agentPayload("G-999Z", "MIRAGE"))
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
	assert.Contains(t, err.Error(), "agentId or codename already exists")

	agents, err := svc.List("", "", nil)
	require.NoError(t, err)
	assert.Len(t, agents, 1)
}

func TestAgentCreateRejectsInvalidPayload(t *testing.T) {
	svc := NewAgentService(newTestDB(t))

	_, err := svc.Create(map[string]interface{}{
		"agentId":      "G-002B",
		"codename":     "RAVEN",
		"skills":       []interface{}{"surveillance"},
		"status":       "GHOSTED",
		"missionCount": "12",
	})
	require.Error(t, err)
	require.True(t, errs.IsValidation(err))

	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	fields := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "missionCount")
}

func TestAgentUpdatePartialPreservesOtherFields(t *testing.T) {
	svc := NewAgentService(newTestDB(t))

	created, err := svc.Create(map[string]interface{}{
		"agentId":        "G-003C",
		"codename":       "NOMAD",
		"realName":       "J. Doyle",
		"skills":         []interface{}{"tracking", "languages"},
		"clearanceLevel": float64(7),
	})
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, map[string]interface{}{
		"status":   models.AgentActive,
		"location": "Prague",
	})
	require.NoError(t, err)

	assert.Equal(t, models.AgentActive, updated.Status)
	assert.Equal(t, "Prague", updated.Location)
	assert.Equal(t, "J. Doyle", updated.RealName)
	assert.Equal(t, 7, updated.ClearanceLevel)
	assert.Equal(t, models.StringList{"tracking", "languages"}, updated.Skills)
}

func TestAgentUpdateMissingID(t *testing.T) {
	svc := NewAgentService(newTestDB(t))

	_, err := svc.Update(uuid.New(), map[string]interface{}{"location": "Prague"})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestAgentDeleteNullsReferences(t *testing.T) {
	db := newTestDB(t)
	agentSvc := NewAgentService(db)
	operationSvc := NewOperationService(db)
	assignmentSvc := NewAssignmentService(db)
	activitySvc := NewActivityService(db)
	reportSvc := NewReportService(db)

	agent, err := agentSvc.Create(agentPayload("G-004D", "SPECTRE"))
	require.NoError(t, err)
	operation, err := operationSvc.Create(operationPayload("OP-100", "Nightfall"))
	require.NoError(t, err)
	_, err = assignmentSvc.Assign(agent.AgentID, operation.OperationID, "Lead")
	require.NoError(t, err)

	log, err := activitySvc.Create(map[string]interface{}{
		"type":    models.ActivityAgentDeployed,
		"message": "SPECTRE deployed",
		"agentId": agent.ID.String(),
	})
	require.NoError(t, err)

	report, err := reportSvc.Create(map[string]interface{}{
		"reportId": "RPT-100",
		"title":    "Field report",
		"content":  "All quiet.",
		"tags":     []interface{}{"routine"},
		"sourceId": agent.ID.String(),
	})
	require.NoError(t, err)

	require.NoError(t, agentSvc.Delete(agent.ID))

	_, err = agentSvc.Get(agent.ID)
	assert.True(t, errs.IsNotFound(err))

	assignments, err := assignmentSvc.ListByOperation(operation.OperationID)
	require.NoError(t, err)
	assert.Empty(t, assignments)

	keptLog, err := activitySvc.Get(log.ID)
	require.NoError(t, err)
	assert.Nil(t, keptLog.AgentID)

	keptReport, err := reportSvc.Get(report.ID)
	require.NoError(t, err)
	assert.Nil(t, keptReport.SourceID)
}

func TestAgentDoubleDelete(t *testing.T) {
	svc := NewAgentService(newTestDB(t))

	agent, err := svc.Create(agentPayload("G-005E", "WRAITH"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(agent.ID))

	err = svc.Delete(agent.ID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestAgentListFilters(t *testing.T) {
	svc := NewAgentService(newTestDB(t))

	_, err := svc.Create(map[string]interface{}{
		"agentId":  "G-006F",
		"codename": "HALCYON",
		"skills":   []interface{}{"recon"},
		"status":   models.AgentActive,
	})
	require.NoError(t, err)
	_, err = svc.Create(agentPayload("G-007G", "ORACLE"))
	require.NoError(t, err)

	active, err := svc.List(models.AgentActive, "", nil)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "HALCYON", active[0].Codename)

	all, err := svc.List("", "", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
