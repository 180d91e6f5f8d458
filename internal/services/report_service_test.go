package services

import (
	"testing"

	"tactical-server/internal/errs"
	"tactical-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCreateWithResolvedRefs(t *testing.T) {
	db := newTestDB(t)
	agentSvc := NewAgentService(db)
	operationSvc := NewOperationService(db)
	svc := NewReportService(db)

	agent, err := agentSvc.Create(agentPayload("G-040A", "SPARROW"))
	require.NoError(t, err)
	operation, err := operationSvc.Create(operationPayload("OP-400", "Riverstone"))
	require.NoError(t, err)

	report, err := svc.Create(map[string]interface{}{
		"reportId":    "RPT-400",
		"title":       "Checkpoint movement",
		"content":     "Two convoys observed after midnight.",
		"tags":        []interface{}{"convoy", "border"},
		"sourceId":    agent.ID.String(),
		"operationId": operation.ID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, models.ClassConfidential, report.Classification)
	assert.Equal(t, models.IntelHumint, report.Type)
	require.NotNil(t, report.SourceID)
	assert.Equal(t, agent.ID, *report.SourceID)
	assert.False(t, report.PublishedAt.IsZero())

	loaded, err := svc.Get(report.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Source)
	assert.Equal(t, "SPARROW", loaded.Source.Codename)
}

func TestReportCreateDanglingSource(t *testing.T) {
	svc := NewReportService(newTestDB(t))

	_, err := svc.Create(map[string]interface{}{
		"reportId": "RPT-401",
		"title":    "Orphan report",
		"content":  "No such source.",
		"tags":     []interface{}{"test"},
		"sourceId": uuid.New().String(),
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "references unknown agent")
}

func TestReportDuplicateReportID(t *testing.T) {
	svc := NewReportService(newTestDB(t))

	payload := map[string]interface{}{
		"reportId": "RPT-402",
		"title":    "First filing",
		"content":  "Initial.",
		"tags":     []interface{}{"initial"},
	}
	_, err := svc.Create(payload)
	require.NoError(t, err)

	payload["title"] = "Second filing"
	_, err = svc.Create(payload)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
	assert.Contains(t, err.Error(), "reportId already exists")
}

func TestReportListFilters(t *testing.T) {
	svc := NewReportService(newTestDB(t))

	_, err := svc.Create(map[string]interface{}{
		"reportId":       "RPT-403",
		"title":          "Intercepted traffic",
		"content":        "Burst transmissions.",
		"tags":           []interface{}{"radio"},
		"classification": models.ClassTopSecret,
		"type":           models.IntelSigint,
		"threatLevel":    models.RiskHigh,
	})
	require.NoError(t, err)
	_, err = svc.Create(map[string]interface{}{
		"reportId": "RPT-404",
		"title":    "Asset debrief",
		"content":  "Routine.",
		"tags":     []interface{}{"debrief"},
	})
	require.NoError(t, err)

	sigint, err := svc.List("", models.IntelSigint, "")
	require.NoError(t, err)
	require.Len(t, sigint, 1)
	assert.Equal(t, "RPT-403", sigint[0].ReportID)

	topSecretHigh, err := svc.List(models.ClassTopSecret, "", models.RiskHigh)
	require.NoError(t, err)
	assert.Len(t, topSecretHigh, 1)

	all, err := svc.List("", "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReportUpdateClearsOperationRef(t *testing.T) {
	db := newTestDB(t)
	operationSvc := NewOperationService(db)
	svc := NewReportService(db)

	operation, err := operationSvc.Create(operationPayload("OP-401", "Foxglove"))
	require.NoError(t, err)

	report, err := svc.Create(map[string]interface{}{
		"reportId":    "RPT-405",
		"title":       "Linked report",
		"content":     "Tied to Foxglove.",
		"tags":        []interface{}{"linked"},
		"operationId": operation.ID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, report.OperationID)

	updated, err := svc.Update(report.ID, map[string]interface{}{
		"operationId": nil,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.OperationID)
}
