package services

import (
	"fmt"
	"testing"
	"time"

	"tactical-server/internal/errs"
	"tactical-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityCreateWithDetails(t *testing.T) {
	db := newTestDB(t)
	agentSvc := NewAgentService(db)
	svc := NewActivityService(db)

	agent, err := agentSvc.Create(agentPayload("G-050A", "HARRIER"))
	require.NoError(t, err)

	log, err := svc.Create(map[string]interface{}{
		"type":    models.ActivityAgentDeployed,
		"message": "HARRIER inserted at LZ",
		"agentId": agent.ID.String(),
		"details": map[string]interface{}{"lz": "north ridge"},
	})
	require.NoError(t, err)

	assert.Equal(t, "north ridge", log.Details["lz"])
	require.NotNil(t, log.Agent)
	assert.Equal(t, "HARRIER", log.Agent.Codename)
	assert.False(t, log.Timestamp.IsZero())
}

func TestActivityCreateRejectsUnknownType(t *testing.T) {
	svc := NewActivityService(newTestDB(t))

	_, err := svc.Create(map[string]interface{}{
		"type":    "COFFEE_BREAK",
		"message": "unscheduled",
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestActivityCreateRejectsDanglingRefs(t *testing.T) {
	svc := NewActivityService(newTestDB(t))

	_, err := svc.Create(map[string]interface{}{
		"type":        models.ActivityMissionStart,
		"message":     "ghost mission",
		"agentId":     uuid.New().String(),
		"operationId": uuid.New().String(),
	})
	require.Error(t, err)
	require.True(t, errs.IsValidation(err))

	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 2)
}

func TestActivityListFilteredNewestFirst(t *testing.T) {
	svc := NewActivityService(newTestDB(t))

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := svc.Create(map[string]interface{}{
			"type":      models.ActivityMissionComplete,
			"message":   fmt.Sprintf("mission %d complete", i),
			"timestamp": base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(map[string]interface{}{
		"type":    models.ActivityLogin,
		"message": "operator logged in",
	})
	require.NoError(t, err)

	completions, err := svc.List(models.ActivityMissionComplete, 0)
	require.NoError(t, err)
	require.Len(t, completions, 3)
	assert.Equal(t, "mission 2 complete", completions[0].Message)

	limited, err := svc.List(models.ActivityMissionComplete, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
