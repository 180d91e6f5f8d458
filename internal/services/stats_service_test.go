package services

import (
	"context"
	"testing"

	"tactical-server/internal/errs"
	"tactical-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotEmptyFleet(t *testing.T) {
	svc := NewStatsService(newTestDB(t), nil)

	stats, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalAgents)
	assert.Zero(t, stats.TotalOperations)
	assert.Zero(t, stats.TotalSystems)
	assert.Zero(t, stats.AvgUptime)
	assert.Zero(t, stats.SuccessRate)
	assert.False(t, stats.Date.IsZero())
}

func TestSnapshotCountsFleet(t *testing.T) {
	db := newTestDB(t)
	agentSvc := NewAgentService(db)
	operationSvc := NewOperationService(db)
	componentSvc := NewComponentService(db)
	activitySvc := NewActivityService(db)
	svc := NewStatsService(db, nil)

	_, err := agentSvc.Create(map[string]interface{}{
		"agentId":  "G-030A",
		"codename": "LYNX",
		"skills":   []interface{}{"recon"},
		"status":   models.AgentActive,
	})
	require.NoError(t, err)
	_, err = agentSvc.Create(map[string]interface{}{
		"agentId":  "G-031B",
		"codename": "BASILISK",
		"skills":   []interface{}{"sabotage"},
		"status":   models.AgentCompromised,
	})
	require.NoError(t, err)
	_, err = agentSvc.Create(agentPayload("G-032C", "FERROUS"))
	require.NoError(t, err)

	_, err = operationSvc.Create(map[string]interface{}{
		"operationId": "OP-300",
		"name":        "Copperfield",
		"description": "classified",
		"objectives":  []interface{}{"extract"},
		"status":      models.OpActive,
	})
	require.NoError(t, err)
	_, err = operationSvc.Create(map[string]interface{}{
		"operationId": "OP-301",
		"name":        "Longwatch",
		"description": "classified",
		"objectives":  []interface{}{"observe"},
		"status":      models.OpCompleted,
	})
	require.NoError(t, err)

	_, err = componentSvc.Create(map[string]interface{}{
		"name":   "SAT-LINK",
		"role":   "uplink",
		"uptime": float64(99),
	})
	require.NoError(t, err)
	_, err = componentSvc.Create(map[string]interface{}{
		"name":   "RELAY-2",
		"role":   "relay",
		"status": models.SystemWarning,
		"uptime": float64(97),
	})
	require.NoError(t, err)

	for i, activityType := range []string{
		models.ActivityMissionComplete,
		models.ActivityMissionComplete,
		models.ActivityMissionComplete,
		models.ActivityMissionFailed,
	} {
		_, err = activitySvc.Create(map[string]interface{}{
			"type":    activityType,
			"message": "mission outcome",
		})
		require.NoError(t, err, "activity %d", i)
	}

	stats, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalAgents)
	assert.Equal(t, 1, stats.ActiveAgents)
	assert.Equal(t, 1, stats.CompromisedAgents)
	assert.Equal(t, 0, stats.TrainingAgents)
	assert.Equal(t, 2, stats.TotalOperations)
	assert.Equal(t, 1, stats.ActiveOperations)
	assert.Equal(t, 1, stats.CompletedOperations)
	assert.Equal(t, 2, stats.TotalSystems)
	assert.Equal(t, 1, stats.SystemsOnline)
	assert.Equal(t, 1, stats.Warnings)
	assert.InDelta(t, 98, stats.AvgUptime, 0.001)
	assert.InDelta(t, 75, stats.SuccessRate, 0.001)
}

func TestSnapshotsAppendAndLatest(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, nil)
	agentSvc := NewAgentService(db)

	first, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	_, err = agentSvc.Create(agentPayload("G-033D", "COBALT"))
	require.NoError(t, err)

	second, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, second.TotalAgents)

	latest, err := svc.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	snapshots, err := svc.List(0)
	require.NoError(t, err)
	assert.Len(t, snapshots, 2)

	// Earlier snapshots are immutable history.
	kept, err := svc.Get(first.ID)
	require.NoError(t, err)
	assert.Zero(t, kept.TotalAgents)
}

func TestLatestWithoutSnapshots(t *testing.T) {
	svc := NewStatsService(newTestDB(t), nil)

	_, err := svc.Latest(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}
