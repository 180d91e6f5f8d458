package services

import (
	"testing"

	"tactical-server/internal/errs"
	"tactical-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentCreateDefaults(t *testing.T) {
	svc := NewComponentService(newTestDB(t))

	component, err := svc.Create(map[string]interface{}{
		"name": "SAT-LINK",
		"role": "uplink",
	})
	require.NoError(t, err)

	assert.Equal(t, models.SystemOnline, component.Status)
	assert.Equal(t, float64(100), component.Health)
	assert.Zero(t, component.CPUUsage)
	assert.False(t, component.LastCheck.IsZero())
}

func TestComponentDuplicateName(t *testing.T) {
	svc := NewComponentService(newTestDB(t))

	_, err := svc.Create(map[string]interface{}{"name": "SAT-LINK", "role": "uplink"})
	require.NoError(t, err)

	_, err = svc.Create(map[string]interface{}{"name": "SAT-LINK", "role": "backup"})
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
	assert.Contains(t, err.Error(), "name already exists")
}

func TestComponentRejectsOutOfRangeGauges(t *testing.T) {
	svc := NewComponentService(newTestDB(t))

	_, err := svc.Create(map[string]interface{}{
		"name":        "RELAY-9",
		"role":        "relay",
		"cpuUsage":    float64(140),
		"memoryUsage": float64(-3),
	})
	require.Error(t, err)
	require.True(t, errs.IsValidation(err))

	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 2)
}

func TestComponentDeleteNullsActivityRefs(t *testing.T) {
	db := newTestDB(t)
	componentSvc := NewComponentService(db)
	activitySvc := NewActivityService(db)

	component, err := componentSvc.Create(map[string]interface{}{
		"name": "RELAY-2",
		"role": "relay",
	})
	require.NoError(t, err)

	log, err := activitySvc.Create(map[string]interface{}{
		"type":     models.ActivitySystemAlert,
		"message":  "relay degraded",
		"systemId": component.ID.String(),
	})
	require.NoError(t, err)

	require.NoError(t, componentSvc.Delete(component.ID))

	kept, err := activitySvc.Get(log.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.SystemID)

	_, err = componentSvc.Get(component.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestComponentListOrderedByName(t *testing.T) {
	svc := NewComponentService(newTestDB(t))

	for _, name := range []string{"ZULU-NODE", "ALPHA-NODE", "MIKE-NODE"} {
		_, err := svc.Create(map[string]interface{}{"name": name, "role": "node"})
		require.NoError(t, err)
	}

	components, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, components, 3)
	assert.Equal(t, "ALPHA-NODE", components[0].Name)
	assert.Equal(t, "MIKE-NODE", components[1].Name)
	assert.Equal(t, "ZULU-NODE", components[2].Name)
}
