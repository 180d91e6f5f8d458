package services

import (
	"testing"
	"time"

	"tactical-server/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory store with the same error
// translation and UTC clock the server uses.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func agentPayload(agentID, codename string) map[string]interface{} {
	return map[string]interface{}{
		"agentId":  agentID,
		"codename": codename,
		"skills":   []interface{}{"infiltration"},
	}
}

func operationPayload(operationID, name string) map[string]interface{} {
	return map[string]interface{}{
		"operationId": operationID,
		"name":        name,
		"description": "classified",
		"objectives":  []interface{}{"recon"},
	}
}

func userPayload(email, username string) map[string]interface{} {
	return map[string]interface{}{
		"email":    email,
		"username": username,
		"password": "changeme",
	}
}
