package services

import (
	"fmt"
	"testing"
	"time"

	"tactical-server/internal/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCreateSystemMessage(t *testing.T) {
	svc := NewChatService(newTestDB(t))

	message, err := svc.Create(map[string]interface{}{
		"channelId": "SECURE-001",
		"handle":    "COMMAND",
		"message":   "channel established",
	})
	require.NoError(t, err)

	assert.True(t, message.IsSystemMessage())
	assert.True(t, message.IsEncrypted)
	assert.True(t, message.KeyLocked)
	assert.False(t, message.Timestamp.IsZero())
}

func TestChatCreateRejectsBothSenders(t *testing.T) {
	db := newTestDB(t)
	userSvc := NewUserService(db)
	agentSvc := NewAgentService(db)
	svc := NewChatService(db)

	user, err := userSvc.Create(userPayload("ops@command.io", "operator"))
	require.NoError(t, err)
	agent, err := agentSvc.Create(agentPayload("G-020A", "ECHO"))
	require.NoError(t, err)

	_, err = svc.Create(map[string]interface{}{
		"channelId": "SECURE-001",
		"handle":    "ECHO",
		"message":   "checking in",
		"senderId":  user.ID.String(),
		"agentId":   agent.ID.String(),
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestChatUpdateRejectsSecondSender(t *testing.T) {
	db := newTestDB(t)
	userSvc := NewUserService(db)
	agentSvc := NewAgentService(db)
	svc := NewChatService(db)

	user, err := userSvc.Create(userPayload("ops@command.io", "operator"))
	require.NoError(t, err)
	agent, err := agentSvc.Create(agentPayload("G-021A", "FERRET"))
	require.NoError(t, err)

	message, err := svc.Create(map[string]interface{}{
		"channelId": "SECURE-001",
		"handle":    "operator",
		"message":   "on station",
		"senderId":  user.ID.String(),
	})
	require.NoError(t, err)

	// Attaching an agent to a user-sent message must fail even though the
	// payload alone carries only one reference.
	_, err = svc.Update(message.ID, map[string]interface{}{
		"agentId": agent.ID.String(),
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "mutually exclusive")

	kept, err := svc.Get(message.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.SenderID)
	assert.Nil(t, kept.AgentID)

	// Clearing the user in the same update is the legitimate way to switch.
	switched, err := svc.Update(message.ID, map[string]interface{}{
		"senderId": nil,
		"agentId":  agent.ID.String(),
	})
	require.NoError(t, err)
	assert.Nil(t, switched.SenderID)
	require.NotNil(t, switched.AgentID)
	assert.Equal(t, agent.ID, *switched.AgentID)
}

func TestChatCreateRejectsUnknownSender(t *testing.T) {
	svc := NewChatService(newTestDB(t))

	_, err := svc.Create(map[string]interface{}{
		"channelId": "SECURE-001",
		"handle":    "ghost",
		"message":   "hello",
		"senderId":  uuid.New().String(),
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "references unknown user")
}

func TestChatListChannelScopedNewestFirst(t *testing.T) {
	svc := NewChatService(newTestDB(t))

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		_, err := svc.Create(map[string]interface{}{
			"channelId": "SECURE-001",
			"handle":    "COMMAND",
			"message":   fmt.Sprintf("msg %d", i),
			"timestamp": base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339),
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(map[string]interface{}{
		"channelId": "SECURE-002",
		"handle":    "COMMAND",
		"message":   "other channel",
	})
	require.NoError(t, err)

	// Default limit is 50, scoped to the requested channel, newest first.
	messages, err := svc.List("SECURE-001", 0)
	require.NoError(t, err)
	require.Len(t, messages, 50)
	assert.Equal(t, "msg 59", messages[0].Message)
	for _, m := range messages {
		assert.Equal(t, "SECURE-001", m.ChannelID)
	}

	all, err := svc.List("", 200)
	require.NoError(t, err)
	assert.Len(t, all, 61)
}

func TestChatDeleteMissing(t *testing.T) {
	svc := NewChatService(newTestDB(t))

	err := svc.Delete(uuid.New())
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}
