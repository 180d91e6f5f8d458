package api

import (
	"net/http"
	"strconv"

	"tactical-server/internal/services"
	"tactical-server/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AgentHandler struct {
	agentService *services.AgentService
	wsHub        *websocket.Hub
}

func NewAgentHandler(agentService *services.AgentService, wsHub *websocket.Hub) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
		wsHub:        wsHub,
	}
}

// List returns agents, optionally filtered by status, risk level and
// active flag.
func (h *AgentHandler) List(c *gin.Context) {
	status := c.Query("status")
	riskLevel := c.Query("riskLevel")

	var isActive *bool
	if raw := c.Query("isActive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid isActive"})
			return
		}
		isActive = &parsed
	}

	agents, err := h.agentService.List(status, riskLevel, isActive)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"agents": agents,
		"total":  len(agents),
	})
}

func (h *AgentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agent id"})
		return
	}

	agent, err := h.agentService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, agent)
}

func (h *AgentHandler) Create(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	agent, err := h.agentService.Create(payload)
	if err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("agent_created", map[string]interface{}{
		"agent_id": agent.ID,
		"codename": agent.Codename,
		"status":   agent.Status,
	})

	c.JSON(http.StatusCreated, agent)
}

func (h *AgentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agent id"})
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	agent, err := h.agentService.Update(id, payload)
	if err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("agent_updated", map[string]interface{}{
		"agent_id": agent.ID,
		"status":   agent.Status,
	})

	c.JSON(http.StatusOK, agent)
}

func (h *AgentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agent id"})
		return
	}

	if err := h.agentService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("agent_deleted", map[string]interface{}{
		"agent_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
