package api

import (
	"net/http"
	"strconv"

	"tactical-server/internal/services"
	"tactical-server/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OperationHandler struct {
	operationService  *services.OperationService
	assignmentService *services.AssignmentService
	wsHub             *websocket.Hub
}

func NewOperationHandler(operationService *services.OperationService, assignmentService *services.AssignmentService, wsHub *websocket.Hub) *OperationHandler {
	return &OperationHandler{
		operationService:  operationService,
		assignmentService: assignmentService,
		wsHub:             wsHub,
	}
}

// List returns operations, optionally filtered by status. includeAgents
// loads each operation's roster.
func (h *OperationHandler) List(c *gin.Context) {
	status := c.Query("status")
	includeAgents, _ := strconv.ParseBool(c.DefaultQuery("includeAgents", "false"))

	operations, err := h.operationService.List(status, includeAgents)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"operations": operations,
		"total":      len(operations),
	})
}

func (h *OperationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid operation id"})
		return
	}

	includeAgents, _ := strconv.ParseBool(c.DefaultQuery("includeAgents", "true"))

	operation, err := h.operationService.Get(id, includeAgents)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, operation)
}

func (h *OperationHandler) Create(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	operation, err := h.operationService.Create(payload)
	if err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("operation_created", map[string]interface{}{
		"operation_id": operation.ID,
		"name":         operation.Name,
		"status":       operation.Status,
	})

	c.JSON(http.StatusCreated, operation)
}

func (h *OperationHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid operation id"})
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	operation, err := h.operationService.Update(id, payload)
	if err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("operation_updated", map[string]interface{}{
		"operation_id": operation.ID,
		"status":       operation.Status,
	})

	c.JSON(http.StatusOK, operation)
}

func (h *OperationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid operation id"})
		return
	}

	if err := h.operationService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("operation_deleted", map[string]interface{}{
		"operation_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// AssignAgent links an agent to the operation in the path. The agent field
// accepts a surrogate id, an agentId or a codename; assigning an already
// assigned agent updates the role instead of duplicating the link.
func (h *OperationHandler) AssignAgent(c *gin.Context) {
	operationRef := c.Param("id")

	var req struct {
		Agent string `json:"agent" binding:"required"`
		Role  string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "agent is required"})
		return
	}

	assignment, err := h.assignmentService.Assign(req.Agent, operationRef, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("agent_assigned", map[string]interface{}{
		"operation_id": assignment.OperationID,
		"agent_id":     assignment.AgentID,
		"role":         assignment.Role,
	})

	c.JSON(http.StatusCreated, assignment)
}

// ListAgents returns the operation's roster with each agent loaded.
func (h *OperationHandler) ListAgents(c *gin.Context) {
	assignments, err := h.assignmentService.ListByOperation(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignments": assignments,
		"total":       len(assignments),
	})
}

// UnassignAgent removes an agent from the operation's roster.
func (h *OperationHandler) UnassignAgent(c *gin.Context) {
	operationRef := c.Param("id")
	agentRef := c.Param("agentRef")

	if err := h.assignmentService.Unassign(agentRef, operationRef); err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("agent_unassigned", map[string]interface{}{
		"operation": operationRef,
		"agent":     agentRef,
	})

	c.JSON(http.StatusOK, gin.H{"status": "unassigned"})
}
