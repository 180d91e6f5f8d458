package api

import (
	"net/http"
	"strconv"

	"tactical-server/internal/services"
	"tactical-server/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ActivityHandler struct {
	activityService *services.ActivityService
	wsHub           *websocket.Hub
}

func NewActivityHandler(activityService *services.ActivityService, wsHub *websocket.Hub) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		wsHub:           wsHub,
	}
}

// List returns logs newest first, optionally filtered by type.
func (h *ActivityHandler) List(c *gin.Context) {
	activityType := c.Query("type")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	logs, err := h.activityService.List(activityType, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": len(logs),
	})
}

func (h *ActivityHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity log id"})
		return
	}

	log, err := h.activityService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}

func (h *ActivityHandler) Create(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	log, err := h.activityService.Create(payload)
	if err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("activity_logged", map[string]interface{}{
		"log_id":  log.ID,
		"type":    log.Type,
		"message": log.Message,
	})

	c.JSON(http.StatusCreated, log)
}

func (h *ActivityHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity log id"})
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	log, err := h.activityService.Update(id, payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}

func (h *ActivityHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity log id"})
		return
	}

	if err := h.activityService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
