package api

import (
	"net/http"

	"tactical-server/internal/services"
	"tactical-server/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComponentHandler struct {
	componentService *services.ComponentService
	wsHub            *websocket.Hub
}

func NewComponentHandler(componentService *services.ComponentService, wsHub *websocket.Hub) *ComponentHandler {
	return &ComponentHandler{
		componentService: componentService,
		wsHub:            wsHub,
	}
}

func (h *ComponentHandler) List(c *gin.Context) {
	components, err := h.componentService.List(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"components": components,
		"total":      len(components),
	})
}

func (h *ComponentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid component id"})
		return
	}

	component, err := h.componentService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, component)
}

func (h *ComponentHandler) Create(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	component, err := h.componentService.Create(payload)
	if err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("component_created", map[string]interface{}{
		"component_id": component.ID,
		"name":         component.Name,
		"status":       component.Status,
	})

	c.JSON(http.StatusCreated, component)
}

func (h *ComponentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid component id"})
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	component, err := h.componentService.Update(id, payload)
	if err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("component_updated", map[string]interface{}{
		"component_id": component.ID,
		"status":       component.Status,
	})

	c.JSON(http.StatusOK, component)
}

func (h *ComponentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid component id"})
		return
	}

	if err := h.componentService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("component_deleted", map[string]interface{}{
		"component_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
