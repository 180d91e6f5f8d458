package api

import (
	"net/http"
	"strconv"

	"tactical-server/internal/services"
	"tactical-server/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StatsHandler struct {
	statsService *services.StatsService
	wsHub        *websocket.Hub
}

func NewStatsHandler(statsService *services.StatsService, wsHub *websocket.Hub) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		wsHub:        wsHub,
	}
}

// Snapshot computes and stores a fresh stats row from the current state of
// the fleet.
func (h *StatsHandler) Snapshot(c *gin.Context) {
	stats, err := h.statsService.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("stats_snapshot", stats)

	c.JSON(http.StatusCreated, stats)
}

// Latest returns the most recent snapshot.
func (h *StatsHandler) Latest(c *gin.Context) {
	stats, err := h.statsService.Latest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// List returns snapshot history newest first.
func (h *StatsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	snapshots, err := h.statsService.List(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshots": snapshots,
		"total":     len(snapshots),
	})
}

func (h *StatsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stats id"})
		return
	}

	stats, err := h.statsService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stats id"})
		return
	}

	if err := h.statsService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
