package api

import (
	"net/http"

	"tactical-server/internal/services"
	"tactical-server/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reportService *services.ReportService
	wsHub         *websocket.Hub
}

func NewReportHandler(reportService *services.ReportService, wsHub *websocket.Hub) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		wsHub:         wsHub,
	}
}

// List returns reports newest first, optionally filtered by classification,
// type and threat level.
func (h *ReportHandler) List(c *gin.Context) {
	classification := c.Query("classification")
	intelType := c.Query("type")
	threatLevel := c.Query("threatLevel")

	reports, err := h.reportService.List(classification, intelType, threatLevel)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"total":   len(reports),
	})
}

func (h *ReportHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	report, err := h.reportService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Create(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	report, err := h.reportService.Create(payload)
	if err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("report_created", map[string]interface{}{
		"report_id":      report.ID,
		"title":          report.Title,
		"classification": report.Classification,
		"threat_level":   report.ThreatLevel,
	})

	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	report, err := h.reportService.Update(id, payload)
	if err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("report_updated", map[string]interface{}{
		"report_id": report.ID,
	})

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	if err := h.reportService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("report_deleted", map[string]interface{}{
		"report_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
