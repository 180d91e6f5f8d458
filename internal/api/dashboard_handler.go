package api

import (
	"net/http"

	"tactical-server/internal/errs"
	"tactical-server/internal/models"
	"tactical-server/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	statsService     *services.StatsService
	activityService  *services.ActivityService
	componentService *services.ComponentService
	operationService *services.OperationService
}

func NewDashboardHandler(statsService *services.StatsService, activityService *services.ActivityService, componentService *services.ComponentService, operationService *services.OperationService) *DashboardHandler {
	return &DashboardHandler{
		statsService:     statsService,
		activityService:  activityService,
		componentService: componentService,
		operationService: operationService,
	}
}

// Overview returns the aggregate view the command dashboard renders on
// load: the latest stats snapshot, recent activity, component health and
// the active operations. A fresh deployment with no snapshot yet gets one
// computed on the fly.
func (h *DashboardHandler) Overview(c *gin.Context) {
	stats, err := h.statsService.Latest(c.Request.Context())
	if err != nil {
		if !errs.IsNotFound(err) {
			respondError(c, err)
			return
		}
		stats, err = h.statsService.Snapshot(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
	}

	recentActivity, err := h.activityService.List("", 10)
	if err != nil {
		respondError(c, err)
		return
	}

	components, err := h.componentService.List("")
	if err != nil {
		respondError(c, err)
		return
	}

	activeOperations, err := h.operationService.List(models.OpActive, false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":             stats,
		"recent_activity":   recentActivity,
		"components":        components,
		"active_operations": activeOperations,
	})
}
