package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reflectboard/server/internal/middleware"
	"github.com/reflectboard/server/internal/services"
	"github.com/reflectboard/server/pkg/response"
	"gorm.io/gorm"
)

type AdminHandler struct {
	refresher *services.SnapshotRefresher
	export    *services.ExportService
	logs      *services.SystemLogService
}

func NewAdminHandler(db *gorm.DB, refresher *services.SnapshotRefresher) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		export:    services.NewExportService(db),
		logs:      services.NewSystemLogService(db),
	}
}

// Analytics returns the cached admin snapshot
// GET /api/admin/analytics
func (h *AdminHandler) Analytics(c *gin.Context) {
	snapshot := h.refresher.Current()
	if snapshot == nil {
		// First request before the warm-up finished: compute inline.
		if err := h.refresher.Refresh(); err != nil {
			response.Error(c, err)
			return
		}
		snapshot = h.refresher.Current()
	}
	response.Success(c, snapshot)
}

// AnalyticsLive forces a snapshot recompute and returns the fresh result
// GET /api/admin/analytics/live
func (h *AdminHandler) AnalyticsLive(c *gin.Context) {
	if err := h.refresher.Refresh(); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, h.refresher.Current())
}

// ExportCSV streams the filtered reflections as a CSV download
// GET /api/admin/export/csv
func (h *AdminHandler) ExportCSV(c *gin.Context) {
	var req services.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	body, filename, err := h.export.ExportReflectionsCSV(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

// SystemLogs lists operator log entries
// GET /api/admin/logs
func (h *AdminHandler) SystemLogs(c *gin.Context) {
	var req services.SystemLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.logs.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// CleanupSystemLogs prunes old operator log rows on demand
// POST /api/admin/logs/cleanup
func (h *AdminHandler) CleanupSystemLogs(c *gin.Context) {
	deleted, err := h.logs.Cleanup(30)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": deleted})
}
