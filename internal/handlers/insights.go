package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/reflectboard/server/internal/middleware"
	"github.com/reflectboard/server/internal/services"
	"github.com/reflectboard/server/pkg/response"
	"gorm.io/gorm"
)

type InsightsHandler struct {
	service *services.InsightsService
}

func NewInsightsHandler(db *gorm.DB) *InsightsHandler {
	return &InsightsHandler{service: services.NewInsightsService(db)}
}

// Personal returns the caller's insights rollup
// GET /api/insights
func (h *InsightsHandler) Personal(c *gin.Context) {
	insights, err := h.service.ComputePersonal(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, insights)
}
