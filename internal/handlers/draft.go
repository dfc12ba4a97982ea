package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/reflectboard/server/internal/middleware"
	"github.com/reflectboard/server/internal/services"
	"github.com/reflectboard/server/pkg/response"
	"gorm.io/gorm"
)

type DraftHandler struct {
	service *services.DraftService
}

func NewDraftHandler(db *gorm.DB) *DraftHandler {
	return &DraftHandler{service: services.NewDraftService(db)}
}

// Save upserts the caller's draft for a form
// PUT /api/drafts
func (h *DraftHandler) Save(c *gin.Context) {
	var req services.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Save(middleware.GetUserID(c), &req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "saved"})
}

// Load fetches the caller's draft for a form
// GET /api/drafts/:form_key
func (h *DraftHandler) Load(c *gin.Context) {
	draft, err := h.service.Load(middleware.GetUserID(c), c.Param("form_key"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"form_key":   draft.FormKey,
		"payload":    json.RawMessage(draft.Payload),
		"updated_at": draft.UpdatedAt,
	})
}

// Clear removes the caller's draft for a form
// DELETE /api/drafts/:form_key
func (h *DraftHandler) Clear(c *gin.Context) {
	if err := h.service.Clear(middleware.GetUserID(c), c.Param("form_key")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "cleared"})
}
