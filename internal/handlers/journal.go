package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/reflectboard/server/internal/middleware"
	"github.com/reflectboard/server/internal/services"
	"github.com/reflectboard/server/pkg/response"
	"gorm.io/gorm"
)

type JournalHandler struct {
	service *services.JournalService
	drafts  *services.DraftService
}

func NewJournalHandler(db *gorm.DB) *JournalHandler {
	return &JournalHandler{
		service: services.NewJournalService(db),
		drafts:  services.NewDraftService(db),
	}
}

// Create adds a journal entry
// POST /api/journal
func (h *JournalHandler) Create(c *gin.Context) {
	var req services.JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	entry, err := h.service.Create(userID, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.drafts.Clear(userID, "journal_entry")
	requestRecompute("journal entry created")

	response.Created(c, entry)
}

// List returns the caller's entries, filtered and paginated
// GET /api/journal
func (h *JournalHandler) List(c *gin.Context) {
	var req services.JournalListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.service.List(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, pageSize := req.Page, req.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 10
	}
	response.Paginated(c, total, page, pageSize, items)
}

// Get returns one entry
// GET /api/journal/:id
func (h *JournalHandler) Get(c *gin.Context) {
	entry, err := h.service.Get(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, entry)
}

// Update edits an owned entry
// PUT /api/journal/:id
func (h *JournalHandler) Update(c *gin.Context) {
	var req services.JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.service.Update(middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	requestRecompute("journal entry updated")
	response.Success(c, entry)
}

// Delete permanently removes an owned entry
// DELETE /api/journal/:id
func (h *JournalHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(middleware.GetUserID(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	requestRecompute("journal entry deleted")
	response.Success(c, gin.H{"message": "deleted"})
}
