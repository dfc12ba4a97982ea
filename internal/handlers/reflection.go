package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/reflectboard/server/internal/middleware"
	"github.com/reflectboard/server/internal/services"
	"github.com/reflectboard/server/pkg/response"
	"gorm.io/gorm"
)

type ReflectionHandler struct {
	service *services.ReflectionService
	drafts  *services.DraftService
}

func NewReflectionHandler(db *gorm.DB) *ReflectionHandler {
	return &ReflectionHandler{
		service: services.NewReflectionService(db),
		drafts:  services.NewDraftService(db),
	}
}

// requestRecompute queues an admin snapshot refresh after a mutation.
func requestRecompute(reason string) {
	if q := services.GetTaskQueue(); q != nil {
		q.Enqueue(&services.RecomputeTask{Reason: reason})
	}
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(c, "record not found")
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(c, "not the record owner")
	default:
		response.Error(c, err)
	}
}

// Create submits a new reflection
// POST /api/reflections
func (h *ReflectionHandler) Create(c *gin.Context) {
	var req services.ReflectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	record, err := h.service.Create(userID, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// Submitting clears the auto-saved draft for this form.
	h.drafts.Clear(userID, "reflection")
	requestRecompute("reflection created")

	response.Created(c, record)
}

// List returns the caller's reflections, filtered and paginated
// GET /api/reflections
func (h *ReflectionHandler) List(c *gin.Context) {
	var req services.ReflectionListRequest
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

// Get returns one reflection
// GET /api/reflections/:id
func (h *ReflectionHandler) Get(c *gin.Context) {
	record, err := h.service.Get(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, record)
}

// Update edits an owned reflection
// PUT /api/reflections/:id
func (h *ReflectionHandler) Update(c *gin.Context) {
	var req services.ReflectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	record, err := h.service.Update(middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	requestRecompute("reflection updated")
	response.Success(c, record)
}

// Delete soft-deletes an owned reflection
// DELETE /api/reflections/:id
func (h *ReflectionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(middleware.GetUserID(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	requestRecompute("reflection deleted")
	response.Success(c, gin.H{"message": "deleted"})
}
