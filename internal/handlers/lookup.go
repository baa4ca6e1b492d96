package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/vinishch/review-tracker/internal/models"
	"github.com/vinishch/review-tracker/internal/services"
	"github.com/vinishch/review-tracker/pkg/response"
	"gorm.io/gorm"
)

// LookupHandler serves the dropdown tables: platforms, mediators and
// status labels.
type LookupHandler struct {
	lookupService *services.LookupService
}

func NewLookupHandler(db *gorm.DB) *LookupHandler {
	return &LookupHandler{
		lookupService: services.NewLookupService(db),
	}
}

// GET /api/lookups/platforms
func (h *LookupHandler) Platforms(c *gin.Context) {
	platforms, err := h.lookupService.Platforms()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, platforms)
}

// POST /api/lookups/platforms
func (h *LookupHandler) SavePlatform(c *gin.Context) {
	var p models.Platform
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.lookupService.SavePlatform(&p); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p)
}

// DELETE /api/lookups/platforms/:id
func (h *LookupHandler) DeletePlatform(c *gin.Context) {
	if err := h.lookupService.DeletePlatform(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GET /api/lookups/mediators
func (h *LookupHandler) Mediators(c *gin.Context) {
	mediators, err := h.lookupService.Mediators()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, mediators)
}

// POST /api/lookups/mediators
func (h *LookupHandler) SaveMediator(c *gin.Context) {
	var m models.Mediator
	if err := c.ShouldBindJSON(&m); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.lookupService.SaveMediator(&m); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, m)
}

// DELETE /api/lookups/mediators/:id
func (h *LookupHandler) DeleteMediator(c *gin.Context) {
	if err := h.lookupService.DeleteMediator(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GET /api/lookups/statuses
func (h *LookupHandler) Statuses(c *gin.Context) {
	statuses, err := h.lookupService.Statuses()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, statuses)
}

// POST /api/lookups/statuses
func (h *LookupHandler) SaveStatus(c *gin.Context) {
	var st models.StatusLabel
	if err := c.ShouldBindJSON(&st); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.lookupService.SaveStatus(&st); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, st)
}

// DELETE /api/lookups/statuses/:id
func (h *LookupHandler) DeleteStatus(c *gin.Context) {
	if err := h.lookupService.DeleteStatus(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
