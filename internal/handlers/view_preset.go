package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/vinishch/review-tracker/internal/models"
	"github.com/vinishch/review-tracker/internal/services"
	"github.com/vinishch/review-tracker/pkg/response"
	"gorm.io/gorm"
)

type ViewPresetHandler struct {
	viewService *services.ViewPresetService
}

func NewViewPresetHandler(db *gorm.DB) *ViewPresetHandler {
	return &ViewPresetHandler{
		viewService: services.NewViewPresetService(db),
	}
}

// List returns every saved view
// GET /api/views
func (h *ViewPresetHandler) List(c *gin.Context) {
	presets, err := h.viewService.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, presets)
}

// GetByID returns one saved view
// GET /api/views/:id
func (h *ViewPresetHandler) GetByID(c *gin.Context) {
	p, err := h.viewService.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

// Create stores a new view
// POST /api/views
func (h *ViewPresetHandler) Create(c *gin.Context) {
	var p models.ViewPreset
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.viewService.Create(&p); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p)
}

// Update replaces a view; sharing mints a slug, unsharing revokes it
// PUT /api/views/:id
func (h *ViewPresetHandler) Update(c *gin.Context) {
	var p models.ViewPreset
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.viewService.Update(c.Param("id"), &p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

// Delete removes a view
// DELETE /api/views/:id
func (h *ViewPresetHandler) Delete(c *gin.Context) {
	if err := h.viewService.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GetShared resolves a shared view by slug, no auth required
// GET /api/views/shared/:slug
func (h *ViewPresetHandler) GetShared(c *gin.Context) {
	p, err := h.viewService.GetShared(c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}
