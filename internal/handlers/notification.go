package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/vinishch/review-tracker/internal/models"
	"github.com/vinishch/review-tracker/internal/services"
	"github.com/vinishch/review-tracker/pkg/response"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{
		notificationService: services.NewNotificationService(db),
	}
}

// Evaluate runs every active rule and returns the fired alerts
// GET /api/notifications
func (h *NotificationHandler) Evaluate(c *gin.Context) {
	alerts, err := h.notificationService.Evaluate()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, alerts)
}

// ListRules returns every rule, active or not
// GET /api/notification-rules
func (h *NotificationHandler) ListRules(c *gin.Context) {
	rules, err := h.notificationService.ListRules()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rules)
}

// GetRule returns one rule
// GET /api/notification-rules/:id
func (h *NotificationHandler) GetRule(c *gin.Context) {
	rule, err := h.notificationService.GetRule(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rule)
}

// CreateRule stores a new rule
// POST /api/notification-rules
func (h *NotificationHandler) CreateRule(c *gin.Context) {
	var rule models.NotificationRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.notificationService.CreateRule(&rule); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rule)
}

// UpdateRule replaces a rule
// PUT /api/notification-rules/:id
func (h *NotificationHandler) UpdateRule(c *gin.Context) {
	var rule models.NotificationRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.notificationService.UpdateRule(c.Param("id"), &rule)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

// DeleteRule removes a rule
// DELETE /api/notification-rules/:id
func (h *NotificationHandler) DeleteRule(c *gin.Context) {
	if err := h.notificationService.DeleteRule(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
