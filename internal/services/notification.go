package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vinishch/review-tracker/internal/lifecycle"
	"github.com/vinishch/review-tracker/internal/models"
	"github.com/vinishch/review-tracker/pkg/response"
	"gorm.io/gorm"
)

// defaultActionURL is used when a rule has no action link configured.
const defaultActionURL = "/reviews/edit/{id}"

// Alert is one fired notification. Alerts are pure derivations of current
// record and rule state; they are never persisted, and their deterministic
// ids let clients dedup across polls.
type Alert struct {
	ID        string `json:"id"`
	ReviewID  string `json:"reviewId"`
	OrderID   string `json:"orderId"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	ActionURL string `json:"actionUrl"`
}

// NotificationService manages notification rules and evaluates them against
// the review set.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// --- Rule CRUD ---

func (s *NotificationService) ListRules() ([]models.NotificationRule, error) {
	rules := []models.NotificationRule{}
	err := s.db.Order("created_at ASC").Find(&rules).Error
	return rules, err
}

func (s *NotificationService) GetRule(id string) (*models.NotificationRule, error) {
	var rule models.NotificationRule
	if err := s.db.First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("notification rule not found: " + id)
		}
		return nil, err
	}
	return &rule, nil
}

func validateRule(rule *models.NotificationRule) error {
	if rule.Name == "" {
		return response.NewValidation("rule name is required").WithField("name", "required")
	}
	if _, ok := lifecycle.StageByField(rule.TriggerField); !ok {
		return response.NewValidation("unknown trigger field: " + rule.TriggerField).
			WithField("triggerField", "must be a stage date field")
	}
	if rule.MissingField != "" {
		if _, ok := lifecycle.StageByField(rule.MissingField); !ok {
			return response.NewValidation("unknown missing field: " + rule.MissingField).
				WithField("missingField", "must be a stage date field")
		}
	}
	if rule.DaysAfter < 0 {
		return response.NewValidation("daysAfter must be >= 0").WithField("daysAfter", "must be >= 0")
	}
	switch rule.Type {
	case models.AlertUrgent, models.AlertWarning, models.AlertInfo:
	default:
		return response.NewValidation("unknown alert type: " + rule.Type).
			WithField("type", "must be URGENT, WARNING or INFO")
	}
	return nil
}

func (s *NotificationService) CreateRule(rule *models.NotificationRule) error {
	if err := validateRule(rule); err != nil {
		return err
	}
	return s.db.Create(rule).Error
}

func (s *NotificationService) UpdateRule(id string, updated *models.NotificationRule) (*models.NotificationRule, error) {
	rule, err := s.GetRule(id)
	if err != nil {
		return nil, err
	}
	updated.ID = rule.ID
	updated.CreatedAt = rule.CreatedAt
	if err := validateRule(updated); err != nil {
		return nil, err
	}
	if err := s.db.Model(rule).Select("*").Omit("id", "created_at").Updates(updated).Error; err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *NotificationService) DeleteRule(id string) error {
	res := s.db.Delete(&models.NotificationRule{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return response.NewNotFound("notification rule not found: " + id)
	}
	return nil
}

func (s *NotificationService) FindActive() ([]models.NotificationRule, error) {
	rules := []models.NotificationRule{}
	err := s.db.Where("active = ?", true).Order("created_at ASC").Find(&rules).Error
	return rules, err
}

// Evaluate loads all reviews and active rules from scratch and returns the
// fired alerts. Pure read: no data means no alerts, never an error.
func (s *NotificationService) Evaluate() ([]Alert, error) {
	reviews := []models.Review{}
	if err := s.db.Find(&reviews).Error; err != nil {
		return nil, err
	}
	rules, err := s.FindActive()
	if err != nil {
		return nil, err
	}
	return EvaluateRules(reviews, rules, models.Today()), nil
}

// EvaluateRules runs every active rule against every record (full cross
// product, record-major). A rule fires when its trigger field is present,
// its missing-field guard holds, its exclude-status guard holds, and the
// elapsed days since the trigger reach the threshold.
func EvaluateRules(reviews []models.Review, rules []models.NotificationRule, today models.Date) []Alert {
	alerts := []Alert{}
	for i := range reviews {
		r := &reviews[i]
		for j := range rules {
			rule := &rules[j]
			if !rule.Active {
				continue
			}
			if alert, ok := evaluateRule(r, rule, today); ok {
				alerts = append(alerts, alert)
			}
		}
	}
	return alerts
}

func evaluateRule(r *models.Review, rule *models.NotificationRule, today models.Date) (Alert, bool) {
	trigger, ok := lifecycle.StageByField(rule.TriggerField)
	if !ok {
		return Alert{}, false
	}
	triggerDate := trigger.DateOn(r)
	if triggerDate == nil {
		return Alert{}, false
	}
	if rule.MissingField != "" {
		missing, ok := lifecycle.StageByField(rule.MissingField)
		if !ok {
			return Alert{}, false
		}
		if missing.DateOn(r) != nil {
			return Alert{}, false
		}
	}
	if rule.ExcludeStatus != "" && strings.EqualFold(rule.ExcludeStatus, r.Status) {
		return Alert{}, false
	}
	days := triggerDate.DaysUntil(today)
	if days < rule.DaysAfter {
		return Alert{}, false
	}

	orderID := r.OrderID
	if orderID == "" {
		orderID = "?"
	}
	message := strings.ReplaceAll(rule.MessageTemplate, "{orderId}", orderID)
	message = strings.ReplaceAll(message, "{days}", strconv.Itoa(days))

	actionURL := rule.ActionURL
	if actionURL == "" {
		actionURL = defaultActionURL
	}
	actionURL = strings.ReplaceAll(actionURL, "{id}", r.ID)

	return Alert{
		ID:        "notif-" + rule.ID + "-" + r.ID,
		ReviewID:  r.ID,
		OrderID:   r.OrderID,
		Type:      rule.Type,
		Title:     rule.Name,
		Message:   message,
		ActionURL: actionURL,
	}, true
}

// SeedDefaultRules creates the stock reminder rules on an empty rules table
// so a fresh install alerts the way the tracker always has.
func SeedDefaultRules(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.NotificationRule{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.NotificationRule{
		{
			Name:            "Review Pending",
			TriggerField:    "orderedDate",
			DaysAfter:       7,
			MissingField:    "reviewSubmitDate",
			Type:            models.AlertWarning,
			MessageTemplate: "It's been {days} days since order {orderId}. Time to submit review?",
			Active:          true,
		},
		{
			Name:            "Refund Form Pending",
			TriggerField:    "reviewSubmitDate",
			DaysAfter:       3,
			MissingField:    "refundFormSubmittedDate",
			ExcludeStatus:   lifecycle.StatusPaymentReceived,
			Type:            models.AlertUrgent,
			MessageTemplate: "Submit refund form for order {orderId} (accepted {days} days ago).",
			Active:          true,
		},
		{
			Name:            "Payment Follow-up",
			TriggerField:    "refundFormSubmittedDate",
			DaysAfter:       45,
			MissingField:    "paymentReceivedDate",
			Type:            models.AlertWarning,
			MessageTemplate: "{days} days passed since refund form submission for {orderId}. Check status.",
			Active:          true,
		},
		{
			Name:            "Payment Critical Overdue",
			TriggerField:    "refundFormSubmittedDate",
			DaysAfter:       60,
			MissingField:    "paymentReceivedDate",
			Type:            models.AlertUrgent,
			MessageTemplate: "Order {orderId} payment overdue by {days} days. Escalate now!",
			Active:          true,
		},
	}
	return db.Create(&defaults).Error
}
