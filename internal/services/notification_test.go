package services

import (
	"testing"

	"github.com/vinishch/review-tracker/internal/lifecycle"
	"github.com/vinishch/review-tracker/internal/models"
)

func testDate(t *testing.T, s string) *models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return &d
}

func reminderRule() models.NotificationRule {
	return models.NotificationRule{
		ID:              "rule-1",
		Name:            "Review Pending",
		TriggerField:    "orderedDate",
		DaysAfter:       7,
		MissingField:    "reviewSubmitDate",
		Type:            models.AlertWarning,
		MessageTemplate: "Order {orderId} needs a review after {days} days",
		Active:          true,
	}
}

func TestEvaluateRules_Firing(t *testing.T) {
	today := models.NewDate(2025, 6, 20)

	tests := []struct {
		name   string
		review models.Review
		rule   models.NotificationRule
		fires  bool
	}{
		{
			name:   "fires past threshold with missing field absent",
			review: models.Review{ID: "r1", OrderID: "ORD-1", OrderedDate: testDate(t, "2025-06-10")},
			rule:   reminderRule(),
			fires:  true,
		},
		{
			name: "missing-field guard suppresses",
			review: models.Review{
				ID: "r1", OrderID: "ORD-1",
				OrderedDate:      testDate(t, "2025-06-10"),
				ReviewSubmitDate: testDate(t, "2025-06-15"),
			},
			rule:  reminderRule(),
			fires: false,
		},
		{
			name:   "below threshold does not fire",
			review: models.Review{ID: "r1", OrderID: "ORD-1", OrderedDate: testDate(t, "2025-06-17")},
			rule:   reminderRule(),
			fires:  false,
		},
		{
			name:   "exactly at threshold fires",
			review: models.Review{ID: "r1", OrderID: "ORD-1", OrderedDate: testDate(t, "2025-06-13")},
			rule:   reminderRule(),
			fires:  true,
		},
		{
			name:   "trigger field absent never fires",
			review: models.Review{ID: "r1", OrderID: "ORD-1"},
			rule:   reminderRule(),
			fires:  false,
		},
		{
			name: "exclude status guard is case-insensitive",
			review: models.Review{
				ID: "r1", OrderID: "ORD-1",
				OrderedDate: testDate(t, "2025-06-01"),
				Status:      lifecycle.StatusPaymentReceived,
			},
			rule: func() models.NotificationRule {
				r := reminderRule()
				r.ExcludeStatus = "PAYMENT RECEIVED"
				return r
			}(),
			fires: false,
		},
		{
			name:   "inactive rule skipped",
			review: models.Review{ID: "r1", OrderID: "ORD-1", OrderedDate: testDate(t, "2025-06-01")},
			rule: func() models.NotificationRule {
				r := reminderRule()
				r.Active = false
				return r
			}(),
			fires: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := EvaluateRules([]models.Review{tt.review}, []models.NotificationRule{tt.rule}, today)
			if tt.fires && len(alerts) != 1 {
				t.Fatalf("expected 1 alert, got %d", len(alerts))
			}
			if !tt.fires && len(alerts) != 0 {
				t.Fatalf("expected no alerts, got %d", len(alerts))
			}
		})
	}
}

func TestEvaluateRules_AlertContents(t *testing.T) {
	today := models.NewDate(2025, 6, 20)
	review := models.Review{ID: "rev-9", OrderID: "ORD-9", OrderedDate: testDate(t, "2025-06-10")}

	alerts := EvaluateRules([]models.Review{review}, []models.NotificationRule{reminderRule()}, today)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	a := alerts[0]

	if a.ID != "notif-rule-1-rev-9" {
		t.Errorf("alert id = %q, want notif-rule-1-rev-9", a.ID)
	}
	if a.Title != "Review Pending" {
		t.Errorf("title = %q", a.Title)
	}
	if a.Type != models.AlertWarning {
		t.Errorf("type = %q", a.Type)
	}
	if a.Message != "Order ORD-9 needs a review after 10 days" {
		t.Errorf("message = %q", a.Message)
	}
	if a.ActionURL != "/reviews/edit/rev-9" {
		t.Errorf("actionUrl = %q", a.ActionURL)
	}
}

func TestEvaluateRules_PlaceholderFallbacks(t *testing.T) {
	today := models.NewDate(2025, 6, 20)
	review := models.Review{ID: "rev-1", OrderedDate: testDate(t, "2025-06-01")}
	rule := reminderRule()
	rule.ActionURL = "/custom/{id}/open"

	alerts := EvaluateRules([]models.Review{review}, []models.NotificationRule{rule}, today)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Message != "Order ? needs a review after 19 days" {
		t.Errorf("message = %q, want ? placeholder for blank orderId", alerts[0].Message)
	}
	if alerts[0].ActionURL != "/custom/rev-1/open" {
		t.Errorf("actionUrl = %q", alerts[0].ActionURL)
	}
}

func TestEvaluateRules_MultipleRulesPerRecord(t *testing.T) {
	today := models.NewDate(2025, 6, 20)
	review := models.Review{
		ID: "rev-1", OrderID: "ORD-1",
		OrderedDate:             testDate(t, "2025-01-01"),
		RefundFormSubmittedDate: testDate(t, "2025-03-01"),
	}
	second := models.NotificationRule{
		ID: "rule-2", Name: "Payment Follow-up",
		TriggerField: "refundFormSubmittedDate", DaysAfter: 45,
		MissingField: "paymentReceivedDate",
		Type:         models.AlertUrgent, MessageTemplate: "overdue {days}d",
		Active: true,
	}

	alerts := EvaluateRules([]models.Review{review}, []models.NotificationRule{reminderRule(), second}, today)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts (one per rule), got %d", len(alerts))
	}
	if alerts[0].ID == alerts[1].ID {
		t.Error("alerts for distinct rules must have distinct ids")
	}
}

func TestEvaluateRules_NoData(t *testing.T) {
	alerts := EvaluateRules(nil, nil, models.Today())
	if alerts == nil || len(alerts) != 0 {
		t.Errorf("no data must yield an empty slice, got %v", alerts)
	}
}
