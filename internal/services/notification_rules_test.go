package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinishch/review-tracker/internal/models"
	"github.com/vinishch/review-tracker/pkg/response"
)

func TestNotificationService_RuleCRUD(t *testing.T) {
	svc := NewNotificationService(setupTestDB(t))

	rule := reminderRule()
	rule.ID = ""
	require.NoError(t, svc.CreateRule(&rule))
	assert.NotEmpty(t, rule.ID)

	got, err := svc.GetRule(rule.ID)
	require.NoError(t, err)
	assert.Equal(t, "Review Pending", got.Name)

	updated := *got
	updated.DaysAfter = 10
	_, err = svc.UpdateRule(rule.ID, &updated)
	require.NoError(t, err)
	got, err = svc.GetRule(rule.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.DaysAfter)

	require.NoError(t, svc.DeleteRule(rule.ID))
	_, err = svc.GetRule(rule.ID)
	assert.True(t, response.IsNotFound(err))
	assert.True(t, response.IsNotFound(svc.DeleteRule(rule.ID)))
}

func TestNotificationService_ValidateRule(t *testing.T) {
	svc := NewNotificationService(setupTestDB(t))

	tests := []struct {
		name   string
		mutate func(*models.NotificationRule)
	}{
		{"empty name", func(r *models.NotificationRule) { r.Name = "" }},
		{"unknown trigger field", func(r *models.NotificationRule) { r.TriggerField = "bogus" }},
		{"unknown missing field", func(r *models.NotificationRule) { r.MissingField = "bogus" }},
		{"negative daysAfter", func(r *models.NotificationRule) { r.DaysAfter = -1 }},
		{"unknown alert type", func(r *models.NotificationRule) { r.Type = "LOUD" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := reminderRule()
			rule.ID = ""
			tt.mutate(&rule)
			err := svc.CreateRule(&rule)
			require.Error(t, err)
			assert.True(t, response.IsValidation(err))
		})
	}
}

func TestSeedDefaultRules(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SeedDefaultRules(db))
	svc := NewNotificationService(db)
	rules, err := svc.ListRules()
	require.NoError(t, err)
	assert.Len(t, rules, 4)
	for _, r := range rules {
		assert.True(t, r.Active)
	}

	// seeding only fills an empty table
	require.NoError(t, SeedDefaultRules(db))
	rules, err = svc.ListRules()
	require.NoError(t, err)
	assert.Len(t, rules, 4)
}

func TestNotificationService_Evaluate(t *testing.T) {
	db := setupTestDB(t)
	reviews := NewReviewService(db)
	svc := NewNotificationService(db)

	old := models.NewDate(2025, 1, 1)
	r := &models.Review{OrderID: "ORD-1", OrderedDate: &old}
	require.NoError(t, reviews.Create(r))

	rule := reminderRule()
	rule.ID = ""
	require.NoError(t, svc.CreateRule(&rule))

	alerts, err := svc.Evaluate()
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, r.ID, alerts[0].ReviewID)
}
