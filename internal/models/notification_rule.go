package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Alert severities.
const (
	AlertUrgent  = "URGENT"
	AlertWarning = "WARNING"
	AlertInfo    = "INFO"
)

// NotificationRule is a user-configured alert condition evaluated against
// every review: fire when TriggerField was set at least DaysAfter days ago,
// MissingField (if any) is still unset, and the review's status does not
// match ExcludeStatus.
type NotificationRule struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	Name          string `gorm:"size:200;not null" json:"name"`
	TriggerField  string `gorm:"size:50;not null" json:"triggerField"`
	DaysAfter     int    `gorm:"not null;default:0" json:"daysAfter"`
	MissingField  string `gorm:"size:50" json:"missingField"`
	ExcludeStatus string `gorm:"size:50" json:"excludeStatus"`

	Type            string `gorm:"size:20;not null" json:"type"` // URGENT | WARNING | INFO
	MessageTemplate string `gorm:"size:1000" json:"messageTemplate"`
	ActionURL       string `gorm:"size:500" json:"actionUrl"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (NotificationRule) TableName() string { return "notification_rules" }

func (n *NotificationRule) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
