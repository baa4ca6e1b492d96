package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// History entry types, one per mutating operation.
const (
	HistoryCreate     = "CREATE"
	HistoryUpdate     = "UPDATE"
	HistoryDelete     = "DELETE"
	HistoryClone      = "CLONE"
	HistoryCopy       = "COPY"
	HistoryBulkUpdate = "BULK_UPDATE"
	HistoryBulkDelete = "BULK_DELETE"
	HistoryAdvance    = "ADVANCE"
	HistoryImport     = "IMPORT"
)

// Change records one field-level modification.
type Change struct {
	Field    string `json:"field"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

// ChangeList is stored as a JSON text column.
type ChangeList []Change

func (c ChangeList) Value() (driver.Value, error) {
	if len(c) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(c)
	return string(b), err
}

func (c *ChangeList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan %T into ChangeList", value)
	}
}

// ReviewHistory is an append-only audit entry. Rows are written once per
// mutating operation and never updated.
type ReviewHistory struct {
	ID       string     `gorm:"primaryKey;size:36" json:"id"`
	ReviewID string     `gorm:"size:36;index;not null" json:"reviewId"`
	Type     string     `gorm:"size:20;not null" json:"type"`
	At       time.Time  `gorm:"index;not null" json:"at"`
	Note     string     `gorm:"size:500" json:"note"`
	Changes  ChangeList `gorm:"type:text" json:"changes"`
}

func (ReviewHistory) TableName() string { return "review_history" }

func (h *ReviewHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.At.IsZero() {
		h.At = time.Now()
	}
	return nil
}
