package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONMap is an arbitrary JSON object stored as a text column.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *JSONMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into JSONMap", value)
	}
}

// ViewPreset is a saved table/dashboard view (filters, visible columns).
// Shared presets get a slug so the view can be opened without an account.
type ViewPreset struct {
	ID     string  `gorm:"primaryKey;size:36" json:"id"`
	Name   string  `gorm:"size:200;not null" json:"name"`
	Config JSONMap `gorm:"type:text" json:"config"`
	Shared bool    `gorm:"default:false" json:"shared"`
	Slug   string  `gorm:"size:64;index" json:"slug"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ViewPreset) TableName() string { return "view_presets" }

func (v *ViewPreset) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
