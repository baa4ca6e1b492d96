package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Platform is an e-commerce site reviews are placed on.
type Platform struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:200;not null" json:"name"`
}

func (Platform) TableName() string { return "platforms" }

func (p *Platform) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Mediator is the middleman who brokers deals and pays refunds.
type Mediator struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Name  string `gorm:"size:200;not null" json:"name"`
	Phone string `gorm:"size:50" json:"phone"`
}

func (Mediator) TableName() string { return "mediators" }

func (m *Mediator) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// StatusLabel is a user-managed label for filter dropdowns. The status on a
// review itself is always derived, never picked from this table.
type StatusLabel struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (StatusLabel) TableName() string { return "statuses" }

func (s *StatusLabel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
