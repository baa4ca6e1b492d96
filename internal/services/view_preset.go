package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/vinishch/review-tracker/internal/models"
	"github.com/vinishch/review-tracker/pkg/response"
	"gorm.io/gorm"
)

// ViewPresetService stores saved table/dashboard views. A shared preset
// gets a random slug so its view can be opened without the full UI state.
type ViewPresetService struct {
	db *gorm.DB
}

func NewViewPresetService(db *gorm.DB) *ViewPresetService {
	return &ViewPresetService{db: db}
}

func (s *ViewPresetService) List() ([]models.ViewPreset, error) {
	presets := []models.ViewPreset{}
	err := s.db.Order("created_at ASC").Find(&presets).Error
	return presets, err
}

func (s *ViewPresetService) Get(id string) (*models.ViewPreset, error) {
	var p models.ViewPreset
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("view preset not found: " + id)
		}
		return nil, err
	}
	return &p, nil
}

func (s *ViewPresetService) Create(p *models.ViewPreset) error {
	if p.Name == "" {
		return response.NewValidation("view name is required").WithField("name", "required")
	}
	if p.Shared && p.Slug == "" {
		p.Slug = newSlug()
	}
	return s.db.Create(p).Error
}

func (s *ViewPresetService) Update(id string, updated *models.ViewPreset) (*models.ViewPreset, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if updated.Name == "" {
		return nil, response.NewValidation("view name is required").WithField("name", "required")
	}
	p.Name = updated.Name
	p.Config = updated.Config
	p.Shared = updated.Shared
	if p.Shared && p.Slug == "" {
		p.Slug = newSlug()
	}
	if !p.Shared {
		p.Slug = ""
	}
	if err := s.db.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ViewPresetService) Delete(id string) error {
	res := s.db.Delete(&models.ViewPreset{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return response.NewNotFound("view preset not found: " + id)
	}
	return nil
}

// GetShared resolves a shared preset by its slug.
func (s *ViewPresetService) GetShared(slug string) (*models.ViewPreset, error) {
	var p models.ViewPreset
	err := s.db.First(&p, "slug = ? AND shared = ?", slug, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("shared view not found")
		}
		return nil, err
	}
	return &p, nil
}

func newSlug() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}
