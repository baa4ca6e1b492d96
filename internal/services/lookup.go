package services

import (
	"errors"

	"github.com/vinishch/review-tracker/internal/models"
	"github.com/vinishch/review-tracker/pkg/response"
	"gorm.io/gorm"
)

// LookupService manages the platform/mediator/status label dropdowns.
type LookupService struct {
	db *gorm.DB
}

func NewLookupService(db *gorm.DB) *LookupService {
	return &LookupService{db: db}
}

func (s *LookupService) Platforms() ([]models.Platform, error) {
	out := []models.Platform{}
	err := s.db.Order("name ASC").Find(&out).Error
	return out, err
}

func (s *LookupService) SavePlatform(p *models.Platform) error {
	if p.Name == "" {
		return response.NewValidation("platform name is required").WithField("name", "required")
	}
	return s.db.Save(p).Error
}

func (s *LookupService) DeletePlatform(id string) error {
	return s.deleteByID(&models.Platform{}, id, "platform")
}

func (s *LookupService) Mediators() ([]models.Mediator, error) {
	out := []models.Mediator{}
	err := s.db.Order("name ASC").Find(&out).Error
	return out, err
}

func (s *LookupService) SaveMediator(m *models.Mediator) error {
	if m.Name == "" {
		return response.NewValidation("mediator name is required").WithField("name", "required")
	}
	return s.db.Save(m).Error
}

func (s *LookupService) DeleteMediator(id string) error {
	return s.deleteByID(&models.Mediator{}, id, "mediator")
}

func (s *LookupService) Statuses() ([]models.StatusLabel, error) {
	out := []models.StatusLabel{}
	err := s.db.Order("name ASC").Find(&out).Error
	return out, err
}

func (s *LookupService) SaveStatus(st *models.StatusLabel) error {
	if st.Name == "" {
		return response.NewValidation("status name is required").WithField("name", "required")
	}
	return s.db.Save(st).Error
}

func (s *LookupService) DeleteStatus(id string) error {
	return s.deleteByID(&models.StatusLabel{}, id, "status")
}

func (s *LookupService) deleteByID(model interface{}, id, kind string) error {
	res := s.db.Delete(model, "id = ?", id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return response.NewNotFound(kind + " not found: " + id)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return response.NewNotFound(kind + " not found: " + id)
	}
	return nil
}
