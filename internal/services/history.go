package services

import (
	"github.com/vinishch/review-tracker/internal/models"
	"github.com/vinishch/review-tracker/pkg/logger"
	"gorm.io/gorm"
)

// HistoryService is the append-only audit sink. Entries are written once per
// mutating operation and never touched again.
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Record appends one audit entry. A failed append is logged but never fails
// the mutation it describes.
func (s *HistoryService) Record(reviewID, entryType, note string, changes models.ChangeList) {
	entry := models.ReviewHistory{
		ReviewID: reviewID,
		Type:     entryType,
		Note:     note,
		Changes:  changes,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logger.Warn().Err(err).Str("review_id", reviewID).Str("type", entryType).Msg("failed to record history")
	}
}

// ListFor returns a review's audit trail ordered by time ascending.
func (s *HistoryService) ListFor(reviewID string) ([]models.ReviewHistory, error) {
	entries := []models.ReviewHistory{}
	err := s.db.Where("review_id = ?", reviewID).Order("at ASC").Find(&entries).Error
	return entries, err
}
