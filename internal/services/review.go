package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/vinishch/review-tracker/internal/lifecycle"
	"github.com/vinishch/review-tracker/internal/models"
	"github.com/vinishch/review-tracker/pkg/response"
	"gorm.io/gorm"
)

// ReviewService owns every review mutation. All writes run the same
// pipeline: money normalization, date-chain validation, status resolution,
// then a version-checked save plus one history entry.
type ReviewService struct {
	db      *gorm.DB
	history *HistoryService
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db, history: NewHistoryService(db)}
}

func (s *ReviewService) List() ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.db.Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (s *ReviewService) Get(id string) (*models.Review, error) {
	var r models.Review
	if err := s.db.First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("review not found: " + id)
		}
		return nil, err
	}
	return &r, nil
}

func (s *ReviewService) existsByOrderID(orderID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Review{}).Where("order_id = ?", orderID).Count(&count).Error
	return count > 0, err
}

// normalizeMoney applies the money rules in place: non-negative 2-decimal
// values, less <= amount, refund falls back to amount - less when unset.
func (s *ReviewService) normalizeMoney(r *models.Review) error {
	if r.AmountRupees != nil {
		v, err := lifecycle.Normalize(r.AmountRupees, "amountRupees")
		if err != nil {
			return asValidation(err)
		}
		r.AmountRupees = &v
	}
	if r.LessRupees != nil {
		v, err := lifecycle.Normalize(r.LessRupees, "lessRupees")
		if err != nil {
			return asValidation(err)
		}
		r.LessRupees = &v
	}
	if r.RefundAmountRupees == nil {
		if r.AmountRupees != nil && r.LessRupees != nil {
			v, err := lifecycle.Refund(r.AmountRupees, r.LessRupees)
			if err != nil {
				return asValidation(err)
			}
			r.RefundAmountRupees = &v
		}
	} else {
		v, err := lifecycle.Normalize(r.RefundAmountRupees, "refundAmountRupees")
		if err != nil {
			return asValidation(err)
		}
		r.RefundAmountRupees = &v
	}
	return nil
}

// asValidation wraps lifecycle errors into the 400 taxonomy with field detail.
func asValidation(err error) error {
	var invErr *lifecycle.InvalidAmountError
	if errors.As(err, &invErr) {
		return response.NewValidation(invErr.Error()).WithField(invErr.Field, invErr.Reason)
	}
	var chainErr *lifecycle.ChainOrderError
	if errors.As(err, &chainErr) {
		return response.NewValidation(chainErr.Error()).WithField(chainErr.Field, "must be >= "+chainErr.MinField)
	}
	return err
}

// prepare runs the full mutation pipeline on r.
func (s *ReviewService) prepare(r *models.Review) error {
	if err := s.normalizeMoney(r); err != nil {
		return err
	}
	if err := lifecycle.ValidateChain(r); err != nil {
		return asValidation(err)
	}
	r.Status = lifecycle.ResolveStatus(r)
	return nil
}

func (s *ReviewService) Create(r *models.Review) error {
	if r.OrderID == "" {
		return response.NewValidation("orderId is required").WithField("orderId", "required")
	}
	exists, err := s.existsByOrderID(r.OrderID)
	if err != nil {
		return err
	}
	if exists {
		return response.NewValidation("Order ID must be unique").WithField("orderId", "must be unique")
	}
	if err := s.prepare(r); err != nil {
		return err
	}
	if err := s.db.Create(r).Error; err != nil {
		return err
	}
	s.history.Record(r.ID, models.HistoryCreate, "Created review", nil)
	return nil
}

// Update replaces the review's mutable fields. The caller's version must
// match the stored one or the write fails with a conflict; callers refetch
// and retry, the service never merges.
func (s *ReviewService) Update(id string, updated *models.Review) (*models.Review, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if updated.Version != 0 && updated.Version != existing.Version {
		return nil, response.NewConflict("the review was modified by someone else, refresh and try again")
	}

	if updated.OrderID != "" && updated.OrderID != existing.OrderID {
		exists, err := s.existsByOrderID(updated.OrderID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, response.NewValidation("Order ID must be unique").WithField("orderId", "must be unique")
		}
	}

	changes := diffReviews(existing, updated)

	prevVersion := existing.Version
	existing.OrderID = updated.OrderID
	existing.OrderLink = updated.OrderLink
	existing.ProductName = updated.ProductName
	existing.DealType = updated.DealType
	existing.PlatformID = updated.PlatformID
	existing.MediatorID = updated.MediatorID
	existing.RefundFormURL = updated.RefundFormURL
	existing.ImageURL = updated.ImageURL
	existing.AmountRupees = updated.AmountRupees
	existing.LessRupees = updated.LessRupees
	existing.RefundAmountRupees = updated.RefundAmountRupees
	existing.OrderedDate = updated.OrderedDate
	existing.DeliveryDate = updated.DeliveryDate
	existing.ReviewSubmitDate = updated.ReviewSubmitDate
	existing.ReviewAcceptedDate = updated.ReviewAcceptedDate
	existing.RatingSubmittedDate = updated.RatingSubmittedDate
	existing.RefundFormSubmittedDate = updated.RefundFormSubmittedDate
	existing.PaymentReceivedDate = updated.PaymentReceivedDate

	if err := s.prepare(existing); err != nil {
		return nil, err
	}

	if err := s.saveVersioned(existing, prevVersion); err != nil {
		return nil, err
	}
	s.history.Record(existing.ID, models.HistoryUpdate, "Updated review", changes)
	return existing, nil
}

// saveVersioned writes r only if the stored version still equals prev,
// bumping the counter in the same statement. Zero rows affected means a
// concurrent writer got there first.
func (s *ReviewService) saveVersioned(r *models.Review, prev int64) error {
	r.Version = prev + 1
	res := s.db.Model(&models.Review{}).
		Where("id = ? AND version = ?", r.ID, prev).
		Select("*").
		Omit("id", "created_at").
		Updates(r)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return response.NewConflict("the review was modified by someone else, refresh and try again")
	}
	return nil
}

func diffReviews(oldR, newR *models.Review) models.ChangeList {
	var changes models.ChangeList
	add := func(field, oldV, newV string) {
		if oldV != newV {
			changes = append(changes, models.Change{Field: field, OldValue: oldV, NewValue: newV})
		}
	}
	add("orderId", oldR.OrderID, newR.OrderID)
	add("productName", oldR.ProductName, newR.ProductName)
	add("platformId", oldR.PlatformID, newR.PlatformID)
	add("mediatorId", oldR.MediatorID, newR.MediatorID)
	add("dealType", oldR.DealType, newR.DealType)
	for s := lifecycle.StageOrdered; s <= lifecycle.StagePaymentReceived; s++ {
		add(s.Field(), dateString(s.DateOn(oldR)), dateString(s.DateOn(newR)))
	}
	return changes
}

func dateString(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func (s *ReviewService) Delete(id string) error {
	r, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&models.Review{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.history.Record(r.ID, models.HistoryDelete, "Deleted review", nil)
	return nil
}

// Clone copies a review into a new record with a suffixed order id; stage
// dates come along and the status is recomputed.
func (s *ReviewService) Clone(sourceID string) (*models.Review, error) {
	src, err := s.Get(sourceID)
	if err != nil {
		return nil, err
	}

	copyR := *src
	copyR.ID = ""
	copyR.OrderID = src.OrderID + "-clone"
	copyR.Version = 0
	copyR.CreatedAt = time.Time{}
	copyR.UpdatedAt = time.Time{}
	exists, err := s.existsByOrderID(copyR.OrderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, response.NewValidation("Order ID must be unique").WithField("orderId", "must be unique")
	}

	if err := s.prepare(&copyR); err != nil {
		return nil, err
	}
	if err := s.db.Create(&copyR).Error; err != nil {
		return nil, err
	}
	s.history.Record(copyR.ID, models.HistoryClone, "Cloned from "+sourceID, nil)
	return &copyR, nil
}

// Copyable field groups for CopyFields. "dates" copies the whole stage chain.
func copyField(src, tgt *models.Review, field string) bool {
	switch field {
	case "productName":
		tgt.ProductName = src.ProductName
	case "orderLink":
		tgt.OrderLink = src.OrderLink
	case "platformId":
		tgt.PlatformID = src.PlatformID
	case "dealType":
		tgt.DealType = src.DealType
	case "mediatorId":
		tgt.MediatorID = src.MediatorID
	case "amountRupees":
		tgt.AmountRupees = src.AmountRupees
	case "lessRupees":
		tgt.LessRupees = src.LessRupees
	case "dates":
		for s := lifecycle.StageOrdered; s <= lifecycle.StagePaymentReceived; s++ {
			s.SetDate(tgt, s.DateOn(src))
		}
	default:
		return false
	}
	return true
}

// CopyFields copies the named fields from one review onto another and
// recomputes the target's status.
func (s *ReviewService) CopyFields(sourceID, targetID string, fields []string) (*models.Review, error) {
	src, err := s.Get(sourceID)
	if err != nil {
		return nil, err
	}
	tgt, err := s.Get(targetID)
	if err != nil {
		return nil, err
	}

	var changes models.ChangeList
	for _, f := range fields {
		if !copyField(src, tgt, f) {
			return nil, response.NewValidation("unknown copy field: " + f).WithField(f, "not copyable")
		}
		changes = append(changes, models.Change{Field: f, NewValue: "copied from " + sourceID})
	}

	prevVersion := tgt.Version
	if err := s.prepare(tgt); err != nil {
		return nil, err
	}
	if err := s.saveVersioned(tgt, prevVersion); err != nil {
		return nil, err
	}
	s.history.Record(tgt.ID, models.HistoryCopy, "Copied fields from "+sourceID, changes)
	return tgt, nil
}

// BulkUpdate applies the same field updates to each id in input order.
// Items are committed one at a time with no rollback: a failure stops the
// batch and leaves earlier items written.
func (s *ReviewService) BulkUpdate(ids []string, updates map[string]interface{}) ([]models.Review, error) {
	result := make([]models.Review, 0, len(ids))
	for _, id := range ids {
		r, err := s.applyBulkUpdate(id, updates)
		if err != nil {
			return result, fmt.Errorf("bulk update stopped at %s: %w", id, err)
		}
		result = append(result, *r)
	}
	return result, nil
}

func (s *ReviewService) applyBulkUpdate(id string, updates map[string]interface{}) (*models.Review, error) {
	for key, v := range updates {
		if _, ok := v.(string); !ok {
			return nil, response.NewValidation("value for "+key+" must be a string").
				WithField(key, "must be a string")
		}
	}

	r, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	prevVersion := r.Version

	if v, ok := stringUpdate(updates, "platformId"); ok {
		r.PlatformID = v
	}
	if v, ok := stringUpdate(updates, "mediatorId"); ok {
		r.MediatorID = v
	}
	if v, ok := stringUpdate(updates, "orderLink"); ok {
		r.OrderLink = v
	}
	if v, ok := stringUpdate(updates, "dealType"); ok {
		r.DealType = v
	}
	for st := lifecycle.StageOrdered; st <= lifecycle.StagePaymentReceived; st++ {
		raw, ok := stringUpdate(updates, st.Field())
		if !ok {
			continue
		}
		if raw == "" {
			st.SetDate(r, nil)
			continue
		}
		d, err := models.ParseDate(raw)
		if err != nil {
			return nil, response.NewValidation("invalid date for " + st.Field() + ": " + raw).
				WithField(st.Field(), "must be YYYY-MM-DD")
		}
		st.SetDate(r, &d)
	}

	if err := s.prepare(r); err != nil {
		return nil, err
	}
	if err := s.saveVersioned(r, prevVersion); err != nil {
		return nil, err
	}
	s.history.Record(r.ID, models.HistoryBulkUpdate, "Bulk update", nil)
	return r, nil
}

func stringUpdate(updates map[string]interface{}, key string) (string, bool) {
	v, ok := updates[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// BulkDelete removes each id in order; missing ids are skipped rather than
// failing the batch, matching delete idempotency.
func (s *ReviewService) BulkDelete(ids []string) error {
	for _, id := range ids {
		res := s.db.Delete(&models.Review{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			s.history.Record(id, models.HistoryBulkDelete, "Bulk delete", nil)
		}
	}
	return nil
}

// Advance fills the review's next pending stage with when (today if nil).
// A fully complete chain is a no-op. The date chain is deliberately not
// re-validated here; see lifecycle.Advance.
func (s *ReviewService) Advance(id string, when *models.Date) (*models.Review, error) {
	r, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	w := models.Today()
	if when != nil {
		w = *when
	}

	prevVersion := r.Version
	stage, advanced := lifecycle.Advance(r, w)
	if !advanced {
		return r, nil
	}

	if err := s.saveVersioned(r, prevVersion); err != nil {
		return nil, err
	}
	s.history.Record(r.ID, models.HistoryAdvance, "Advanced "+stage.Field()+" to "+w.String(), models.ChangeList{
		{Field: stage.Field(), NewValue: w.String()},
	})
	return r, nil
}

// BulkAdvance advances each id independently, in input order. Not
// transactional: the first failure stops the batch and is returned as the
// call's error; earlier items stay committed.
func (s *ReviewService) BulkAdvance(ids []string, when *models.Date) ([]models.Review, error) {
	result := make([]models.Review, 0, len(ids))
	for _, id := range ids {
		r, err := s.Advance(id, when)
		if err != nil {
			return result, fmt.Errorf("bulk advance stopped at %s: %w", id, err)
		}
		result = append(result, *r)
	}
	return result, nil
}
