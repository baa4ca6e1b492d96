package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Deal types. The deal type decides which stage-date sequence applies.
const (
	DealReviewPublished  = "REVIEW_PUBLISHED"
	DealReviewSubmission = "REVIEW_SUBMISSION" // default
	DealRatingOnly       = "RATING_ONLY"
)

// Review tracks one review-for-refund deal from order to payout.
// Status is derived from the filled stage dates and is never taken
// from client input.
type Review struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	OrderID     string `gorm:"size:100;uniqueIndex;not null" json:"orderId"`
	OrderLink   string `gorm:"size:1000" json:"orderLink"`
	ProductName string `gorm:"size:500" json:"productName"`
	DealType    string `gorm:"size:50" json:"dealType"`
	Status      string `gorm:"size:50;index" json:"status"`
	PlatformID  string `gorm:"size:100;index" json:"platformId"`
	MediatorID  string `gorm:"size:100;index" json:"mediatorId"`

	OrderedDate             *Date `gorm:"index" json:"orderedDate"`
	DeliveryDate            *Date `gorm:"index" json:"deliveryDate"`
	ReviewSubmitDate        *Date `gorm:"index" json:"reviewSubmitDate"`
	ReviewAcceptedDate      *Date `json:"reviewAcceptedDate"`
	RatingSubmittedDate     *Date `json:"ratingSubmittedDate"`
	RefundFormSubmittedDate *Date `gorm:"index" json:"refundFormSubmittedDate"`
	PaymentReceivedDate     *Date `gorm:"index" json:"paymentReceivedDate"`

	RefundFormURL string `gorm:"size:1000" json:"refundFormUrl"`
	ImageURL      string `gorm:"size:1000" json:"imageUrl"`

	AmountRupees       *decimal.Decimal `gorm:"type:decimal(12,2)" json:"amountRupees"`
	LessRupees         *decimal.Decimal `gorm:"type:decimal(12,2)" json:"lessRupees"`
	RefundAmountRupees *decimal.Decimal `gorm:"type:decimal(12,2)" json:"refundAmountRupees"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Version supports optimistic concurrency: writers must present the
	// stored value or the write is rejected with a conflict.
	Version int64 `gorm:"not null;default:1" json:"version"`
}

func (Review) TableName() string { return "reviews" }

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Version == 0 {
		r.Version = 1
	}
	return nil
}

// DealTypeOrDefault returns the effective deal type, falling back to
// REVIEW_SUBMISSION when unset.
func (r *Review) DealTypeOrDefault() string {
	if r.DealType == "" {
		return DealReviewSubmission
	}
	return r.DealType
}

// EffectiveRefund is the refund amount used by every aggregation path:
// the stored refund when present, otherwise amount - less when both are
// present, otherwise zero.
func (r *Review) EffectiveRefund() decimal.Decimal {
	if r.RefundAmountRupees != nil {
		return *r.RefundAmountRupees
	}
	if r.AmountRupees != nil && r.LessRupees != nil {
		return r.AmountRupees.Sub(*r.LessRupees)
	}
	return decimal.Zero
}
