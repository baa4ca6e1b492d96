package lifecycle

import "github.com/vinishch/review-tracker/internal/models"

// Status labels, exactly the seven values the resolver can produce.
const (
	StatusOrdered             = "ordered"
	StatusDelivered           = "delivered"
	StatusReviewSubmitted     = "review submitted"
	StatusReviewAccepted      = "review accepted"
	StatusRatingSubmitted     = "rating submitted"
	StatusRefundFormSubmitted = "refund form submitted"
	StatusPaymentReceived     = "payment received"
)

// ResolveStatus derives the status label from which stage dates are filled,
// first match wins. It deliberately does not consult the chain validator:
// status reflects the furthest observed stage even when earlier dates are
// missing.
func ResolveStatus(r *models.Review) string {
	if r.PaymentReceivedDate != nil {
		return StatusPaymentReceived
	}
	if r.RefundFormSubmittedDate != nil {
		return StatusRefundFormSubmitted
	}
	switch r.DealTypeOrDefault() {
	case models.DealReviewPublished:
		if r.ReviewAcceptedDate != nil {
			return StatusReviewAccepted
		}
		if r.ReviewSubmitDate != nil {
			return StatusReviewSubmitted
		}
	case models.DealRatingOnly:
		if r.RatingSubmittedDate != nil {
			return StatusRatingSubmitted
		}
	default:
		if r.ReviewSubmitDate != nil {
			return StatusReviewSubmitted
		}
	}
	if r.DeliveryDate != nil {
		return StatusDelivered
	}
	return StatusOrdered
}
