package lifecycle

import (
	"errors"
	"testing"

	"github.com/vinishch/review-tracker/internal/models"
)

func TestValidateChain_OrderedPairs(t *testing.T) {
	tests := []struct {
		name      string
		review    models.Review
		wantField string // empty = chain is valid
	}{
		{
			name:   "empty chain is valid",
			review: models.Review{},
		},
		{
			name: "monotonic full chain",
			review: models.Review{
				OrderedDate:             date(t, "2025-01-01"),
				DeliveryDate:            date(t, "2025-01-05"),
				ReviewSubmitDate:        date(t, "2025-01-07"),
				RefundFormSubmittedDate: date(t, "2025-01-08"),
				PaymentReceivedDate:     date(t, "2025-02-10"),
			},
		},
		{
			name: "equal adjacent dates allowed",
			review: models.Review{
				OrderedDate:  date(t, "2025-01-05"),
				DeliveryDate: date(t, "2025-01-05"),
			},
		},
		{
			name: "delivery before ordered",
			review: models.Review{
				OrderedDate:  date(t, "2025-01-10"),
				DeliveryDate: date(t, "2025-01-05"),
			},
			wantField: "deliveryDate",
		},
		{
			name: "gap skipped, later date checked against nearest present",
			review: models.Review{
				OrderedDate:      date(t, "2025-01-10"),
				ReviewSubmitDate: date(t, "2025-01-04"), // delivery absent; compared to ordered
			},
			wantField: "reviewSubmitDate",
		},
		{
			name: "sparse valid chain with gaps",
			review: models.Review{
				OrderedDate:         date(t, "2025-01-01"),
				PaymentReceivedDate: date(t, "2025-02-01"),
			},
		},
		{
			name: "rating chain for rating-only deal",
			review: models.Review{
				DealType:            models.DealRatingOnly,
				DeliveryDate:        date(t, "2025-01-05"),
				RatingSubmittedDate: date(t, "2025-01-03"),
			},
			wantField: "ratingSubmittedDate",
		},
		{
			name: "rating date off-sequence for submission deal is ignored",
			review: models.Review{
				DealType:            models.DealReviewSubmission,
				DeliveryDate:        date(t, "2025-01-05"),
				RatingSubmittedDate: date(t, "2025-01-03"),
			},
		},
		{
			name: "accepted before submitted for published deal",
			review: models.Review{
				DealType:           models.DealReviewPublished,
				ReviewSubmitDate:   date(t, "2025-01-07"),
				ReviewAcceptedDate: date(t, "2025-01-06"),
			},
			wantField: "reviewAcceptedDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChain(&tt.review)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("ValidateChain() = %v, want nil", err)
				}
				return
			}
			var chainErr *ChainOrderError
			if !errors.As(err, &chainErr) {
				t.Fatalf("ValidateChain() = %v, want ChainOrderError", err)
			}
			if chainErr.Field != tt.wantField {
				t.Errorf("ChainOrderError.Field = %q, want %q", chainErr.Field, tt.wantField)
			}
		})
	}
}
