// Package lifecycle holds the review lifecycle core: the per-deal-type stage
// sequence table and the money, date-chain, status and advance logic built on
// it. Everything here is a pure function of the record passed in; persistence
// lives in the services layer.
package lifecycle

import "github.com/vinishch/review-tracker/internal/models"

// Stage identifies one lifecycle milestone. The status resolver, chain
// validator and advancer all dispatch through the same stage table instead
// of switching on deal type independently.
type Stage int

const (
	StageOrdered Stage = iota
	StageDelivered
	StageReviewSubmitted
	StageReviewAccepted
	StageRatingSubmitted
	StageRefundFormSubmitted
	StagePaymentReceived
	stageCount
)

type stageAccessor struct {
	field string
	get   func(*models.Review) *models.Date
	set   func(*models.Review, *models.Date)
}

var stageTable = [stageCount]stageAccessor{
	StageOrdered: {
		field: "orderedDate",
		get:   func(r *models.Review) *models.Date { return r.OrderedDate },
		set:   func(r *models.Review, d *models.Date) { r.OrderedDate = d },
	},
	StageDelivered: {
		field: "deliveryDate",
		get:   func(r *models.Review) *models.Date { return r.DeliveryDate },
		set:   func(r *models.Review, d *models.Date) { r.DeliveryDate = d },
	},
	StageReviewSubmitted: {
		field: "reviewSubmitDate",
		get:   func(r *models.Review) *models.Date { return r.ReviewSubmitDate },
		set:   func(r *models.Review, d *models.Date) { r.ReviewSubmitDate = d },
	},
	StageReviewAccepted: {
		field: "reviewAcceptedDate",
		get:   func(r *models.Review) *models.Date { return r.ReviewAcceptedDate },
		set:   func(r *models.Review, d *models.Date) { r.ReviewAcceptedDate = d },
	},
	StageRatingSubmitted: {
		field: "ratingSubmittedDate",
		get:   func(r *models.Review) *models.Date { return r.RatingSubmittedDate },
		set:   func(r *models.Review, d *models.Date) { r.RatingSubmittedDate = d },
	},
	StageRefundFormSubmitted: {
		field: "refundFormSubmittedDate",
		get:   func(r *models.Review) *models.Date { return r.RefundFormSubmittedDate },
		set:   func(r *models.Review, d *models.Date) { r.RefundFormSubmittedDate = d },
	},
	StagePaymentReceived: {
		field: "paymentReceivedDate",
		get:   func(r *models.Review) *models.Date { return r.PaymentReceivedDate },
		set:   func(r *models.Review, d *models.Date) { r.PaymentReceivedDate = d },
	},
}

// Field returns the JSON/wire name of the stage date field.
func (s Stage) Field() string {
	return stageTable[s].field
}

// DateOn returns the stage date on r, nil when unfilled.
func (s Stage) DateOn(r *models.Review) *models.Date {
	return stageTable[s].get(r)
}

// SetDate fills or clears the stage date on r.
func (s Stage) SetDate(r *models.Review, d *models.Date) {
	stageTable[s].set(r, d)
}

// StageByField resolves a stage from its wire field name. Used by the
// notification rule engine, whose trigger/missing fields arrive as names.
func StageByField(name string) (Stage, bool) {
	for s := StageOrdered; s < stageCount; s++ {
		if stageTable[s].field == name {
			return s, true
		}
	}
	return 0, false
}

var sequences = map[string][]Stage{
	models.DealReviewPublished: {
		StageOrdered, StageDelivered, StageReviewSubmitted,
		StageReviewAccepted, StageRefundFormSubmitted, StagePaymentReceived,
	},
	models.DealRatingOnly: {
		StageOrdered, StageDelivered, StageRatingSubmitted,
		StageRefundFormSubmitted, StagePaymentReceived,
	},
	models.DealReviewSubmission: {
		StageOrdered, StageDelivered, StageReviewSubmitted,
		StageRefundFormSubmitted, StagePaymentReceived,
	},
}

// SequenceFor returns the ordered stage sequence for a deal type. Unknown
// deal types fall back to the REVIEW_SUBMISSION sequence.
func SequenceFor(dealType string) []Stage {
	if seq, ok := sequences[dealType]; ok {
		return seq
	}
	return sequences[models.DealReviewSubmission]
}

// ChainComplete reports whether every post-delivery stage of the review's
// sequence is filled, i.e. the deal has run through its terminal stage.
func ChainComplete(r *models.Review) bool {
	for _, s := range SequenceFor(r.DealTypeOrDefault()) {
		if s == StageOrdered || s == StageDelivered {
			continue
		}
		if s.DateOn(r) == nil {
			return false
		}
	}
	return true
}
