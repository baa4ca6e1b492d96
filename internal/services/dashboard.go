package services

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vinishch/review-tracker/internal/lifecycle"
	"github.com/vinishch/review-tracker/internal/models"
	"gorm.io/gorm"
)

// overdueAfterDays: a delivered deal still short of its terminal stage after
// this many days counts as overdue.
const overdueAfterDays = 7

// unknownBucket groups records with a null/blank key dimension.
const unknownBucket = "unknown"

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Aggregates are the filtered set totals for the aggregates endpoint.
type Aggregates struct {
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalRefund decimal.Decimal `json:"totalRefund"`
}

// DashboardStats is the full dashboard snapshot.
type DashboardStats struct {
	TotalReviews         int             `json:"totalReviews"`
	TotalPaymentReceived decimal.Decimal `json:"totalPaymentReceived"`
	AverageRefund        decimal.Decimal `json:"averageRefund"`
	PaymentPendingAmount decimal.Decimal `json:"paymentPendingAmount"`
	ReviewsSubmitted     int             `json:"reviewsSubmitted"`
	ReviewsPending       int             `json:"reviewsPending"`

	StatusCounts   map[string]int `json:"statusCounts"`
	PlatformCounts map[string]int `json:"platformCounts"`
	DealTypeCounts map[string]int `json:"dealTypeCounts"`
	MediatorCounts map[string]int `json:"mediatorCounts"`

	AmountReceivedByPlatform map[string]decimal.Decimal `json:"amountReceivedByPlatform"`
	AmountPendingByPlatform  map[string]decimal.Decimal `json:"amountPendingByPlatform"`
	AmountReceivedByMediator map[string]decimal.Decimal `json:"amountReceivedByMediator"`
	AmountPendingByMediator  map[string]decimal.Decimal `json:"amountPendingByMediator"`

	OverdueSinceDeliveryCount int `json:"overdueSinceDeliveryCount"`
}

// Aggregates computes count/totalAmount/totalRefund over the filtered set.
func (s *DashboardService) Aggregates(filter *ReviewFilter) (*Aggregates, error) {
	reviews, err := s.load(filter)
	if err != nil {
		return nil, err
	}
	agg := ComputeAggregates(reviews)
	return &agg, nil
}

// Stats computes the dashboard snapshot over the filtered set, optionally
// narrowed to a scope ("received", "pending", "all") and a date window.
func (s *DashboardService) Stats(filter *ReviewFilter, scope, from, to string) (*DashboardStats, error) {
	reviews, err := s.load(filter)
	if err != nil {
		return nil, err
	}
	reviews = FilterScope(reviews, scope)
	reviews = FilterWindow(reviews, scope, from, to)
	return ComputeStats(reviews, models.Today()), nil
}

// OverdueCount counts delivered deals that have sat past the overdue
// threshold without finishing their chain.
func (s *DashboardService) OverdueCount() (int, error) {
	reviews, err := s.load(nil)
	if err != nil {
		return 0, err
	}
	return countOverdue(reviews, models.Today()), nil
}

func (s *DashboardService) load(filter *ReviewFilter) ([]models.Review, error) {
	if filter != nil {
		filter.Normalize()
	}
	reviews := []models.Review{}
	err := filter.apply(s.db.Model(&models.Review{})).Find(&reviews).Error
	return reviews, err
}

// FilterScope narrows to received (payment date set) or pending (chain not
// complete) records; any other scope keeps everything.
func FilterScope(reviews []models.Review, scope string) []models.Review {
	switch strings.ToLower(scope) {
	case "received":
		out := make([]models.Review, 0, len(reviews))
		for _, r := range reviews {
			if r.PaymentReceivedDate != nil {
				out = append(out, r)
			}
		}
		return out
	case "pending":
		out := make([]models.Review, 0, len(reviews))
		for _, r := range reviews {
			if !lifecycle.ChainComplete(&r) {
				out = append(out, r)
			}
		}
		return out
	default:
		return reviews
	}
}

// FilterWindow applies an inclusive date window: on paymentReceivedDate for
// the received scope, else on createdAt. Unparsable bounds are ignored.
func FilterWindow(reviews []models.Review, scope, from, to string) []models.Review {
	if from == "" && to == "" {
		return reviews
	}
	var fromD, toD *models.Date
	if d, err := models.ParseDate(from); err == nil && from != "" {
		fromD = &d
	}
	if d, err := models.ParseDate(to); err == nil && to != "" {
		toD = &d
	}
	if fromD == nil && toD == nil {
		return reviews
	}

	byPayment := strings.EqualFold(scope, "received")
	out := make([]models.Review, 0, len(reviews))
	for _, r := range reviews {
		var ref models.Date
		if byPayment {
			if r.PaymentReceivedDate == nil {
				continue
			}
			ref = *r.PaymentReceivedDate
		} else {
			ref = models.DateOf(r.CreatedAt)
		}
		if fromD != nil && ref.Time.Before(fromD.Time) {
			continue
		}
		if toD != nil && ref.Time.After(toD.Time) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ComputeAggregates sums the filtered set. The refund fallback
// (amount - less when refund is unset) applies here the same as in every
// other aggregation path.
func ComputeAggregates(reviews []models.Review) Aggregates {
	agg := Aggregates{
		TotalAmount: decimal.Zero,
		TotalRefund: decimal.Zero,
	}
	for i := range reviews {
		r := &reviews[i]
		agg.Count++
		if r.AmountRupees != nil {
			agg.TotalAmount = agg.TotalAmount.Add(*r.AmountRupees)
		}
		agg.TotalRefund = agg.TotalRefund.Add(r.EffectiveRefund())
	}
	return agg
}

// ComputeStats builds the dashboard snapshot with explicit grouping passes.
// Empty input yields zeroed totals and empty maps, never an error.
func ComputeStats(reviews []models.Review, now models.Date) *DashboardStats {
	stats := &DashboardStats{
		TotalPaymentReceived:     decimal.Zero,
		AverageRefund:            decimal.Zero,
		PaymentPendingAmount:     decimal.Zero,
		StatusCounts:             map[string]int{},
		PlatformCounts:           map[string]int{},
		DealTypeCounts:           map[string]int{},
		MediatorCounts:           map[string]int{},
		AmountReceivedByPlatform: map[string]decimal.Decimal{},
		AmountPendingByPlatform:  map[string]decimal.Decimal{},
		AmountReceivedByMediator: map[string]decimal.Decimal{},
		AmountPendingByMediator:  map[string]decimal.Decimal{},
	}

	receivedCount := 0
	for i := range reviews {
		r := &reviews[i]
		stats.TotalReviews++

		status := r.Status
		if status == "" {
			status = unknownBucket
		}
		stats.StatusCounts[status]++
		stats.PlatformCounts[bucket(r.PlatformID)]++
		stats.DealTypeCounts[bucket(r.DealType)]++
		stats.MediatorCounts[bucket(r.MediatorID)]++

		if r.ReviewSubmitDate != nil {
			stats.ReviewsSubmitted++
		}

		refund := r.EffectiveRefund()
		if r.PaymentReceivedDate != nil {
			receivedCount++
			stats.TotalPaymentReceived = stats.TotalPaymentReceived.Add(refund)
			addAmount(stats.AmountReceivedByPlatform, r.PlatformID, refund)
			addAmount(stats.AmountReceivedByMediator, r.MediatorID, refund)
		} else {
			stats.PaymentPendingAmount = stats.PaymentPendingAmount.Add(refund)
			addAmount(stats.AmountPendingByPlatform, r.PlatformID, refund)
			addAmount(stats.AmountPendingByMediator, r.MediatorID, refund)
		}
	}

	stats.ReviewsPending = stats.TotalReviews - stats.ReviewsSubmitted
	if receivedCount > 0 {
		stats.AverageRefund = stats.TotalPaymentReceived.
			Div(decimal.NewFromInt(int64(receivedCount))).Round(2)
	}
	stats.OverdueSinceDeliveryCount = countOverdue(reviews, now)
	return stats
}

func countOverdue(reviews []models.Review, now models.Date) int {
	count := 0
	for i := range reviews {
		r := &reviews[i]
		if r.DeliveryDate == nil || lifecycle.ChainComplete(r) {
			continue
		}
		if r.DeliveryDate.DaysUntil(now) >= overdueAfterDays {
			count++
		}
	}
	return count
}

func bucket(key string) string {
	if key == "" {
		return unknownBucket
	}
	return key
}

func addAmount(m map[string]decimal.Decimal, key string, amt decimal.Decimal) {
	k := bucket(key)
	m[k] = m[k].Add(amt)
}
