package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vinishch/review-tracker/internal/models"
)

func amt(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestComputeStats_PaymentTotals(t *testing.T) {
	now := models.NewDate(2025, 6, 20)
	reviews := []models.Review{
		{
			ID: "r1", OrderID: "A",
			AmountRupees:        amt("100"),
			LessRupees:          amt("10"),
			RefundAmountRupees:  amt("90"),
			PaymentReceivedDate: testDate(t, "2025-06-01"),
		},
		{
			ID: "r2", OrderID: "B",
			AmountRupees: amt("50"),
			LessRupees:   amt("5"),
		},
		{
			ID: "r3", OrderID: "C",
		},
	}

	stats := ComputeStats(reviews, now)

	if stats.TotalReviews != 3 {
		t.Errorf("totalReviews = %d, want 3", stats.TotalReviews)
	}
	if !stats.TotalPaymentReceived.Equal(decimal.RequireFromString("90")) {
		t.Errorf("totalPaymentReceived = %s, want 90", stats.TotalPaymentReceived)
	}
	// pending uses the amount-minus-less fallback: 50-5 for r2, 0 for r3
	if !stats.PaymentPendingAmount.Equal(decimal.RequireFromString("45")) {
		t.Errorf("paymentPendingAmount = %s, want 45", stats.PaymentPendingAmount)
	}
	if !stats.AverageRefund.Equal(decimal.RequireFromString("90")) {
		t.Errorf("averageRefund = %s, want 90", stats.AverageRefund)
	}
}

func TestComputeStats_EffectiveRefundFallback(t *testing.T) {
	now := models.Today()
	reviews := []models.Review{
		// explicit refund wins over amount-less
		{ID: "r1", AmountRupees: amt("100"), LessRupees: amt("10"), RefundAmountRupees: amt("80"), PaymentReceivedDate: testDate(t, "2025-06-01")},
		// fallback to amount-less
		{ID: "r2", AmountRupees: amt("60"), LessRupees: amt("10"), PaymentReceivedDate: testDate(t, "2025-06-01")},
	}

	stats := ComputeStats(reviews, now)
	if !stats.TotalPaymentReceived.Equal(decimal.RequireFromString("130")) {
		t.Errorf("totalPaymentReceived = %s, want 130 (80 + 50)", stats.TotalPaymentReceived)
	}
	if !stats.AverageRefund.Equal(decimal.RequireFromString("65")) {
		t.Errorf("averageRefund = %s, want 65", stats.AverageRefund)
	}
}

func TestComputeStats_Grouping(t *testing.T) {
	now := models.Today()
	reviews := []models.Review{
		{ID: "r1", PlatformID: "Amazon", MediatorID: "M1", DealType: models.DealReviewSubmission, Status: "Ordered", AmountRupees: amt("10"), LessRupees: amt("0"), PaymentReceivedDate: testDate(t, "2025-06-01")},
		{ID: "r2", PlatformID: "Amazon", Status: "Ordered", AmountRupees: amt("20"), LessRupees: amt("0")},
		{ID: "r3", PlatformID: "", Status: ""},
	}

	stats := ComputeStats(reviews, now)

	if stats.PlatformCounts["Amazon"] != 2 {
		t.Errorf("platformCounts[Amazon] = %d, want 2", stats.PlatformCounts["Amazon"])
	}
	if stats.PlatformCounts[unknownBucket] != 1 {
		t.Errorf("blank platform must land in the %q bucket", unknownBucket)
	}
	if stats.StatusCounts[unknownBucket] != 1 {
		t.Errorf("blank status must land in the %q bucket", unknownBucket)
	}
	if !stats.AmountReceivedByPlatform["Amazon"].Equal(decimal.RequireFromString("10")) {
		t.Errorf("amountReceivedByPlatform[Amazon] = %s, want 10", stats.AmountReceivedByPlatform["Amazon"])
	}
	if !stats.AmountPendingByPlatform["Amazon"].Equal(decimal.RequireFromString("20")) {
		t.Errorf("amountPendingByPlatform[Amazon] = %s, want 20", stats.AmountPendingByPlatform["Amazon"])
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, models.Today())
	if stats.TotalReviews != 0 {
		t.Errorf("totalReviews = %d, want 0", stats.TotalReviews)
	}
	if !stats.AverageRefund.IsZero() {
		t.Errorf("averageRefund must be zero with no received records, got %s", stats.AverageRefund)
	}
	if stats.StatusCounts == nil || stats.PlatformCounts == nil {
		t.Error("grouping maps must be initialized even when empty")
	}
}

func TestFilterScope(t *testing.T) {
	received := models.Review{ID: "r1", PaymentReceivedDate: testDate(t, "2025-06-01")}
	pending := models.Review{ID: "r2", OrderedDate: testDate(t, "2025-05-01")}
	complete := models.Review{
		ID:                      "r3",
		DeliveryDate:            testDate(t, "2025-05-02"),
		ReviewSubmitDate:        testDate(t, "2025-05-03"),
		ReviewAcceptedDate:      testDate(t, "2025-05-04"),
		RefundFormSubmittedDate: testDate(t, "2025-05-05"),
		PaymentReceivedDate:     testDate(t, "2025-05-06"),
	}
	all := []models.Review{received, pending, complete}

	got := FilterScope(all, "received")
	if len(got) != 2 {
		t.Fatalf("received scope: got %d records, want 2", len(got))
	}

	got = FilterScope(all, "pending")
	if len(got) != 2 {
		t.Fatalf("pending scope must keep incomplete chains, got %d records", len(got))
	}
	for _, r := range got {
		if r.ID == "r3" {
			t.Error("complete chain must be excluded from pending scope")
		}
	}

	got = FilterScope(all, "")
	if len(got) != 3 {
		t.Errorf("blank scope must keep everything, got %d", len(got))
	}
}

func TestFilterWindow(t *testing.T) {
	inside := models.Review{ID: "r1", PaymentReceivedDate: testDate(t, "2025-06-10")}
	before := models.Review{ID: "r2", PaymentReceivedDate: testDate(t, "2025-05-01")}
	all := []models.Review{inside, before}

	got := FilterWindow(all, "received", "2025-06-01", "2025-06-30")
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("window must keep only in-range records, got %v", got)
	}

	// bounds are inclusive
	got = FilterWindow(all, "received", "2025-06-10", "2025-06-10")
	if len(got) != 1 {
		t.Errorf("inclusive bounds: got %d records, want 1", len(got))
	}

	got = FilterWindow(all, "received", "", "")
	if len(got) != 2 {
		t.Errorf("no bounds keeps everything, got %d", len(got))
	}
}

func TestCountOverdue(t *testing.T) {
	now := models.NewDate(2025, 6, 20)
	overdue := models.Review{ID: "r1", DeliveryDate: testDate(t, "2025-06-01")}
	fresh := models.Review{ID: "r2", DeliveryDate: testDate(t, "2025-06-18")}
	done := models.Review{
		ID:                      "r3",
		DeliveryDate:            testDate(t, "2025-01-01"),
		ReviewSubmitDate:        testDate(t, "2025-01-02"),
		ReviewAcceptedDate:      testDate(t, "2025-01-03"),
		RefundFormSubmittedDate: testDate(t, "2025-01-04"),
		PaymentReceivedDate:     testDate(t, "2025-01-05"),
	}
	undelivered := models.Review{ID: "r4", OrderedDate: testDate(t, "2025-01-01")}

	got := countOverdue([]models.Review{overdue, fresh, done, undelivered}, now)
	if got != 1 {
		t.Errorf("countOverdue = %d, want 1", got)
	}
}

func TestComputeAggregates(t *testing.T) {
	reviews := []models.Review{
		{ID: "r1", AmountRupees: amt("100"), RefundAmountRupees: amt("90")},
		{ID: "r2", AmountRupees: amt("50"), LessRupees: amt("5")},
	}
	agg := ComputeAggregates(reviews)
	if agg.Count != 2 {
		t.Errorf("count = %d, want 2", agg.Count)
	}
	if !agg.TotalAmount.Equal(decimal.RequireFromString("150")) {
		t.Errorf("totalAmount = %s, want 150", agg.TotalAmount)
	}
	if !agg.TotalRefund.Equal(decimal.RequireFromString("135")) {
		t.Errorf("totalRefund = %s, want 135 (90 + 45)", agg.TotalRefund)
	}
}
