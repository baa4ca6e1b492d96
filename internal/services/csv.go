package services

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vinishch/review-tracker/internal/lifecycle"
	"github.com/vinishch/review-tracker/internal/models"
	"github.com/vinishch/review-tracker/pkg/response"
)

// csvHeader is the fixed export column order; import requires the first
// eight to be present in the uploaded header.
var csvHeader = []string{
	"orderId", "orderLink", "productName", "dealType", "platformId", "mediatorId",
	"amountRupees", "lessRupees", "refundAmountRupees",
	"orderedDate", "deliveryDate", "reviewSubmitDate", "reviewAcceptedDate",
	"ratingSubmittedDate", "refundFormSubmittedDate", "paymentReceivedDate",
	"status",
}

var csvRequiredColumns = csvHeader[:8]

// ExportCSV renders every review as CSV text in the fixed column order.
func (s *ReviewService) ExportCSV() (string, error) {
	reviews := []models.Review{}
	if err := s.db.Order("created_at ASC").Find(&reviews).Error; err != nil {
		return "", err
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for i := range reviews {
		r := &reviews[i]
		row := []string{
			r.OrderID,
			r.OrderLink,
			r.ProductName,
			r.DealType,
			r.PlatformID,
			r.MediatorID,
			decimalString(r.AmountRupees),
			decimalString(r.LessRupees),
			decimalString(r.RefundAmountRupees),
			dateString(r.OrderedDate),
			dateString(r.DeliveryDate),
			dateString(r.ReviewSubmitDate),
			dateString(r.ReviewAcceptedDate),
			dateString(r.RatingSubmittedDate),
			dateString(r.RefundFormSubmittedDate),
			dateString(r.PaymentReceivedDate),
			r.Status,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}

func decimalString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// ImportCSV parses and stores reviews from CSV text. The whole batch fails
// on a missing required column or a blank/duplicate orderId; unparsable
// dates and amounts on a row become absent instead of failing it. Status is
// recomputed per row, never read from the file.
func (s *ReviewService) ImportCSV(reader io.Reader) ([]models.Review, error) {
	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return []models.Review{}, nil
	}
	if err != nil {
		return nil, response.NewValidation("unreadable CSV: " + err.Error())
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range csvRequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, response.NewValidation("Missing required column: " + col).WithField(col, "required column")
		}
	}

	get := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	seen := map[string]bool{}
	reviews := []models.Review{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, response.NewValidation("unreadable CSV row: " + err.Error())
		}
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		orderID := get(row, "orderId")
		if orderID == "" {
			return nil, response.NewValidation("orderId is required in CSV").WithField("orderId", "required")
		}
		if seen[orderID] {
			return nil, response.NewValidation("Duplicate orderId in CSV: " + orderID).WithField("orderId", "duplicate")
		}
		exists, err := s.existsByOrderID(orderID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, response.NewValidation("Duplicate orderId in CSV or DB: " + orderID).WithField("orderId", "duplicate")
		}
		seen[orderID] = true

		r := models.Review{
			OrderID:                 orderID,
			OrderLink:               get(row, "orderLink"),
			ProductName:             get(row, "productName"),
			DealType:                get(row, "dealType"),
			PlatformID:              get(row, "platformId"),
			MediatorID:              get(row, "mediatorId"),
			AmountRupees:            parseDecimal(get(row, "amountRupees")),
			LessRupees:              parseDecimal(get(row, "lessRupees")),
			RefundAmountRupees:      parseDecimal(get(row, "refundAmountRupees")),
			OrderedDate:             parseDatePtr(get(row, "orderedDate")),
			DeliveryDate:            parseDatePtr(get(row, "deliveryDate")),
			ReviewSubmitDate:        parseDatePtr(get(row, "reviewSubmitDate")),
			ReviewAcceptedDate:      parseDatePtr(get(row, "reviewAcceptedDate")),
			RatingSubmittedDate:     parseDatePtr(get(row, "ratingSubmittedDate")),
			RefundFormSubmittedDate: parseDatePtr(get(row, "refundFormSubmittedDate")),
			PaymentReceivedDate:     parseDatePtr(get(row, "paymentReceivedDate")),
		}

		if err := s.normalizeMoney(&r); err != nil {
			return nil, err
		}
		r.Status = lifecycle.ResolveStatus(&r)
		reviews = append(reviews, r)
	}

	if len(reviews) == 0 {
		return reviews, nil
	}
	if err := s.db.Create(&reviews).Error; err != nil {
		return nil, err
	}
	for i := range reviews {
		s.history.Record(reviews[i].ID, models.HistoryImport, "Imported from CSV", nil)
	}
	return reviews, nil
}

func parseDecimal(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

func parseDatePtr(s string) *models.Date {
	if s == "" {
		return nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return nil
	}
	return &d
}
