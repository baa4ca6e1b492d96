package services

import (
	"strings"

	"github.com/vinishch/review-tracker/internal/models"
	"gorm.io/gorm"
)

// ReviewFilter narrows the review set for search and aggregation. Zero
// values mean "no constraint".
type ReviewFilter struct {
	PlatformID string `form:"platformId" json:"platformId"`
	MediatorID string `form:"mediatorId" json:"mediatorId"`
	Status     string `form:"status" json:"status"`
	DealType   string `form:"dealType" json:"dealType"`

	PlatformIDIn []string `form:"platformIdIn" json:"platformIdIn"`
	MediatorIDIn []string `form:"mediatorIdIn" json:"mediatorIdIn"`
	StatusIn     []string `form:"statusIn" json:"statusIn"`
	DealTypeIn   []string `form:"dealTypeIn" json:"dealTypeIn"`

	ProductNameContains string `form:"productNameContains" json:"productNameContains"`
	OrderIDContains     string `form:"orderIdContains" json:"orderIdContains"`

	HasRefundFormURL *bool `form:"hasRefundFormUrl" json:"hasRefundFormUrl"`

	// Window on createdAt, inclusive, YYYY-MM-DD.
	From string `form:"from" json:"from"`
	To   string `form:"to" json:"to"`
}

// Normalize expands comma-separated membership values, so both repeated
// query params and single "a,b,c" strings are accepted.
func (f *ReviewFilter) Normalize() {
	f.PlatformIDIn = splitValues(f.PlatformIDIn)
	f.MediatorIDIn = splitValues(f.MediatorIDIn)
	f.StatusIn = splitValues(f.StatusIn)
	f.DealTypeIn = splitValues(f.DealTypeIn)
}

func splitValues(in []string) []string {
	var out []string
	for _, v := range in {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func (f *ReviewFilter) apply(q *gorm.DB) *gorm.DB {
	if f == nil {
		return q
	}
	if f.PlatformID != "" {
		q = q.Where("platform_id = ?", f.PlatformID)
	}
	if len(f.PlatformIDIn) > 0 {
		q = q.Where("platform_id IN ?", f.PlatformIDIn)
	}
	if f.MediatorID != "" {
		q = q.Where("mediator_id = ?", f.MediatorID)
	}
	if len(f.MediatorIDIn) > 0 {
		q = q.Where("mediator_id IN ?", f.MediatorIDIn)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if len(f.StatusIn) > 0 {
		q = q.Where("status IN ?", f.StatusIn)
	}
	if f.DealType != "" {
		q = q.Where("deal_type = ?", f.DealType)
	}
	if len(f.DealTypeIn) > 0 {
		q = q.Where("deal_type IN ?", f.DealTypeIn)
	}
	if f.ProductNameContains != "" {
		q = q.Where("LOWER(product_name) LIKE ?", "%"+strings.ToLower(f.ProductNameContains)+"%")
	}
	if f.OrderIDContains != "" {
		q = q.Where("LOWER(order_id) LIKE ?", "%"+strings.ToLower(f.OrderIDContains)+"%")
	}
	if f.HasRefundFormURL != nil {
		if *f.HasRefundFormURL {
			q = q.Where("refund_form_url IS NOT NULL AND refund_form_url <> ''")
		} else {
			q = q.Where("refund_form_url IS NULL OR refund_form_url = ''")
		}
	}
	if f.From != "" {
		if d, err := models.ParseDate(f.From); err == nil {
			q = q.Where("created_at >= ?", d.Time)
		}
	}
	if f.To != "" {
		if d, err := models.ParseDate(f.To); err == nil {
			q = q.Where("created_at < ?", d.AddDate(0, 0, 1))
		}
	}
	return q
}

// Sortable columns, wire name -> column name. Anything else falls back to
// createdAt.
var sortColumns = map[string]string{
	"createdAt":               "created_at",
	"updatedAt":               "updated_at",
	"orderId":                 "order_id",
	"productName":             "product_name",
	"platformId":              "platform_id",
	"mediatorId":              "mediator_id",
	"status":                  "status",
	"dealType":                "deal_type",
	"amountRupees":            "amount_rupees",
	"refundAmountRupees":      "refund_amount_rupees",
	"orderedDate":             "ordered_date",
	"deliveryDate":            "delivery_date",
	"reviewSubmitDate":        "review_submit_date",
	"refundFormSubmittedDate": "refund_form_submitted_date",
	"paymentReceivedDate":     "payment_received_date",
}

// ReviewPage is one page of search results.
type ReviewPage struct {
	Items         []models.Review `json:"items"`
	Page          int             `json:"page"`
	Size          int             `json:"size"`
	TotalElements int64           `json:"totalElements"`
	TotalPages    int             `json:"totalPages"`
	Sort          string          `json:"sort"`
	Dir           string          `json:"dir"`
}

// Search returns a filtered, sorted page of reviews.
func (s *ReviewService) Search(filter *ReviewFilter, page, size int, sort, dir string) (*ReviewPage, error) {
	if filter != nil {
		filter.Normalize()
	}
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}

	column, ok := sortColumns[sort]
	if !ok {
		sort = "createdAt"
		column = "created_at"
	}
	if !strings.EqualFold(dir, "ASC") {
		dir = "DESC"
	} else {
		dir = "ASC"
	}

	var total int64
	if err := filter.apply(s.db.Model(&models.Review{})).Count(&total).Error; err != nil {
		return nil, err
	}

	items := []models.Review{}
	err := filter.apply(s.db.Model(&models.Review{})).
		Order(column + " " + dir).
		Offset(page * size).
		Limit(size).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &ReviewPage{
		Items:         items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Sort:          sort,
		Dir:           dir,
	}, nil
}
