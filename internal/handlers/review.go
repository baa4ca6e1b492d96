package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vinishch/review-tracker/internal/models"
	"github.com/vinishch/review-tracker/internal/services"
	"github.com/vinishch/review-tracker/pkg/response"
	"gorm.io/gorm"
)

type ReviewHandler struct {
	reviewService    *services.ReviewService
	dashboardService *services.DashboardService
	historyService   *services.HistoryService
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{
		reviewService:    services.NewReviewService(db),
		dashboardService: services.NewDashboardService(db),
		historyService:   services.NewHistoryService(db),
	}
}

// List returns all reviews, newest first
// GET /api/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.reviewService.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reviews)
}

// GetByID returns one review
// GET /api/reviews/:id
func (h *ReviewHandler) GetByID(c *gin.Context) {
	r, err := h.reviewService.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, r)
}

// Create stores a new review
// POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var r models.Review
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.reviewService.Create(&r); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, r)
}

// Update replaces a review; the body must carry the version read earlier
// PUT /api/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	var r models.Review
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.reviewService.Update(c.Param("id"), &r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

// Delete removes a review
// DELETE /api/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.reviewService.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func paging(c *gin.Context) (page, size int, sort, dir string) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))
	sort = c.Query("sort")
	dir = c.Query("dir")
	return
}

// Search returns a filtered page, filter in the query string
// GET /api/reviews/search
func (h *ReviewHandler) Search(c *gin.Context) {
	var filter services.ReviewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter.Normalize()

	page, size, sort, dir := paging(c)
	result, err := h.reviewService.Search(&filter, page, size, sort, dir)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SearchPost is the same search with the filter in the body, for filters
// too large for a query string
// POST /api/reviews/search
func (h *ReviewHandler) SearchPost(c *gin.Context) {
	var filter services.ReviewFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter.Normalize()

	page, size, sort, dir := paging(c)
	result, err := h.reviewService.Search(&filter, page, size, sort, dir)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Aggregates sums the filtered set
// GET /api/reviews/aggregates
func (h *ReviewHandler) Aggregates(c *gin.Context) {
	var filter services.ReviewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	agg, err := h.dashboardService.Aggregates(&filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, agg)
}

// AggregatesPost sums with the filter in the body
// POST /api/reviews/aggregates
func (h *ReviewHandler) AggregatesPost(c *gin.Context) {
	var filter services.ReviewFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	agg, err := h.dashboardService.Aggregates(&filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, agg)
}

// DashboardStats builds the dashboard snapshot
// GET /api/reviews/dashboard-stats?scope=received&from=&to=
func (h *ReviewHandler) DashboardStats(c *gin.Context) {
	var filter services.ReviewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	stats, err := h.dashboardService.Stats(&filter,
		c.Query("scope"), c.Query("windowFrom"), c.Query("windowTo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// OverdueCount counts deals stuck past delivery
// GET /api/reviews/metrics/overdue-count
func (h *ReviewHandler) OverdueCount(c *gin.Context) {
	count, err := h.dashboardService.OverdueCount()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// Clone duplicates a review under a suffixed order id
// POST /api/reviews/:id/clone
func (h *ReviewHandler) Clone(c *gin.Context) {
	clone, err := h.reviewService.Clone(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, clone)
}

type copyRequest struct {
	SourceID string   `json:"sourceId" binding:"required"`
	Fields   []string `json:"fields" binding:"required"`
}

// Copy copies selected fields from another review onto this one
// POST /api/reviews/:id/copy
func (h *ReviewHandler) Copy(c *gin.Context) {
	var req copyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	r, err := h.reviewService.CopyFields(req.SourceID, c.Param("id"), req.Fields)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, r)
}

type advanceRequest struct {
	Date string `json:"date"`
}

func parseWhen(raw string) (*models.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Advance fills the next pending stage date
// POST /api/reviews/:id/advance
func (h *ReviewHandler) Advance(c *gin.Context) {
	var req advanceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	when, err := parseWhen(req.Date)
	if err != nil {
		response.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}

	r, err := h.reviewService.Advance(c.Param("id"), when)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, r)
}

type bulkAdvanceRequest struct {
	IDs  []string `json:"ids" binding:"required"`
	Date string   `json:"date"`
}

// BulkAdvance advances several reviews in one call
// POST /api/reviews/bulk-advance
func (h *ReviewHandler) BulkAdvance(c *gin.Context) {
	var req bulkAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	when, err := parseWhen(req.Date)
	if err != nil {
		response.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}

	reviews, err := h.reviewService.BulkAdvance(req.IDs, when)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reviews)
}

type bulkUpdateRequest struct {
	IDs     []string               `json:"ids" binding:"required"`
	Updates map[string]interface{} `json:"updates" binding:"required"`
}

// BulkUpdate applies the same field changes to several reviews
// POST /api/reviews/bulk-update
func (h *ReviewHandler) BulkUpdate(c *gin.Context) {
	var req bulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reviews, err := h.reviewService.BulkUpdate(req.IDs, req.Updates)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reviews)
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// BulkDelete removes several reviews; missing ids are skipped
// POST /api/reviews/bulk-delete
func (h *ReviewHandler) BulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.reviewService.BulkDelete(req.IDs); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// History returns the audit trail for one review
// GET /api/reviews/:id/history
func (h *ReviewHandler) History(c *gin.Context) {
	if _, err := h.reviewService.Get(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	entries, err := h.historyService.ListFor(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}

// Export streams every review as CSV
// GET /api/reviews/export
func (h *ReviewHandler) Export(c *gin.Context) {
	out, err := h.reviewService.ExportCSV()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="reviews.csv"`)
	c.Data(200, "text/csv", []byte(out))
}

// Import loads reviews from an uploaded CSV file (multipart "file" field)
// or a raw CSV body
// POST /api/reviews/import
func (h *ReviewHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err == nil {
		f, err := file.Open()
		if err != nil {
			response.ServerError(c, err.Error())
			return
		}
		defer f.Close()

		reviews, err := h.reviewService.ImportCSV(f)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, reviews)
		return
	}

	reviews, err := h.reviewService.ImportCSV(c.Request.Body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reviews)
}
