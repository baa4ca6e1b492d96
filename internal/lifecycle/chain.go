package lifecycle

import "github.com/vinishch/review-tracker/internal/models"

// ChainOrderError reports a stage date earlier than its nearest present
// predecessor in the deal-type sequence.
type ChainOrderError struct {
	Field    string
	MinField string
}

func (e *ChainOrderError) Error() string {
	return e.Field + " must be >= " + e.MinField
}

// ValidateChain checks that the review's present stage dates are monotonic
// along its deal-type sequence. Absent dates are skipped: each present date
// is compared against the nearest earlier present date only, so gaps never
// block validation further down the chain.
func ValidateChain(r *models.Review) error {
	var (
		prevDate  *models.Date
		prevField string
	)
	for _, s := range SequenceFor(r.DealTypeOrDefault()) {
		d := s.DateOn(r)
		if d == nil {
			continue
		}
		if prevDate != nil && d.Time.Before(prevDate.Time) {
			return &ChainOrderError{Field: s.Field(), MinField: prevField}
		}
		prevDate = d
		prevField = s.Field()
	}
	return nil
}
