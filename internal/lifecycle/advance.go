package lifecycle

import "github.com/vinishch/review-tracker/internal/models"

// Advance fills the first unfilled stage in the review's sequence with when
// and clears every later stage, re-opening the downstream chain so an
// out-of-order manual advance can be corrected. Status is recomputed. The
// chain is not re-validated here: a caller-supplied date earlier than an
// already-filled stage is accepted, matching the tracker's historical
// behavior. Returns the filled stage and false when the chain was already
// complete (no-op).
func Advance(r *models.Review, when models.Date) (Stage, bool) {
	seq := SequenceFor(r.DealTypeOrDefault())
	for i, s := range seq {
		if s.DateOn(r) != nil {
			continue
		}
		d := when
		s.SetDate(r, &d)
		for _, later := range seq[i+1:] {
			later.SetDate(r, nil)
		}
		r.Status = ResolveStatus(r)
		return s, true
	}
	return 0, false
}
