package reconcile

import "contentsync/core/mapping"

// Report summarizes one reconciliation run. The created, updated and
// retired sets partition the union of external and internal IDs; failed
// records are counted separately and never abort the batch.
type Report struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Retired int `json:"retired"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`

	CreatedIDs []string `json:"created_ids,omitempty"`
	UpdatedIDs []string `json:"updated_ids,omitempty"`
	RetiredIDs []string `json:"retired_ids,omitempty"`
	FailedIDs  []string `json:"failed_ids,omitempty"`

	// Observations collects the field mapping outcomes of the run.
	Observations *mapping.ObservationLog `json:"-"`
}

func newReport() *Report {
	return &Report{Observations: &mapping.ObservationLog{}}
}

// Processed returns the number of external records that ended in a
// terminal state.
func (r *Report) Processed() int {
	return r.Created + r.Updated + r.Failed
}
