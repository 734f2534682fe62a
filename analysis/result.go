package analysis

import (
	"errors"
	"fmt"

	"github.com/arloliu/iqrfit/dataset"
	"github.com/arloliu/iqrfit/errs"
	"github.com/arloliu/iqrfit/format"
	"github.com/arloliu/iqrfit/iqr"
	"github.com/arloliu/iqrfit/regression"
)

// Round records one fit-classify-remove cycle.
type Round struct {
	// Index is the 1-based round number.
	Index int `json:"index"`
	// Fit is the line fitted to the round's input.
	Fit regression.Fit `json:"fit"`
	// Summary holds the quartiles and fences of the round's residuals.
	Summary iqr.Summary `json:"summary"`
	// Residuals holds the residual of every fitted observation, in order.
	Residuals []regression.Residual `json:"residuals"`
	// Outliers holds the residuals classified as outliers, in order.
	Outliers []regression.Residual `json:"outliers"`
	// OutlierIDs lists the identifiers of Outliers.
	OutlierIDs []string `json:"outlier_ids"`
	// Fitted is the number of observations the round fitted.
	Fitted int `json:"fitted"`
	// Remaining is the round's input without its outliers.
	Remaining dataset.Dataset `json:"remaining"`
}

// Result is the outcome of analysing one orientation.
type Result struct {
	Orientation format.Orientation `json:"orientation"`
	Rounds      []Round            `json:"rounds"`
	// FinalFit is the fit of the last completed round.
	FinalFit regression.Fit `json:"final_fit"`
	// AllOutlierIDs lists every removed identifier in the order of removal.
	AllOutlierIDs []string          `json:"all_outlier_ids"`
	StopReason    format.StopReason `json:"stop_reason"`
	// Exhausted is set when iteration stopped because removal would leave
	// fewer than two observations.
	Exhausted *errs.InsufficientDataError `json:"exhausted,omitempty"`
	// Err is set when a fit or classification aborted the orientation.
	Err error `json:"-"`
}

// Converged reports whether the last round found no outliers.
func (r *Result) Converged() bool {
	return r.StopReason == format.StopConverged
}

// LastRound returns the last completed round, or nil if none completed.
func (r *Result) LastRound() *Round {
	if len(r.Rounds) == 0 {
		return nil
	}

	return &r.Rounds[len(r.Rounds)-1]
}

// OrientationError reports a failure that aborted one orientation.
type OrientationError struct {
	Orientation format.Orientation
	Round       int
	Err         error
}

func (e *OrientationError) Error() string {
	return fmt.Sprintf("%s orientation, round %d: %v", e.Orientation, e.Round, e.Err)
}

func (e *OrientationError) Unwrap() error {
	return e.Err
}

// Outcome holds the results of every analysed orientation.
type Outcome struct {
	Config Config `json:"config"`
	// Size is the number of observations in the analysed dataset.
	Size int `json:"size"`
	// Fingerprint identifies the analysed dataset (see dataset.Dataset.Fingerprint).
	Fingerprint uint64    `json:"fingerprint"`
	Results     []*Result `json:"results"`
}

// Result returns the result for orientation o, or nil if it was not analysed.
func (o *Outcome) Result(orientation format.Orientation) *Result {
	for _, r := range o.Results {
		if r != nil && r.Orientation == orientation {
			return r
		}
	}

	return nil
}

// Err joins the per-orientation errors; it is nil when every orientation
// completed.
func (o *Outcome) Err() error {
	var all []error
	for _, r := range o.Results {
		if r != nil && r.Err != nil {
			all = append(all, r.Err)
		}
	}

	return errors.Join(all...)
}

// UnionOutlierIDs returns the identifiers removed in any orientation: those of
// the first result in order, followed by those only the later results removed.
// The union is a reporting view; the orientations never exclude each other's
// outliers.
func (o *Outcome) UnionOutlierIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, r := range o.Results {
		if r == nil {
			continue
		}
		for _, id := range r.AllOutlierIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	return ids
}
