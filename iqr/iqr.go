package iqr

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/iqrfit/errs"
	"github.com/arloliu/iqrfit/regression"
)

// FenceK is the IQR multiplier used for the outlier fences.
const FenceK = 1.5

// Summary holds the quartiles of a sample and the derived fences.
type Summary struct {
	Q1         float64 `json:"q1"`
	Q3         float64 `json:"q3"`
	IQR        float64 `json:"iqr"`
	LowerFence float64 `json:"lower_fence"`
	UpperFence float64 `json:"upper_fence"`
}

// IsOutlier reports whether v lies strictly outside the fences.
func (s Summary) IsOutlier(v float64) bool {
	return v < s.LowerFence || v > s.UpperFence
}

func (s Summary) String() string {
	return fmt.Sprintf("Summary{Q1: %.4f, Q3: %.4f, IQR: %.4f, Fences: [%.4f, %.4f]}",
		s.Q1, s.Q3, s.IQR, s.LowerFence, s.UpperFence)
}

// Percentile returns the p-th quantile (p in [0, 1]) of an ascending sorted
// sample by linear interpolation at position p·(n−1).
//
// It panics if sorted is empty or p is outside [0, 1].
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		panic("iqr: Percentile of empty sample")
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		panic(fmt.Sprintf("iqr: percentile %v out of range [0, 1]", p))
	}

	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	if frac == 0 || lo+1 >= n {
		return sorted[lo]
	}

	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Summarize computes the quartile summary of values. values is not modified.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, &errs.EmptyInputError{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	q1 := Percentile(sorted, 0.25)
	q3 := Percentile(sorted, 0.75)
	spread := q3 - q1

	return Summary{
		Q1:         q1,
		Q3:         q3,
		IQR:        spread,
		LowerFence: q1 - FenceK*spread,
		UpperFence: q3 + FenceK*spread,
	}, nil
}

// Classification partitions residuals into inliers and outliers. Both slices
// keep the input order.
type Classification struct {
	Summary  Summary
	Inliers  []regression.Residual
	Outliers []regression.Residual
}

// OutlierIndices returns the dataset indices of the outliers.
func (c Classification) OutlierIndices() []int {
	idx := make([]int, len(c.Outliers))
	for i, r := range c.Outliers {
		idx[i] = r.Index
	}

	return idx
}

// OutlierIDs returns the observation identifiers of the outliers.
func (c Classification) OutlierIDs() []string {
	ids := make([]string, len(c.Outliers))
	for i, r := range c.Outliers {
		ids[i] = r.ObservationID
	}

	return ids
}

// Classify summarizes the residual values and partitions the residuals
// against the resulting fences.
func Classify(residuals []regression.Residual) (Classification, error) {
	values := make([]float64, len(residuals))
	for i, r := range residuals {
		values[i] = r.Value
	}

	summary, err := Summarize(values)
	if err != nil {
		return Classification{}, err
	}

	c := Classification{Summary: summary}
	for _, r := range residuals {
		if summary.IsOutlier(r.Value) {
			c.Outliers = append(c.Outliers, r)
		} else {
			c.Inliers = append(c.Inliers, r)
		}
	}

	return c, nil
}
