package iqr

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/iqrfit/errs"
	"github.com/arloliu/iqrfit/regression"
)

const tolerance = 1e-12

func residualsOf(values ...float64) []regression.Residual {
	out := make([]regression.Residual, len(values))
	for i, v := range values {
		out[i] = regression.Residual{ObservationID: string(rune('a' + i)), Index: i, Value: v}
	}

	return out
}

func TestSummarize_Reference(t *testing.T) {
	s, err := Summarize([]float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1})
	require.NoError(t, err)

	assert.InDelta(t, 3.25, s.Q1, tolerance)
	assert.InDelta(t, 7.75, s.Q3, tolerance)
	assert.InDelta(t, 4.5, s.IQR, tolerance)
	assert.InDelta(t, -3.5, s.LowerFence, tolerance)
	assert.InDelta(t, 14.5, s.UpperFence, tolerance)
}

func TestSummarize_DoesNotModifyInput(t *testing.T) {
	in := []float64{3, 1, 2}
	_, err := Summarize(in)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 1, 2}, in)
}

func TestSummarize_Small(t *testing.T) {
	s, err := Summarize([]float64{4.2})
	require.NoError(t, err)
	require.Equal(t, Summary{Q1: 4.2, Q3: 4.2, IQR: 0, LowerFence: 4.2, UpperFence: 4.2}, s)

	s, err = Summarize([]float64{0, 4})
	require.NoError(t, err)
	require.InDelta(t, 1.0, s.Q1, tolerance)
	require.InDelta(t, 3.0, s.Q3, tolerance)
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil)
	require.ErrorIs(t, err, errs.ErrEmptyInput)

	_, err = Classify(nil)
	require.ErrorIs(t, err, errs.ErrEmptyInput)
}

// oneBasedQuartile is the quartile rule of the spreadsheet workflow: one-based
// positions 0.25(n+3) and 0.25(3n+1), interpolating on the fractional part.
func oneBasedQuartile(sorted []float64, cutoff float64) float64 {
	p1 := int(cutoff) - 1
	frac := cutoff - float64(int(cutoff))
	if frac == 0 {
		return sorted[p1]
	}

	return sorted[p1] + frac*(sorted[p1+1]-sorted[p1])
}

func TestPercentile_MatchesSpreadsheetPositions(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 4; n <= 40; n++ {
		values := make([]float64, n)
		for i := range values {
			values[i] = rng.NormFloat64() * 3
		}
		slices.Sort(values)

		nf := float64(n)
		require.InDelta(t, oneBasedQuartile(values, 0.25*(nf+3)), Percentile(values, 0.25), 1e-12, "Q1 n=%d", n)
		require.InDelta(t, oneBasedQuartile(values, 0.25*(3*nf+1)), Percentile(values, 0.75), 1e-12, "Q3 n=%d", n)
	}
}

func TestPercentile_Bounds(t *testing.T) {
	sorted := []float64{-2, 0, 5}
	require.Equal(t, -2.0, Percentile(sorted, 0))
	require.Equal(t, 5.0, Percentile(sorted, 1))
	require.Equal(t, 2.5, Percentile(sorted, 0.75))

	require.Panics(t, func() { Percentile(nil, 0.5) })
	require.Panics(t, func() { Percentile(sorted, 1.5) })
	require.Panics(t, func() { Percentile(sorted, math.NaN()) })
}

func TestSummary_IsOutlier_Boundary(t *testing.T) {
	s, err := Summarize([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	require.NoError(t, err)

	require.False(t, s.IsOutlier(-3.5))
	require.False(t, s.IsOutlier(14.5))
	require.True(t, s.IsOutlier(math.Nextafter(-3.5, math.Inf(-1))))
	require.True(t, s.IsOutlier(math.Nextafter(14.5, math.Inf(1))))
}

func TestClassify(t *testing.T) {
	t.Run("values on the fences are inliers", func(t *testing.T) {
		// Q1 = 0, Q3 = 1, fences [-1.5, 2.5]
		c, err := Classify(residualsOf(0, 0, 0, 0, 1, 1, 1, 1, 2.5, -1.5, 2.6))
		require.NoError(t, err)

		require.InDelta(t, 0.0, c.Summary.Q1, tolerance)
		require.InDelta(t, 1.0, c.Summary.Q3, tolerance)
		require.InDelta(t, -1.5, c.Summary.LowerFence, tolerance)
		require.InDelta(t, 2.5, c.Summary.UpperFence, tolerance)

		require.Equal(t, []string{"k"}, c.OutlierIDs())
		require.Equal(t, []int{10}, c.OutlierIndices())
		require.Len(t, c.Inliers, 10)
	})

	t.Run("scenario residuals", func(t *testing.T) {
		c, err := Classify(residualsOf(0.08, -0.62, -1.32, 4.18, -2.32))
		require.NoError(t, err)

		require.InDelta(t, -1.32, c.Summary.Q1, 1e-9)
		require.InDelta(t, 0.08, c.Summary.Q3, 1e-9)
		require.InDelta(t, 1.4, c.Summary.IQR, 1e-9)
		require.Equal(t, []string{"d"}, c.OutlierIDs())
		require.Equal(t, []int{3}, c.OutlierIndices())
	})

	t.Run("keeps input order", func(t *testing.T) {
		c, err := Classify(residualsOf(100, 0, 1, 2, 3, 4, 5, -100))
		require.NoError(t, err)
		require.Equal(t, []string{"a", "h"}, c.OutlierIDs())

		ids := make([]string, len(c.Inliers))
		for i, r := range c.Inliers {
			ids[i] = r.ObservationID
		}
		require.Equal(t, []string{"b", "c", "d", "e", "f", "g"}, ids)
	})

	t.Run("identical residuals", func(t *testing.T) {
		c, err := Classify(residualsOf(0, 0, 0, 0))
		require.NoError(t, err)
		require.Empty(t, c.Outliers)
		require.Zero(t, c.Summary.IQR)
	})
}
