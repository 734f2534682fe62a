// Package iqrfit fits least-squares lines to (x, y) observations and removes
// outliers by the interquartile-range rule, optionally repeating until a
// round finds none.
//
// Each round fits a line to the current observations, computes the residual
// of every point, and flags the points whose residual falls strictly outside
// the fences Q1 - 1.5*IQR and Q3 + 1.5*IQR of the residuals. In iterative mode
// the flagged points are removed and the next round refits the rest.
//
// The analysis can also be run with the axes swapped (x regressed on y). The
// two orientations are independent: each starts from the full dataset and
// removes only its own outliers.
//
// # Basic Usage
//
//	obs := []dataset.Observation{
//	    {ID: "a", X: 1, Y: 1.1},
//	    {ID: "b", X: 2, Y: 2.0},
//	    {ID: "c", X: 3, Y: 2.9},
//	    {ID: "d", X: 4, Y: 10.0},
//	    {ID: "e", X: 5, Y: 5.1},
//	}
//
//	out, err := iqrfit.Analyze(obs, analysis.WithIterate(true))
//	if err != nil {
//	    return err
//	}
//	res := out.Result(format.OrientationNormal)
//	fmt.Println(res.FinalFit.Formula(), res.AllOutlierIDs) // y = 0.0171 + 1.0029*x [d]
//
// # Package Structure
//
// This package provides convenience wrappers around the analysis package.
// The building blocks live in their own packages:
//   - dataset: observations, parsing and loading (plain or compressed files)
//   - regression: the least-squares fit and residuals
//   - iqr: quartiles, fences and classification
//   - analysis: the round controller and orientation runner
//   - report: text summary, JSON archive and PNG plots
package iqrfit

import (
	"context"
	"fmt"

	"github.com/arloliu/iqrfit/analysis"
	"github.com/arloliu/iqrfit/dataset"
)

// Analyze runs the analysis over obs with a background context.
func Analyze(obs []dataset.Observation, opts ...analysis.Option) (*analysis.Outcome, error) {
	return analysis.Run(context.Background(), dataset.New(obs), opts...)
}

// AnalyzeFile loads the observations in path and analyses them. Files with a
// compression extension (.zst, .s2, .lz4, .gz) are decompressed on the fly.
func AnalyzeFile(ctx context.Context, path string, opts ...analysis.Option) (*analysis.Outcome, dataset.Dataset, error) {
	ds, err := dataset.Load(path)
	if err != nil {
		return nil, dataset.Dataset{}, fmt.Errorf("load %s: %w", path, err)
	}

	out, err := analysis.Run(ctx, ds, opts...)
	if err != nil {
		return nil, ds, err
	}

	return out, ds, nil
}
