// Package analysis drives the iterative regression and IQR outlier removal.
//
// For one orientation a Controller repeats rounds of
//
//	fit a line → compute residuals → classify with IQR fences → remove outliers
//
// until a round finds no outliers. Every round is recorded, so the result is a
// complete audit trail of the fits, quartiles and removed observations.
//
// Run analyses a dataset in the normal orientation (Y regressed on X) and,
// with WithSwapAxes, also in the swapped orientation (X regressed on Y). Both
// orientations start from the same original dataset and never share removed
// outliers; they run concurrently unless WithSequential is given.
//
//	outcome, err := analysis.Run(ctx, ds, analysis.WithIterate(true), analysis.WithSwapAxes(true))
//	if err != nil {
//	    return err // cancelled or misconfigured
//	}
//	for _, res := range outcome.Results {
//	    if res.Err != nil {
//	        log.Printf("%s: %v", res.Orientation, res.Err)
//	        continue
//	    }
//	    fmt.Println(res.Orientation, res.FinalFit.Formula(), res.AllOutlierIDs)
//	}
//
// A fit or classification failure aborts only the orientation it occurs in and
// is reported in Result.Err. When removing outliers would leave fewer than two
// observations, iteration stops, the last fit stands, and Result.Exhausted
// records the forced stop.
package analysis
