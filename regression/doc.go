// Package regression fits ordinary least-squares lines to iqrfit datasets.
//
// A fit regresses one axis of the dataset on the other. The roles are chosen
// explicitly with AxisRoles, so the same dataset can be fitted as Y = a + bX
// (the normal orientation) or X = a + bY (the swapped orientation) without any
// shared state between the two.
//
// # Basic Usage
//
//	fit, err := regression.FitLine(ds, regression.RolesFor(format.OrientationNormal))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(fit.Formula())          // y = -0.5800 + 1.6000*x
//	residuals := fit.Residuals(ds)      // observed - predicted, in dataset order
//
// # Closed Form
//
// With u the independent and v the dependent variable:
//
//	slope     b = Σ(uᵢ − ū)(vᵢ − v̄) / Σ(uᵢ − ū)²
//	intercept a = v̄ − b·ū
//
// The coefficients are computed with gonum's stat.LinearRegression, which
// evaluates exactly this centred form.
//
// # Degenerate Input
//
// FitLine returns an *errs.DegenerateInputError when the dataset has fewer
// than two observations or when every independent value is identical, since
// the slope is undefined in both cases.
package regression
