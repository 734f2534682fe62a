package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/iqrfit/dataset"
	"github.com/arloliu/iqrfit/errs"
	"github.com/arloliu/iqrfit/format"
)

// AxisRoles selects which axis is regressed on which.
type AxisRoles struct {
	Independent format.Axis `json:"independent"`
	Dependent   format.Axis `json:"dependent"`
}

// RolesFor returns the axis roles used by the given orientation.
func RolesFor(o format.Orientation) AxisRoles {
	ind := o.Independent()
	return AxisRoles{Independent: ind, Dependent: ind.Other()}
}

func (r AxisRoles) valid() bool {
	return r.Independent != r.Dependent &&
		(r.Independent == format.AxisX || r.Independent == format.AxisY) &&
		(r.Dependent == format.AxisX || r.Dependent == format.AxisY)
}

// Fit is a fitted line: Dependent = Intercept + Slope·Independent.
type Fit struct {
	Intercept float64   `json:"intercept"`
	Slope     float64   `json:"slope"`
	Roles     AxisRoles `json:"roles"`
	// N is the number of observations the line was fitted to.
	N int `json:"n"`
	// RSquared is the coefficient of determination (0 when the dependent
	// variable has no variance).
	RSquared float64 `json:"r_squared"`
	// RMSE is the root mean square of the residuals.
	RMSE float64 `json:"rmse"`
}

// Predict returns the dependent value predicted for the independent value v.
func (f Fit) Predict(v float64) float64 {
	return f.Intercept + f.Slope*v
}

// Residual returns the observed minus predicted dependent value of o.
func (f Fit) Residual(o dataset.Observation) float64 {
	return o.Value(f.Roles.Dependent) - f.Predict(o.Value(f.Roles.Independent))
}

// Formula returns a human-readable form of the line, e.g. "y = 0.1000 + 2.0000*x".
func (f Fit) Formula() string {
	// Abs clears the sign of a negative zero so it prints as 0.0000
	sign, slope := "+", math.Abs(f.Slope)
	if f.Slope < 0 {
		sign = "-"
	}
	intercept := f.Intercept
	if intercept == 0 {
		intercept = math.Abs(intercept)
	}

	return fmt.Sprintf("%s = %.4f %s %.4f*%s", f.Roles.Dependent, intercept, sign, slope, f.Roles.Independent)
}

// String returns a summary of the fit.
func (f Fit) String() string {
	return fmt.Sprintf("Fit{%s, N: %d, R²: %.4f, RMSE: %.4f}", f.Formula(), f.N, f.RSquared, f.RMSE)
}

// Residual is the signed residual of one observation under a Fit.
type Residual struct {
	ObservationID string `json:"id"`
	// Index is the position of the observation in the dataset the residuals
	// were computed on.
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// Residuals evaluates the fit against every observation of ds, in order.
func (f Fit) Residuals(ds dataset.Dataset) []Residual {
	out := make([]Residual, 0, ds.Len())
	for i, o := range ds.All() {
		out = append(out, Residual{ObservationID: o.ID, Index: i, Value: f.Residual(o)})
	}

	return out
}

// FitLine fits a least-squares line to ds with the given axis roles.
//
// Returns:
//   - Fit: the fitted line with R² and RMSE
//   - error: *errs.DegenerateInputError for fewer than two points or a
//     constant independent variable
func FitLine(ds dataset.Dataset, roles AxisRoles) (Fit, error) {
	if !roles.valid() {
		return Fit{}, fmt.Errorf("invalid axis roles: independent=%s dependent=%s", roles.Independent, roles.Dependent)
	}

	n := ds.Len()
	if n < 2 {
		return Fit{}, &errs.DegenerateInputError{N: n, Reason: "need at least 2 points"}
	}

	u := ds.Values(roles.Independent)
	v := ds.Values(roles.Dependent)

	// exact comparison: any spread at all gives a finite slope
	if floats.Min(u) == floats.Max(u) {
		return Fit{}, &errs.DegenerateInputError{
			N:      n,
			Reason: fmt.Sprintf("independent variable %s has zero variance", roles.Independent),
		}
	}

	alpha, beta := stat.LinearRegression(u, v, nil, false)

	predicted := make([]float64, n)
	for i := range n {
		predicted[i] = alpha + beta*u[i]
	}

	return Fit{
		Intercept: alpha,
		Slope:     beta,
		Roles:     roles,
		N:         n,
		RSquared:  calculateRSquared(v, predicted),
		RMSE:      calculateRMSE(v, predicted),
	}, nil
}
