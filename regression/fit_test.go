package regression

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/iqrfit/dataset"
	"github.com/arloliu/iqrfit/errs"
	"github.com/arloliu/iqrfit/format"
)

const tolerance = 1e-9

func scenario() dataset.Dataset {
	return dataset.New([]dataset.Observation{
		{ID: "a", X: 1, Y: 1.1},
		{ID: "b", X: 2, Y: 2.0},
		{ID: "c", X: 3, Y: 2.9},
		{ID: "d", X: 4, Y: 10.0},
		{ID: "e", X: 5, Y: 5.1},
	})
}

// textbookFit is the sum-based closed form used as an independent reference.
func textbookFit(u, v []float64) (a, b float64) {
	n := float64(len(u))
	var sumU, sumV, sumUV, sumU2 float64
	for i := range u {
		sumU += u[i]
		sumV += v[i]
		sumUV += u[i] * v[i]
		sumU2 += u[i] * u[i]
	}
	b = (n*sumUV - sumU*sumV) / (n*sumU2 - sumU*sumU)
	a = sumV/n - b*sumU/n

	return a, b
}

func sumSquares(ds dataset.Dataset, roles AxisRoles, a, b float64) float64 {
	f := Fit{Intercept: a, Slope: b, Roles: roles}
	total := 0.0
	for _, r := range f.Residuals(ds) {
		total += r.Value * r.Value
	}

	return total
}

func TestFitLine_Scenario(t *testing.T) {
	fit, err := FitLine(scenario(), RolesFor(format.OrientationNormal))
	require.NoError(t, err)

	require.InDelta(t, 1.6, fit.Slope, tolerance)
	require.InDelta(t, -0.58, fit.Intercept, tolerance)
	require.Equal(t, 5, fit.N)
	require.Equal(t, format.AxisX, fit.Roles.Independent)
	require.Equal(t, format.AxisY, fit.Roles.Dependent)
	require.Equal(t, "y = -0.5800 + 1.6000*x", fit.Formula())
	require.Contains(t, fit.String(), "N: 5")

	residuals := fit.Residuals(scenario())
	want := []float64{0.08, -0.62, -1.32, 4.18, -2.32}
	require.Len(t, residuals, len(want))
	for i, r := range residuals {
		require.Equal(t, i, r.Index)
		require.InDelta(t, want[i], r.Value, tolerance, "residual %s", r.ObservationID)
	}
}

func TestFitLine_Swapped(t *testing.T) {
	ds := scenario()
	fit, err := FitLine(ds, RolesFor(format.OrientationSwapped))
	require.NoError(t, err)

	a, b := textbookFit(ds.Values(format.AxisY), ds.Values(format.AxisX))
	require.InDelta(t, a, fit.Intercept, tolerance)
	require.InDelta(t, b, fit.Slope, tolerance)
	require.Equal(t, format.AxisY, fit.Roles.Independent)
	require.Equal(t, format.AxisX, fit.Roles.Dependent)

	// residual is observed x minus predicted x
	o := ds.At(3)
	require.InDelta(t, o.X-(fit.Intercept+fit.Slope*o.Y), fit.Residual(o), tolerance)
}

func TestFitLine_MinimizesSumOfSquares(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := range 20 {
		n := 2 + rng.Intn(30)
		obs := make([]dataset.Observation, n)
		for i := range obs {
			x := rng.Float64() * 10
			obs[i] = dataset.Observation{ID: "p", X: x, Y: 3 - 0.7*x + rng.NormFloat64()}
		}
		ds := dataset.New(obs)
		roles := RolesFor(format.OrientationNormal)

		fit, err := FitLine(ds, roles)
		require.NoError(t, err, "trial %d", trial)

		a, b := textbookFit(ds.Values(format.AxisX), ds.Values(format.AxisY))
		require.InDelta(t, a, fit.Intercept, 1e-7)
		require.InDelta(t, b, fit.Slope, 1e-7)

		best := sumSquares(ds, roles, fit.Intercept, fit.Slope)
		for _, d := range []struct{ da, db float64 }{{1e-3, 0}, {-1e-3, 0}, {0, 1e-3}, {0, -1e-3}, {1e-3, -1e-3}} {
			require.GreaterOrEqual(t, sumSquares(ds, roles, fit.Intercept+d.da, fit.Slope+d.db), best-1e-12)
		}
		require.InDelta(t, math.Sqrt(best/float64(n)), fit.RMSE, 1e-9)
	}
}

func TestFitLine_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		obs  []dataset.Observation
	}{
		{"empty", nil},
		{"single point", []dataset.Observation{{ID: "a", X: 1, Y: 1}}},
		{"constant x", []dataset.Observation{{ID: "a", X: 0.1, Y: 1}, {ID: "b", X: 0.1, Y: 2}, {ID: "c", X: 0.1, Y: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitLine(dataset.New(tt.obs), RolesFor(format.OrientationNormal))
			require.ErrorIs(t, err, errs.ErrDegenerateInput)

			var dErr *errs.DegenerateInputError
			require.ErrorAs(t, err, &dErr)
			require.Equal(t, len(tt.obs), dErr.N)
		})
	}

	t.Run("constant y only fails when swapped", func(t *testing.T) {
		ds := dataset.New([]dataset.Observation{{ID: "a", X: 1, Y: 5}, {ID: "b", X: 2, Y: 5}})

		fit, err := FitLine(ds, RolesFor(format.OrientationNormal))
		require.NoError(t, err)
		require.InDelta(t, 0.0, fit.Slope, tolerance)
		require.InDelta(t, 5.0, fit.Intercept, tolerance)
		require.Zero(t, fit.RSquared)

		_, err = FitLine(ds, RolesFor(format.OrientationSwapped))
		require.ErrorIs(t, err, errs.ErrDegenerateInput)
	})
}

func TestFitLine_InvalidRoles(t *testing.T) {
	_, err := FitLine(scenario(), AxisRoles{Independent: format.AxisX, Dependent: format.AxisX})
	require.Error(t, err)
	require.NotErrorIs(t, err, errs.ErrDegenerateInput)
}

func TestFitLine_PerfectLine(t *testing.T) {
	ds := dataset.New([]dataset.Observation{{ID: "a", X: 0, Y: 1}, {ID: "b", X: 1, Y: 3}, {ID: "c", X: 2, Y: 5}})
	fit, err := FitLine(ds, RolesFor(format.OrientationNormal))
	require.NoError(t, err)
	require.InDelta(t, 2.0, fit.Slope, tolerance)
	require.InDelta(t, 1.0, fit.Intercept, tolerance)
	require.InDelta(t, 1.0, fit.RSquared, tolerance)
	require.InDelta(t, 0.0, fit.RMSE, tolerance)
	require.InDelta(t, 7.0, fit.Predict(3), tolerance)
}

func TestFit_Formula(t *testing.T) {
	negZero := math.Copysign(0, -1)
	normal := RolesFor(format.OrientationNormal)

	tests := []struct {
		name string
		fit  Fit
		want string
	}{
		{"positive slope", Fit{Intercept: -0.58, Slope: 1.6, Roles: normal}, "y = -0.5800 + 1.6000*x"},
		{"negative slope", Fit{Intercept: 2, Slope: -0.25, Roles: normal}, "y = 2.0000 - 0.2500*x"},
		{"negative zero slope", Fit{Intercept: 2, Slope: negZero, Roles: normal}, "y = 2.0000 + 0.0000*x"},
		{"negative zero intercept", Fit{Intercept: negZero, Slope: 1, Roles: normal}, "y = 0.0000 + 1.0000*x"},
		{"swapped", Fit{Intercept: 1, Slope: 0.5, Roles: RolesFor(format.OrientationSwapped)}, "x = 1.0000 + 0.5000*y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.fit.Formula())
		})
	}
}
