package iqrfit

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/iqrfit/analysis"
	"github.com/arloliu/iqrfit/dataset"
	"github.com/arloliu/iqrfit/format"
)

const scenarioText = `# id x y
a 1 1.1
b 2 2.0
c 3 2.9
d 4 10.0
e 5 5.1
`

func TestAnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.txt")
	require.NoError(t, os.WriteFile(path, []byte(scenarioText), 0o600))

	out, ds, err := AnalyzeFile(context.Background(), path,
		analysis.WithIterate(true),
		analysis.WithLogger(slog.New(slog.DiscardHandler)),
	)
	require.NoError(t, err)
	require.Equal(t, 5, ds.Len())

	res := out.Result(format.OrientationNormal)
	require.True(t, res.Converged())
	require.Len(t, res.Rounds, 2)
	require.Equal(t, []string{"d"}, res.AllOutlierIDs)
}

func TestAnalyzeFile_Missing(t *testing.T) {
	_, _, err := AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnalyze_CopiesInput(t *testing.T) {
	obs := []dataset.Observation{{ID: "a", X: 1, Y: 1}, {ID: "b", X: 2, Y: 2}}
	out, err := Analyze(obs, analysis.WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)

	obs[0].Y = 100
	require.InDelta(t, 1.0, out.Results[0].FinalFit.Slope, 1e-12)
	require.Equal(t, 1.0, out.Results[0].Rounds[0].Remaining.At(0).Y)
}
