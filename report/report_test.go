package report

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/iqrfit/analysis"
	"github.com/arloliu/iqrfit/dataset"
	"github.com/arloliu/iqrfit/errs"
	"github.com/arloliu/iqrfit/format"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func scenario() dataset.Dataset {
	return dataset.New([]dataset.Observation{
		{ID: "a", X: 1, Y: 1.1},
		{ID: "b", X: 2, Y: 2.0},
		{ID: "c", X: 3, Y: 2.9},
		{ID: "d", X: 4, Y: 10.0},
		{ID: "e", X: 5, Y: 5.1},
	})
}

func fixedMeta() Meta {
	return Meta{
		RunID:   uuid.MustParse("0b7c2f3e-4d5a-4c6b-8e9f-1a2b3c4d5e6f"),
		Source:  "scenario.txt",
		Created: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
}

func analyse(t *testing.T, ds dataset.Dataset, opts ...analysis.Option) *analysis.Outcome {
	t.Helper()
	opts = append(opts, analysis.WithLogger(slog.New(slog.DiscardHandler)))
	out, err := analysis.Run(context.Background(), ds, opts...)
	require.NoError(t, err)

	return out
}

func TestWriteSummary_Golden(t *testing.T) {
	out := analyse(t, scenario(), analysis.WithIterate(true), analysis.WithSwapAxes(true))

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, fixedMeta(), out))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "summary_scenario", buf.Bytes())
}

func TestSummaryHeader(t *testing.T) {
	require.Equal(t, "ROUND  1st QUARTILE  3rd QUARTILE         IQR  OUTLIERS", summaryHeader)
}

func TestWriteSummary_Failure(t *testing.T) {
	ds := dataset.New([]dataset.Observation{
		{ID: "a", X: 1, Y: 1},
		{ID: "b", X: 1, Y: 2},
	})
	out := analyse(t, ds)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, fixedMeta(), out))
	text := buf.String()
	require.Contains(t, text, "normal orientation (y on x)")
	require.Contains(t, text, "stop:      failed after 0 rounds: normal orientation, round 1: degenerate input")
	require.NotContains(t, text, "final fit")
	require.NotContains(t, text, "all outliers")
}

func TestNewMeta(t *testing.T) {
	a, b := NewMeta("in.txt"), NewMeta("in.txt")
	require.NotEqual(t, a.RunID, b.RunID)
	require.Equal(t, "in.txt", a.Source)
	require.Equal(t, time.UTC, a.Created.Location())
}

func TestArchive_RoundTrip(t *testing.T) {
	out := analyse(t, scenario(), analysis.WithIterate(true), analysis.WithSwapAxes(true))
	byObservations := cmp.Comparer(func(a, b dataset.Dataset) bool {
		return cmp.Equal(a.Observations(), b.Observations())
	})

	codecs := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionGzip,
	}
	for _, ct := range codecs {
		t.Run(ct.String(), func(t *testing.T) {
			var buf bytes.Buffer
			stats, err := WriteArchive(&buf, NewArchive(fixedMeta(), out), ct)
			require.NoError(t, err)
			require.Equal(t, ct, stats.Algorithm)
			require.Equal(t, int64(buf.Len()), stats.CompressedSize)

			got, err := ReadArchive(&buf, ct)
			require.NoError(t, err)
			require.Equal(t, ArchiveVersion, got.Version)
			require.Equal(t, fixedMeta().RunID, got.RunID)
			require.True(t, fixedMeta().Created.Equal(got.Created))
			require.Equal(t, "scenario.txt", got.Source)
			require.Equal(t, out.Size, got.Outcome.Size)
			require.Equal(t, out.Fingerprint, got.Outcome.Fingerprint)
			require.Equal(t, out.Config.Iterate, got.Outcome.Config.Iterate)
			require.Equal(t, out.Config.SwapAxes, got.Outcome.Config.SwapAxes)
			require.Empty(t, got.Errors)
			if diff := cmp.Diff(out.Results, got.Outcome.Results, byObservations); diff != "" {
				t.Errorf("results differ after round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArchive_Errors(t *testing.T) {
	ds := dataset.New([]dataset.Observation{
		{ID: "a", X: 1, Y: 1},
		{ID: "b", X: 1, Y: 2},
	})
	out := analyse(t, ds, analysis.WithSwapAxes(true))

	a := NewArchive(fixedMeta(), out)
	require.Contains(t, a.Errors, "normal")
	require.NotContains(t, a.Errors, "swapped")

	var buf bytes.Buffer
	_, err := WriteArchive(&buf, a, format.CompressionNone)
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"stop_reason": "failed"`)

	got, err := ReadArchive(&buf, format.CompressionNone)
	require.NoError(t, err)
	require.Equal(t, a.Errors, got.Errors)
	require.Equal(t, format.StopFailed, got.Outcome.Result(format.OrientationNormal).StopReason)
}

func TestReadArchive_Invalid(t *testing.T) {
	_, err := ReadArchive(bytes.NewReader([]byte("{}")), format.CompressionType(0x7f))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = ReadArchive(bytes.NewReader([]byte("not json")), format.CompressionNone)
	require.ErrorContains(t, err, "decode archive")

	_, err = ReadArchive(bytes.NewReader([]byte(`{"version": 9}`)), format.CompressionNone)
	require.ErrorContains(t, err, "unsupported archive version 9")

	_, err = ReadArchive(bytes.NewReader([]byte("garbage")), format.CompressionZstd)
	require.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteArchive_WriterError(t *testing.T) {
	out := analyse(t, scenario())
	_, err := WriteArchive(failingWriter{}, NewArchive(fixedMeta(), out), format.CompressionNone)
	require.ErrorContains(t, err, "disk full")
}

func TestRenderRound(t *testing.T) {
	ds := scenario()
	out := analyse(t, ds, analysis.WithIterate(true))
	res := out.Results[0]

	var buf bytes.Buffer
	require.NoError(t, RenderRound(&buf, ds, res.Rounds[0]))
	require.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	err := RenderRound(&buf, dataset.New(nil), analysis.Round{Index: 3})
	require.ErrorContains(t, err, "round 3 has no observations")
}

func TestPlotRounds(t *testing.T) {
	ds := scenario()
	out := analyse(t, ds, analysis.WithIterate(true), analysis.WithSwapAxes(true))
	dir := t.TempDir()

	var all []string
	for _, res := range out.Results {
		paths, err := PlotRounds(dir, ds, res)
		require.NoError(t, err)
		require.Len(t, paths, len(res.Rounds))
		all = append(all, paths...)
	}

	want := []string{"normal_round1.png", "normal_round2.png", "swapped_round1.png"}
	for i, name := range want {
		require.Equal(t, filepath.Join(dir, name), all[i])
		data, err := os.ReadFile(all[i])
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(data, pngMagic), name)
	}
}

func TestPlotRounds_MissingDir(t *testing.T) {
	out := analyse(t, scenario())
	_, err := PlotRounds(filepath.Join(t.TempDir(), "missing"), scenario(), out.Results[0])
	require.Error(t, err)
}
