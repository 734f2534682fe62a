package report

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/arloliu/iqrfit/analysis"
	"github.com/arloliu/iqrfit/dataset"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

var (
	inlierColor  = color.Black
	outlierColor = color.RGBA{R: 220, A: 255}
	fitColor     = color.RGBA{B: 160, A: 255}
)

// PlotFileName returns the file name of the plot of round index.
func PlotFileName(res *analysis.Result, index int) string {
	return fmt.Sprintf("%s_round%d.png", res.Orientation, index)
}

// PlotRounds writes one PNG per round of res into dir and returns the paths
// written. input must be the dataset the analysis started from.
func PlotRounds(dir string, input dataset.Dataset, res *analysis.Result) ([]string, error) {
	paths := make([]string, 0, len(res.Rounds))
	current := input
	for _, r := range res.Rounds {
		path := filepath.Join(dir, PlotFileName(res, r.Index))
		if err := writePlot(path, current, r); err != nil {
			return paths, err
		}
		paths = append(paths, path)
		current = r.Remaining
	}

	return paths, nil
}

func writePlot(path string, input dataset.Dataset, r analysis.Round) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderRound(f, input, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("plot %s: %w", path, err)
	}

	return f.Close()
}

// RenderRound draws the observations of one round as a PNG: inliers in
// black, outliers in red and the fitted line dashed.
func RenderRound(w io.Writer, input dataset.Dataset, r analysis.Round) error {
	roles := r.Fit.Roles
	indep := input.Values(roles.Independent)
	dep := input.Values(roles.Dependent)
	if len(indep) == 0 {
		return fmt.Errorf("round %d has no observations", r.Index)
	}

	isOutlier := make([]bool, len(indep))
	for _, o := range r.Outliers {
		isOutlier[o.Index] = true
	}

	var inliers, outliers plotter.XYs
	for i := range indep {
		pt := plotter.XY{X: indep[i], Y: dep[i]}
		if isOutlier[i] {
			outliers = append(outliers, pt)
		} else {
			inliers = append(inliers, pt)
		}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("round %d: %s", r.Index, r.Fit.Formula())
	p.X.Label.Text = roles.Independent.String()
	p.Y.Label.Text = roles.Dependent.String()
	p.Add(plotter.NewGrid())

	for _, set := range []struct {
		name  string
		pts   plotter.XYs
		color color.Color
	}{
		{"inliers", inliers, inlierColor},
		{"outliers", outliers, outlierColor},
	} {
		if len(set.pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(set.pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = set.color
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(set.name, s)
	}

	fit := r.Fit
	line := plotter.NewFunction(fit.Predict)
	line.XMin, line.XMax = floats.Min(indep), floats.Max(indep)
	line.Color = fitColor
	line.Width = vg.Points(1)
	line.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(line)
	p.Legend.Add("fit", line)

	wt, err := p.WriterTo(plotWidth, plotHeight, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)

	return err
}
