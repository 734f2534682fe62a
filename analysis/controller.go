package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arloliu/iqrfit/dataset"
	"github.com/arloliu/iqrfit/errs"
	"github.com/arloliu/iqrfit/format"
	"github.com/arloliu/iqrfit/iqr"
	"github.com/arloliu/iqrfit/regression"
)

type state uint8

const (
	stateFitting state = iota
	stateClassifying
	stateRemoving
	stateTerminal
)

// Controller runs the round loop for a single orientation.
//
// A Controller owns its working dataset and is not safe for concurrent use;
// independent controllers may run concurrently over the same input dataset.
type Controller struct {
	orientation format.Orientation
	roles       regression.AxisRoles
	iterate     bool
	input       dataset.Dataset
	log         *slog.Logger

	classify func([]regression.Residual) (iqr.Classification, error)
}

// NewController creates a controller for one orientation of ds.
func NewController(ds dataset.Dataset, orientation format.Orientation, cfg Config) *Controller {
	return &Controller{
		orientation: orientation,
		roles:       regression.RolesFor(orientation),
		iterate:     cfg.Iterate,
		input:       ds,
		log:         cfg.log().With(slog.String("orientation", orientation.String())),
		classify:    iqr.Classify,
	}
}

// Run executes the rounds until a terminal state.
//
// The returned Result is nil only when ctx is cancelled. A fit or
// classification failure is returned both as the error and in Result.Err,
// with the rounds completed before it.
func (c *Controller) Run(ctx context.Context) (*Result, error) {
	res := &Result{Orientation: c.orientation}

	var (
		st      = stateFitting
		current = c.input
		fit     regression.Fit
		round   int
	)

	for st != stateTerminal {
		switch st {
		case stateFitting:
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%s orientation: %w", c.orientation, err)
			}

			f, err := regression.FitLine(current, c.roles)
			if err != nil {
				return res, c.fail(res, round+1, err)
			}
			fit = f
			st = stateClassifying

		case stateClassifying:
			round++
			residuals := fit.Residuals(current)
			cls, err := c.classify(residuals)
			if err != nil {
				return res, c.fail(res, round, err)
			}

			rec := Round{
				Index:      round,
				Fit:        fit,
				Summary:    cls.Summary,
				Residuals:  residuals,
				Outliers:   cls.Outliers,
				OutlierIDs: cls.OutlierIDs(),
				Fitted:     current.Len(),
				Remaining:  current.Without(cls.OutlierIndices()),
			}
			res.Rounds = append(res.Rounds, rec)
			res.FinalFit = fit
			res.AllOutlierIDs = append(res.AllOutlierIDs, rec.OutlierIDs...)

			c.log.Debug("round complete",
				slog.Int("round", round),
				slog.Int("fitted", rec.Fitted),
				slog.String("fit", fit.Formula()),
				slog.Float64("q1", cls.Summary.Q1),
				slog.Float64("q3", cls.Summary.Q3),
				slog.Any("outliers", rec.OutlierIDs),
			)

			switch {
			case len(rec.Outliers) == 0:
				res.StopReason = format.StopConverged
				st = stateTerminal
			case !c.iterate:
				res.StopReason = format.StopSingleRound
				st = stateTerminal
			default:
				st = stateRemoving
			}

		case stateRemoving:
			next := res.LastRound().Remaining
			if next.Len() < 2 {
				res.StopReason = format.StopExhausted
				res.Exhausted = &errs.InsufficientDataError{Round: round, Remaining: next.Len()}
				c.log.Warn("stopping: too few observations left", slog.Int("round", round), slog.Int("remaining", next.Len()))
				st = stateTerminal

				continue
			}
			current = next
			st = stateFitting
		}
	}

	c.log.Debug("analysis finished",
		slog.String("stop", res.StopReason.String()),
		slog.Int("rounds", len(res.Rounds)),
		slog.Int("outliers", len(res.AllOutlierIDs)),
		slog.String("fit", res.FinalFit.Formula()),
	)

	return res, nil
}

func (c *Controller) fail(res *Result, round int, err error) error {
	res.StopReason = format.StopFailed
	res.Err = &OrientationError{Orientation: c.orientation, Round: round, Err: err}
	c.log.Error("analysis aborted", slog.Int("round", round), slog.Any("error", err))

	return res.Err
}

// RunOrientation analyses a single orientation of ds.
func RunOrientation(ctx context.Context, ds dataset.Dataset, orientation format.Orientation, opts ...Option) (*Result, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return NewController(ds, orientation, cfg).Run(ctx)
}
