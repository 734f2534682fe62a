package analysis

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/iqrfit/dataset"
)

// Run analyses ds in every orientation selected by opts.
//
// Orientation failures are reported in the corresponding Result.Err and in
// Outcome.Err; the returned error is non-nil only for invalid options or a
// cancelled context.
func Run(ctx context.Context, ds dataset.Dataset, opts ...Option) (*Outcome, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	if dups := ds.DuplicateIDs(); len(dups) > 0 {
		cfg.log().Warn("duplicate observation ids; outliers are removed by position", slog.Any("ids", dups))
	}

	orientations := cfg.Orientations()
	results := make([]*Result, len(orientations))

	if cfg.Sequential {
		for i, o := range orientations {
			res, err := NewController(ds, o, cfg).Run(ctx)
			if res == nil {
				return nil, err
			}
			results[i] = res
		}
	} else {
		// each goroutine owns its controller and writes only its own slot
		g, gctx := errgroup.WithContext(ctx)
		for i, o := range orientations {
			g.Go(func() error {
				res, err := NewController(ds, o, cfg).Run(gctx)
				if res == nil {
					return err
				}
				results[i] = res

				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return &Outcome{
		Config:      cfg,
		Size:        ds.Len(),
		Fingerprint: ds.Fingerprint(),
		Results:     results,
	}, nil
}
