package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arloliu/iqrfit"
	"github.com/arloliu/iqrfit/analysis"
	"github.com/arloliu/iqrfit/dataset"
	"github.com/arloliu/iqrfit/internal/logging"
	"github.com/arloliu/iqrfit/report"
)

const (
	summaryFile = "summary.txt"
	archiveFile = "outcome.json"
)

type analyzeOptions struct {
	configPath string
	sequential bool
	cfg        Config
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{cfg: defaultConfig()}

	cmd := &cobra.Command{
		Use:   "analyze [input]",
		Short: "Fit a line and remove IQR outliers",
		Long: `Analyze reads whitespace separated "id x y" records, fits a least-squares
line, and classifies as outliers the points whose residuals fall strictly
outside Q1 - 1.5*IQR and Q3 + 1.5*IQR.

Input files ending in .zst, .s2, .lz4 or .gz are decompressed on the fly.

Examples:
  iqrfit analyze data.txt                         # one round, y on x
  iqrfit analyze data.txt --iterate --swap-axes   # repeat until converged, both orientations
  iqrfit analyze -c iqrfit.yaml --plots=no        # settings from a file, flags override`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	f.StringVar(&opts.cfg.Input, "input", "", "Input file (also accepted as the positional argument)")
	f.StringVarP(&opts.cfg.OutputDir, "output-dir", "o", opts.cfg.OutputDir, "Directory for the summary, archive and plots")
	yesNoFlag(f, &opts.cfg.Iterate, "iterate", "Repeat rounds until no outliers remain")
	yesNoFlag(f, &opts.cfg.SwapAxes, "swap-axes", "Also analyse x regressed on y")
	yesNoFlag(f, &opts.cfg.Plots, "plots", "Write a PNG plot per round")
	yesNoFlag(f, &opts.cfg.Summary, "summary", "Write "+summaryFile)
	yesNoFlag(f, &opts.cfg.Archive, "archive", "Write a JSON archive of the outcome")
	f.StringVar(&opts.cfg.Compression, "compression", opts.cfg.Compression, "Archive compression: none, zstd, s2, lz4 or gzip")
	f.StringVar(&opts.cfg.Log.Level, "log-level", opts.cfg.Log.Level, "Log level: debug, info, warn or error")
	f.StringVar(&opts.cfg.Log.Format, "log-format", opts.cfg.Log.Format, "Log format: text or json")
	f.BoolVar(&opts.sequential, "sequential", false, "Run the orientations one after the other")

	return cmd
}

func yesNoFlag(f *pflag.FlagSet, v *YesNo, name, usage string) {
	f.Var(v, name, usage)
	f.Lookup(name).NoOptDefVal = "yes"
}

// resolve merges the config file under the flags that were set explicitly.
func (o *analyzeOptions) resolve(flags *pflag.FlagSet, args []string) (Config, error) {
	if len(args) == 1 {
		if flags.Changed("input") {
			return Config{}, errors.New("input given both as argument and --input")
		}
		o.cfg.Input = args[0]
		if err := flags.Set("input", args[0]); err != nil {
			return Config{}, err
		}
	}

	if o.configPath == "" {
		return o.cfg, o.cfg.validate()
	}

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return Config{}, err
	}

	overrides := map[string]func(){
		"input":       func() { cfg.Input = o.cfg.Input },
		"output-dir":  func() { cfg.OutputDir = o.cfg.OutputDir },
		"iterate":     func() { cfg.Iterate = o.cfg.Iterate },
		"swap-axes":   func() { cfg.SwapAxes = o.cfg.SwapAxes },
		"plots":       func() { cfg.Plots = o.cfg.Plots },
		"summary":     func() { cfg.Summary = o.cfg.Summary },
		"archive":     func() { cfg.Archive = o.cfg.Archive },
		"compression": func() { cfg.Compression = o.cfg.Compression },
		"log-level":   func() { cfg.Log.Level = o.cfg.Log.Level },
		"log-format":  func() { cfg.Log.Format = o.cfg.Log.Format },
	}
	flags.Visit(func(fl *pflag.Flag) {
		if apply, ok := overrides[fl.Name]; ok {
			apply()
		}
	})

	return cfg, cfg.validate()
}

func (o *analyzeOptions) run(cmd *cobra.Command, args []string) error {
	cfg, err := o.resolve(cmd.Flags(), args)
	if err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	logging.Init(level, cfg.Log.Format, cmd.ErrOrStderr())
	log := logging.New("cli")

	analysisOpts := []analysis.Option{
		analysis.WithIterate(bool(cfg.Iterate)),
		analysis.WithSwapAxes(bool(cfg.SwapAxes)),
	}
	if o.sequential {
		analysisOpts = append(analysisOpts, analysis.WithSequential())
	}

	out, ds, err := iqrfit.AnalyzeFile(cmd.Context(), cfg.Input, analysisOpts...)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	meta := report.NewMeta(cfg.Input)
	log.Info("analysis complete", slog.String("run", meta.RunID.String()), slog.Int("observations", ds.Len()))

	if err := report.WriteSummary(cmd.OutOrStdout(), meta, out); err != nil {
		return err
	}
	if cfg.Summary {
		path := filepath.Join(cfg.OutputDir, summaryFile)
		if err := writeFile(path, func(w io.Writer) error { return report.WriteSummary(w, meta, out) }); err != nil {
			return err
		}
		log.Info("summary written", slog.String("path", path))
	}
	if cfg.Archive {
		if err := writeArchive(log, cfg, meta, out); err != nil {
			return err
		}
	}
	if cfg.Plots {
		if err := writePlots(log, cfg.OutputDir, ds, out); err != nil {
			return err
		}
	}

	if err := out.Err(); err != nil {
		return fmt.Errorf("analysis incomplete: %w", err)
	}

	return nil
}

func writeArchive(log *slog.Logger, cfg Config, meta report.Meta, out *analysis.Outcome) error {
	ct, err := cfg.compression()
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.OutputDir, archiveFile+ct.Extension())
	err = writeFile(path, func(w io.Writer) error {
		stats, err := report.WriteArchive(w, report.NewArchive(meta, out), ct)
		if err != nil {
			return err
		}
		log.Info("archive written",
			slog.String("path", path),
			slog.String("compression", ct.String()),
			slog.Int64("bytes", stats.CompressedSize),
			slog.Float64("ratio", stats.Ratio()),
		)

		return nil
	})

	return err
}

func writePlots(log *slog.Logger, dir string, ds dataset.Dataset, out *analysis.Outcome) error {
	for _, res := range out.Results {
		paths, err := report.PlotRounds(dir, ds, res)
		if err != nil {
			return err
		}
		log.Info("plots written", slog.String("orientation", res.Orientation.String()), slog.Int("count", len(paths)))
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}
