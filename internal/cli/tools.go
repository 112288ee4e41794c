package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/benchboard/internal/adapters/repository"
	"github.com/okian/benchboard/internal/smoke"
)

func newGenerateCmd(o *options) *cobra.Command {
	cfg := smoke.GenerateConfig{Start: smoke.DefaultStart, Step: smoke.DefaultStep}
	var out string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic dataset",
		Long: "Generate a deterministic dataset where every model answers every item.\n" +
			"The output format follows the --out extension; without --out JSON goes to stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg.Topics = o.cfg.EloTopics
			ds, err := smoke.Generate(ctx, cfg)
			if err != nil {
				return err
			}
			if out == "" {
				return repository.Encode(cmd.OutOrStdout(), ds, repository.FormatJSON)
			}

			format, err := repository.FormatFromPath(out)
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			w := bufio.NewWriter(f)
			if err := repository.Encode(w, ds, format); err != nil {
				_ = f.Close()
				return err
			}
			if err := w.Flush(); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), printer.Sprintf("wrote %d records for %d models to %s",
				len(ds.Records), len(ds.Models), out))
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&cfg.Models, "models", smoke.DefaultModels, "number of models")
	f.IntVar(&cfg.Items, "items", smoke.DefaultItems, "number of items per model")
	f.Int64Var(&cfg.Seed, "seed", 42, "generator seed")
	f.StringVar(&out, "out", "", "output file (.json, .yaml or .yml)")
	return cmd
}

func newVerifyCmd(o *options) *cobra.Command {
	cfg := smoke.Config{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a running server's leaderboards against the ranking invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
			cfg.Start, cfg.End = o.start, o.end
			report, err := smoke.Run(cmd.Context(), &cfg)
			if err != nil {
				return err
			}
			if err := writeReport(cmd.OutOrStdout(), o.out, report); err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("%w: %d found", ErrViolations, len(report.Violations))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the server")
	f.DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "HTTP request timeout")
	f.BoolVar(&cfg.Verbose, "verbose", false, "log the top rows of each leaderboard")
	return cmd
}

func writeReport(w io.Writer, format Format, r *smoke.Report) error {
	t := &table{header: []string{"Check", "Value"}}
	t.add(false, "accuracy rows", countCell(r.AccuracyRows))
	t.add(false, "elo rows", countCell(r.EloRows))
	t.add(false, "winrate edges", countCell(r.Edges))
	t.add(false, "ratings", countCell(r.Ratings))
	t.add(false, "duration", r.Duration.Round(time.Millisecond).String())
	for _, v := range r.Violations {
		t.add(false, "violation", v)
	}
	return render(w, format, r, t)
}
