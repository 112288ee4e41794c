// Package cli implements the leaderboard command line tool: offline
// leaderboards from a dataset file, synthetic datasets, and checks against
// a running server.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	service "github.com/okian/benchboard/internal/app"
	"github.com/okian/benchboard/internal/config"
	"github.com/okian/benchboard/internal/domain/window"
	"github.com/okian/benchboard/pkg/logger"
)

// options holds the persistent flags and what they resolve to.
type options struct {
	configPath string
	dataset    string
	start      int64
	end        int64
	format     string
	logLevel   string

	cfg *config.Config
	out Format
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "leaderboard",
		Short:         "Compute benchmark leaderboards from a performance dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "config file (default $"+config.EnvConfig+")")
	pf.StringVar(&o.dataset, "dataset", "", "dataset file, overrides dataset_path")
	pf.Int64Var(&o.start, "start", window.MinTimestamp, "window start")
	pf.Int64Var(&o.end, "end", window.MaxTimestamp, "window end")
	pf.StringVar(&o.format, "format", string(FormatTable), "output format (table, markdown, json)")
	pf.StringVar(&o.logLevel, "log-level", "", "log level, overrides log_level")

	root.AddCommand(
		newAccuracyCmd(o),
		newEloCmd(o),
		newWinratesCmd(o),
		newMarksCmd(o),
		newColumnsCmd(o),
		newGenerateCmd(o),
		newVerifyCmd(o),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		os.Exit(1)
	}
}

func (o *options) init(cmd *cobra.Command) error {
	ctx := cmd.Context()

	var err error
	if o.configPath != "" {
		o.cfg, err = config.LoadFile(ctx, o.configPath)
	} else {
		o.cfg, err = config.Load(ctx)
	}
	if err != nil {
		return err
	}
	if o.dataset != "" {
		o.cfg.DatasetPath = o.dataset
	}

	level := o.cfg.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	if err := logger.Init(
		logger.WithWriter(cmd.ErrOrStderr()),
		logger.WithFormat(o.cfg.LogFormat),
		logger.WithLevel(level),
	); err != nil {
		return err
	}

	if o.out, err = ParseFormat(o.format); err != nil {
		return err
	}
	logger.Get().Debug(ctx, "leaderboard run",
		logger.String("run_id", uuid.NewString()),
		logger.String("command", cmd.Name()),
		logger.String("dataset", o.cfg.DatasetPath),
	)
	return nil
}

// service starts a one-shot service over the configured dataset.
func (o *options) service(ctx context.Context) (*service.Service, error) {
	if o.cfg.DatasetPath == "" {
		return nil, fmt.Errorf("%w: pass --dataset or set dataset_path", ErrNoDataset)
	}
	svc := service.New(
		service.WithLogger(logger.Get()),
		service.WithDatasetPath(o.cfg.DatasetPath),
		service.WithKFactor(o.cfg.EloKFactor),
		service.WithTopics(o.cfg.EloTopics...),
		service.WithReferenceDate(o.cfg.ReferenceDateMS),
		service.WithCacheSize(0),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func (o *options) query(k float64) service.Query {
	return service.Query{Start: o.start, End: o.end, KFactor: k}
}
