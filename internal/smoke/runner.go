package smoke

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/benchboard/internal/domain/elo"
	"github.com/okian/benchboard/internal/domain/types"
	"github.com/okian/benchboard/pkg/logger"
)

// Run checks a running server: health first, then every leaderboard of the
// configured window. Invariant violations land in the report; transport
// failures are returned as errors.
func Run(ctx context.Context, cfg *Config) (*Report, error) {
	log := logger.Named("smoke")
	start := time.Now()
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)
	report := &Report{}

	log.Info(ctx, "starting leaderboard verification",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int64("start", cfg.Start),
		logger.Int64("end", cfg.End),
	)

	if err := client.Get(ctx, "/healthz", cfg.Start, cfg.End, nil); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	var accuracy []map[string]any
	if err := client.Get(ctx, "/leaderboard/accuracy", cfg.Start, cfg.End, &accuracy); err != nil {
		return nil, err
	}
	rows, err := RowsFromJSON(accuracy, types.FieldPass1)
	if err != nil {
		return nil, fmt.Errorf("accuracy leaderboard: %w", err)
	}
	report.AccuracyRows = len(rows)
	report.Violations = append(report.Violations, CheckRanked("accuracy", rows)...)
	logTop(ctx, log, "accuracy", rows, cfg.Verbose)

	var eloRows []map[string]any
	if err := client.Get(ctx, "/leaderboard/elo", cfg.Start, cfg.End, &eloRows); err != nil {
		return nil, err
	}
	rows, err = RowsFromJSON(eloRows, types.FieldELO)
	if err != nil {
		return nil, fmt.Errorf("elo leaderboard: %w", err)
	}
	report.EloRows = len(rows)
	report.Violations = append(report.Violations, CheckRanked("elo", rows)...)
	logTop(ctx, log, "elo", rows, cfg.Verbose)

	var result elo.Result
	if err := client.Get(ctx, "/winrates", cfg.Start, cfg.End, &result); err != nil {
		return nil, err
	}
	report.Edges = len(result.Winrates)
	report.Ratings = len(result.Ratings)
	report.Violations = append(report.Violations, CheckWinrates(result.Winrates)...)
	report.Violations = append(report.Violations, CheckRatings(result.Ratings)...)

	report.Duration = time.Since(start)
	log.Info(ctx, "verification finished",
		logger.Int("accuracyRows", report.AccuracyRows),
		logger.Int("eloRows", report.EloRows),
		logger.Int("edges", report.Edges),
		logger.Int("violations", len(report.Violations)),
		logger.Duration("duration", report.Duration),
	)
	return report, nil
}

func logTop(ctx context.Context, log logger.Logger, board string, rows []Row, verbose bool) {
	if !verbose {
		return
	}
	const topN = 10
	for i, r := range rows {
		if i == topN {
			break
		}
		log.Info(ctx, "top row",
			logger.String("board", board),
			logger.Int("position", i+1),
			logger.String("model", r.Model),
			logger.Float64("score", r.Score),
			logger.Bool("contaminated", r.Contaminated),
		)
	}
}
