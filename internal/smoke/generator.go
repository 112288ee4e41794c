package smoke

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/okian/benchboard/internal/adapters/repository"
	"github.com/okian/benchboard/internal/domain/model"
	"github.com/okian/benchboard/internal/domain/prng"
	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/pkg/logger"
)

// Generator defaults.
const (
	DefaultModels = 8
	DefaultItems  = 200
	DefaultStart  = 1693526400000 // 2023-09-01
	DefaultStep   = int64(6 * time.Hour / time.Millisecond)
)

// Difficulty penalties applied to a model's skill.
var penalties = map[model.Difficulty]float64{
	model.DifficultyEasy:   0,
	model.DifficultyMedium: 0.25,
	model.DifficultyHard:   0.5,
}

var difficulties = []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}

// Generate builds a dataset where every model answers every item once.
// Model skill rises with its index and release dates are spread across
// the item timeline, so later models are contaminated on early windows.
func Generate(ctx context.Context, cfg GenerateConfig) (*repository.Dataset, error) {
	if cfg.Models < 2 {
		return nil, fmt.Errorf("need at least 2 models, got %d", cfg.Models)
	}
	if cfg.Items < 1 {
		return nil, fmt.Errorf("need at least 1 item, got %d", cfg.Items)
	}
	if cfg.Step <= 0 {
		cfg.Step = DefaultStep
	}
	if len(cfg.Topics) == 0 {
		cfg.Topics = []string{"Politics", "Entertainment"}
	}

	rng := prng.New(cfg.Seed)
	span := cfg.Step * int64(cfg.Items)

	ds := &repository.Dataset{
		Models:   make([]model.ModelDescriptor, 0, cfg.Models),
		Records:  make([]model.PerformanceRecord, 0, cfg.Models*cfg.Items),
		Source:   "synthetic:" + strconv.FormatInt(cfg.Seed, 10),
		LoadedAt: time.Now(),
	}
	skills := make([]float64, cfg.Models)
	for m := 0; m < cfg.Models; m++ {
		name := "model-" + strconv.Itoa(m+1)
		skills[m] = 0.3 + 0.6*float64(m)/float64(cfg.Models-1)
		ds.Models = append(ds.Models, model.ModelDescriptor{
			ModelRepr:   name,
			DisplayName: "Model " + strconv.Itoa(m+1),
			ReleaseDate: cfg.Start + span*int64(m)/int64(cfg.Models),
			Link:        "https://example.com/models/" + name,
		})
	}

	for i := 0; i < cfg.Items; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item := "item-" + strconv.Itoa(i+1)
		ts := cfg.Start + cfg.Step*int64(i)
		diff := difficulties[i%len(difficulties)]
		topic := cfg.Topics[i%len(cfg.Topics)]
		for m, desc := range ds.Models {
			var pass float64
			if rng.Next() < skills[m]-penalties[diff] {
				pass = 100
			}
			ds.Records = append(ds.Records, model.PerformanceRecord{
				Model:      desc.ModelRepr,
				ItemID:     item,
				Timestamp:  float64(ts),
				Reward:     pass / 100,
				Pass1:      score.Some(pass),
				Difficulty: diff,
				Platform:   "synthetic",
				Topic:      topic,
			})
		}
	}

	ds.Stats = repository.LoadStats{Records: len(ds.Records), Models: len(ds.Models)}
	logger.Get().Info(ctx, "generated synthetic dataset",
		logger.Int("models", len(ds.Models)),
		logger.Int("records", len(ds.Records)),
		logger.Int64("seed", cfg.Seed),
	)
	return ds, nil
}
