// Package elo rates models from head-to-head matches on shared items.
package elo

import (
	"math"
	"sort"

	"github.com/okian/benchboard/internal/domain/model"
	"github.com/okian/benchboard/internal/domain/pairwise"
	"github.com/okian/benchboard/internal/domain/prng"
	"github.com/okian/benchboard/internal/domain/score"
)

// Engine computes ELO ratings. It holds configuration only; every call to
// Rate builds its own tables, so an Engine may be shared.
type Engine struct {
	k      float64
	topics []string
	seed   int64
}

// TopicRating is a model's rating within one topic. Elo is absent when the
// model played no match there.
type TopicRating struct {
	Topic   string         `json:"topic"`
	Elo     score.Optional `json:"elo"`
	Matches int            `json:"matches"`
}

// Rating is a model's final overall rating.
type Rating struct {
	Model   string        `json:"model"`
	Elo     float64       `json:"elo"`
	Matches int           `json:"matches"`
	Topics  []TopicRating `json:"topics,omitempty"`
}

// Topic returns the rating for topic, if tracked.
func (r Rating) Topic(topic string) (TopicRating, bool) {
	for _, t := range r.Topics {
		if t.Topic == topic {
			return t, true
		}
	}
	return TopicRating{}, false
}

// NewEngine returns an Engine with K=32, seed 42 and no topics unless
// overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{k: DefaultKFactor, seed: DefaultSeed}
	for _, o := range opts {
		o(e)
	}
	return e
}

// KFactor returns the configured update step.
func (e *Engine) KFactor() float64 { return e.k }

// Topics returns the tracked topics.
func (e *Engine) Topics() []string { return append([]string(nil), e.topics...) }

// Expected is the probability that a player rated ra beats one rated rb.
func Expected(ra, rb float64) float64 {
	return 1 / (1 + math.Pow(10, (rb-ra)/400))
}

// Delta returns the rating changes of one match, where actualA is A's score
// (1, 0.5 or 0). The two changes always sum to zero.
func Delta(ra, rb, actualA, k float64) (deltaA, deltaB float64) {
	expectedA := Expected(ra, rb)
	expectedB := 1 - expectedA
	return k * (actualA - expectedA), k * ((1 - actualA) - expectedB)
}

// table is one independent rating pool.
type table struct {
	ratings map[string]float64
	matches map[string]int
}

func newTable(models []string) *table {
	t := &table{
		ratings: make(map[string]float64, len(models)),
		matches: make(map[string]int, len(models)),
	}
	for _, m := range models {
		t.ratings[m] = DefaultRating
	}
	return t
}

func (t *table) play(a, b string, actualA, k float64) {
	da, db := Delta(t.ratings[a], t.ratings[b], actualA, k)
	t.ratings[a] += da
	t.ratings[b] += db
	t.matches[a]++
	t.matches[b]++
}

// Rate plays every pair inside every comparable item group and returns the
// models sorted by rounded rating, highest first. Group order is shuffled
// by a stable sort whose comparator draws from a seeded generator, so the
// result depends only on the input and the seed.
func (e *Engine) Rate(records []model.PerformanceRecord) []Rating {
	models := pairwise.Models(records)
	overall := newTable(models)
	byTopic := make(map[string]*table, len(e.topics))
	for _, topic := range e.topics {
		byTopic[topic] = newTable(models)
	}

	groups := pairwise.Comparable(pairwise.GroupByItem(records))
	e.shuffle(groups)

	for _, g := range groups {
		topicTable := byTopic[g.Topic()]
		for i := 0; i < len(g.Records); i++ {
			for j := i + 1; j < len(g.Records); j++ {
				a, b := g.Records[i], g.Records[j]
				actualA, _ := pairwise.Outcome(a.Reward, b.Reward)
				overall.play(a.Model, b.Model, actualA, e.k)
				if topicTable != nil {
					topicTable.play(a.Model, b.Model, actualA, e.k)
				}
			}
		}
	}

	out := make([]Rating, 0, len(models))
	for _, m := range models {
		r := Rating{
			Model:   m,
			Elo:     score.Round1(overall.ratings[m]),
			Matches: overall.matches[m],
		}
		for _, topic := range e.topics {
			t := byTopic[topic]
			tr := TopicRating{Topic: topic, Matches: t.matches[m]}
			if tr.Matches > 0 {
				tr.Elo = score.Some(score.Round1(t.ratings[m]))
			}
			r.Topics = append(r.Topics, tr)
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Elo > out[j].Elo
	})
	return out
}

func (e *Engine) shuffle(groups []pairwise.Group) {
	rng := prng.New(e.seed)
	sort.SliceStable(groups, func(_, _ int) bool {
		return rng.Next()-0.5 < 0
	})
}
