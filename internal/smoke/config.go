// Package smoke generates synthetic benchmark datasets and checks a running
// server's leaderboards against the ranking invariants.
package smoke

import "time"

// GenerateConfig shapes a synthetic dataset.
type GenerateConfig struct {
	Models int      // number of models
	Items  int      // number of benchmark items each model answers
	Seed   int64    // generator seed; equal seeds give equal datasets
	Start  int64    // timestamp of the first item, epoch ms
	Step   int64    // time between consecutive items, ms
	Topics []string // topics assigned to items round-robin
}

// Config holds configuration for a verification run.
type Config struct {
	BaseURL string        // base URL of the service
	Start   int64         // window start sent with every request
	End     int64         // window end sent with every request
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // log every top row
}

// Report summarizes a verification run.
type Report struct {
	AccuracyRows int           `json:"accuracy_rows"`
	EloRows      int           `json:"elo_rows"`
	Edges        int           `json:"edges"`
	Ratings      int           `json:"ratings"`
	Violations   []string      `json:"violations"`
	Duration     time.Duration `json:"duration"`
}

// OK reports whether no invariant was violated.
func (r *Report) OK() bool { return len(r.Violations) == 0 }
