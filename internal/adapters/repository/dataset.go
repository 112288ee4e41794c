package repository

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/okian/benchboard/internal/domain/model"
	"github.com/okian/benchboard/internal/domain/score"
)

var validate = validator.New()

// Dataset is an immutable view of the loaded records and model metadata.
type Dataset struct {
	Records  []model.PerformanceRecord
	Models   []model.ModelDescriptor
	Source   string
	LoadedAt time.Time
	Stats    LoadStats
}

// LoadStats summarizes one decode.
type LoadStats struct {
	Records        int `json:"records"`
	Models         int `json:"models"`
	SkippedRecords int `json:"skipped_records"`
	SkippedModels  int `json:"skipped_models"`
}

// Timestamps returns the distinct record timestamps, ascending. Fractional
// timestamps are floored; marks only need whole units.
func (d *Dataset) Timestamps() []int64 {
	seen := make(map[int64]struct{}, len(d.Records))
	out := make([]int64, 0, len(d.Records))
	for _, r := range d.Records {
		ts := int64(math.Floor(r.Timestamp))
		if _, ok := seen[ts]; ok {
			continue
		}
		seen[ts] = struct{}{}
		out = append(out, ts)
	}
	slices.Sort(out)
	return out
}

// document is the on-disk shape.
type document struct {
	Performances []wireRecord `json:"performances" yaml:"performances"`
	Models       []wireModel  `json:"models" yaml:"models"`
}

type wireRecord struct {
	Model      string   `json:"model" yaml:"model" validate:"required"`
	ID         any      `json:"id,omitempty" yaml:"id,omitempty"`
	ItemID     any      `json:"item_id,omitempty" yaml:"item_id,omitempty"`
	QuestionID any      `json:"question_id,omitempty" yaml:"question_id,omitempty"`
	Timestamp  any      `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Date       any      `json:"date,omitempty" yaml:"date,omitempty"`
	Reward     *float64 `json:"reward,omitempty" yaml:"reward,omitempty"`
	Pass1      *float64 `json:"pass@1,omitempty" yaml:"pass@1,omitempty"`
	ExecPass1  *float64 `json:"Pass@1,omitempty" yaml:"Pass@1,omitempty"`
	CotPass1   *float64 `json:"Pass@1-COT,omitempty" yaml:"Pass@1-COT,omitempty"`
	Difficulty string   `json:"difficulty,omitempty" yaml:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	Platform   string   `json:"platform,omitempty" yaml:"platform,omitempty"`
	Topic      string   `json:"topic,omitempty" yaml:"topic,omitempty"`
}

type wireModel struct {
	ModelRepr   string `json:"model_repr" yaml:"model_repr" validate:"required"`
	ReleaseDate any    `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	ModelName   string `json:"model_name,omitempty" yaml:"model_name,omitempty"`
	Link        string `json:"link,omitempty" yaml:"link,omitempty" validate:"omitempty,url"`
}

func (w wireRecord) toRecord() (model.PerformanceRecord, error) {
	if err := validate.Struct(w); err != nil {
		return model.PerformanceRecord{}, err
	}
	item, err := firstString(w.ID, w.ItemID, w.QuestionID)
	if err != nil {
		return model.PerformanceRecord{}, fmt.Errorf("item id: %w", err)
	}
	ts, err := firstInstant(w.Timestamp, w.Date)
	if err != nil {
		return model.PerformanceRecord{}, fmt.Errorf("timestamp: %w", err)
	}
	r := model.PerformanceRecord{
		Model:      w.Model,
		ItemID:     item,
		Timestamp:  ts,
		Pass1:      optional(w.Pass1),
		ExecPass1:  optional(w.ExecPass1),
		CotPass1:   optional(w.CotPass1),
		Difficulty: model.Difficulty(w.Difficulty),
		Platform:   w.Platform,
		Topic:      w.Topic,
	}
	if w.Reward != nil {
		r.Reward = *w.Reward
	}
	return r, nil
}

func (w wireModel) toDescriptor() (model.ModelDescriptor, error) {
	if err := validate.Struct(w); err != nil {
		return model.ModelDescriptor{}, err
	}
	at, err := firstInstant(w.ReleaseDate)
	if err != nil {
		return model.ModelDescriptor{}, fmt.Errorf("release_date: %w", err)
	}
	// Window bounds are whole units, so released >= start holds for the
	// floor exactly when it holds for the fractional instant.
	released := int64(math.Floor(at))
	return model.ModelDescriptor{
		ModelRepr:   w.ModelRepr,
		ReleaseDate: released,
		DisplayName: w.ModelName,
		Link:        w.Link,
	}, nil
}

func fromRecord(r model.PerformanceRecord) wireRecord {
	reward := r.Reward
	return wireRecord{
		Model:      r.Model,
		ItemID:     r.ItemID,
		Timestamp:  instant(r.Timestamp),
		Reward:     &reward,
		Pass1:      pointer(r.Pass1),
		ExecPass1:  pointer(r.ExecPass1),
		CotPass1:   pointer(r.CotPass1),
		Difficulty: string(r.Difficulty),
		Platform:   r.Platform,
		Topic:      r.Topic,
	}
}

func fromDescriptor(m model.ModelDescriptor) wireModel {
	w := wireModel{ModelRepr: m.ModelRepr, ModelName: m.DisplayName, Link: m.Link}
	if m.HasReleaseDate() {
		w.ReleaseDate = m.ReleaseDate
	}
	return w
}

// instant writes whole timestamps as integers so YAML output stays readable.
func instant(ts float64) any {
	if ts == math.Trunc(ts) && math.Abs(ts) < 1<<53 {
		return int64(ts)
	}
	return ts
}

func pointer(o score.Optional) *float64 {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}

func optional(v *float64) score.Optional {
	if v == nil || math.IsNaN(*v) {
		return score.None()
	}
	return score.Some(*v)
}

// firstString returns the first present value rendered as a string.
func firstString(values ...any) (string, error) {
	for _, v := range values {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			return t, nil
		case fmt.Stringer:
			return t.String(), nil
		case int:
			return strconv.Itoa(t), nil
		case int64:
			return strconv.FormatInt(t, 10), nil
		case uint64:
			return strconv.FormatUint(t, 10), nil
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64), nil
		default:
			return "", fmt.Errorf("unexpected type %T", v)
		}
	}
	return "", nil
}

// Date layouts accepted for string instants, converted to epoch milliseconds.
var instantLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// firstInstant returns the first present value as an epoch number. Numbers,
// fractional ones included, are kept in their own unit; date strings become
// epoch milliseconds.
func firstInstant(values ...any) (float64, error) {
	for _, v := range values {
		switch t := v.(type) {
		case nil:
			continue
		case int:
			return float64(t), nil
		case int64:
			return float64(t), nil
		case uint64:
			if t > math.MaxInt64 {
				return 0, fmt.Errorf("value %d out of range", t)
			}
			return float64(t), nil
		case float64:
			if math.IsNaN(t) || math.IsInf(t, 0) {
				return 0, fmt.Errorf("value %v is not finite", t)
			}
			return t, nil
		case json.Number:
			if n, err := t.Int64(); err == nil {
				return float64(n), nil
			}
			return t.Float64()
		case time.Time:
			return float64(t.UnixMilli()), nil
		case string:
			s := strings.TrimSpace(t)
			if s == "" {
				continue
			}
			if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
				return n, nil
			}
			for _, layout := range instantLayouts {
				if ts, err := time.Parse(layout, s); err == nil {
					return float64(ts.UnixMilli()), nil
				}
			}
			return 0, fmt.Errorf("unparseable instant %q", s)
		default:
			return 0, fmt.Errorf("unexpected type %T", v)
		}
	}
	return 0, nil
}
