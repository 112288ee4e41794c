// Package types contains the row and descriptor types the engine emits for
// the rendering layer.
package types

import (
	"github.com/okian/benchboard/internal/domain/ranking"
	"github.com/okian/benchboard/internal/domain/score"
)

// Leaderboard field names. They double as JSON keys and column ids.
const (
	FieldRank         = "Rank"
	FieldModel        = "Model"
	FieldCutoff       = "Estimated Cutoff For LiveCodeBench"
	FieldContaminated = "Contaminated"
	FieldPass1        = "Pass@1"
	FieldPass1COT     = "Pass@1-COT"
	FieldPass1NoCOT   = "Pass@1 (no COT)"
	FieldEasy         = "Easy-Pass@1"
	FieldMedium       = "Medium-Pass@1"
	FieldHard         = "Hard-Pass@1"
	FieldELO          = "ELO"
)

// CutoffLabelPrefix starts every cutoff tooltip label.
const CutoffLabelPrefix = FieldCutoff + ": "

// Schema selects the accuracy row shape.
type Schema int

const (
	// SchemaStandard reports the overall pass@1 and its difficulty breakdown.
	SchemaStandard Schema = iota
	// SchemaCOT reports the chain-of-thought pass@1 next to the plain variant.
	SchemaCOT
)

func (s Schema) String() string {
	if s == SchemaCOT {
		return "cot"
	}
	return "standard"
}

// AccuracyRow is one ranked row of the accuracy leaderboard. Score fields
// hold score.Missing when the category had no data.
type AccuracyRow struct {
	ranking.Standing
	Schema      Schema
	Model       string
	CutoffLabel string
	Pass1       float64 // overall (standard) or chain-of-thought (COT) pass@1
	Easy        float64
	Medium      float64
	Hard        float64
	Pass1NoCOT  float64
}

// FieldNames lists the row's fields in display order.
func (r AccuracyRow) FieldNames() []string {
	return AccuracyFieldNames(r.Schema)
}

// AccuracyFieldNames lists the fields of an accuracy row of the given schema.
func AccuracyFieldNames(s Schema) []string {
	base := []string{FieldRank, FieldModel, FieldCutoff, FieldContaminated, FieldPass1}
	if s == SchemaCOT {
		return append(base, FieldPass1NoCOT)
	}
	return append(base, FieldEasy, FieldMedium, FieldHard)
}

// MarshalJSON encodes the row as an object keyed by field name, in display order.
func (r AccuracyRow) MarshalJSON() ([]byte, error) {
	obj := orderedObject{
		{FieldRank, r.Rank},
		{FieldModel, r.Model},
		{FieldCutoff, r.CutoffLabel},
		{FieldContaminated, r.Contaminated},
		{FieldPass1, r.Pass1},
	}
	if r.Schema == SchemaCOT {
		obj = append(obj, member{FieldPass1NoCOT, r.Pass1NoCOT})
	} else {
		obj = append(obj,
			member{FieldEasy, r.Easy},
			member{FieldMedium, r.Medium},
			member{FieldHard, r.Hard},
		)
	}
	return obj.MarshalJSON()
}

// TopicScore is a per-topic ELO cell; Elo is null when the model played no
// match in that topic.
type TopicScore struct {
	Topic string
	Elo   score.Optional
}

// EloRow is one ranked row of the ELO leaderboard.
type EloRow struct {
	ranking.Standing
	Model  string
	ELO    float64
	Topics []TopicScore
}

// FieldNames lists the row's fields in display order.
func (r EloRow) FieldNames() []string {
	topics := make([]string, 0, len(r.Topics))
	for _, t := range r.Topics {
		topics = append(topics, t.Topic)
	}
	return EloFieldNames(topics)
}

// EloFieldNames lists the fields of an ELO row tracking the given topics.
func EloFieldNames(topics []string) []string {
	return append([]string{FieldRank, FieldModel, FieldContaminated, FieldELO}, topics...)
}

// MarshalJSON encodes the row as an object keyed by field name, in display order.
func (r EloRow) MarshalJSON() ([]byte, error) {
	obj := orderedObject{
		{FieldRank, r.Rank},
		{FieldModel, r.Model},
		{FieldContaminated, r.Contaminated},
		{FieldELO, r.ELO},
	}
	for _, t := range r.Topics {
		obj = append(obj, member{t.Topic, t.Elo})
	}
	return obj.MarshalJSON()
}

// WinrateEdge is the directional win rate of Model against Opponent.
type WinrateEdge struct {
	Model    string  `json:"model"`
	Opponent string  `json:"opponent"`
	Winrate  float64 `json:"winrate"`
	Matches  int     `json:"matches"`
}

// DateMark is a timeline tick.
type DateMark struct {
	Value int64  `json:"value"`
	Label string `json:"label"`
}

// ColumnDescriptor tells the table widget how to render one field.
type ColumnDescriptor struct {
	Field           string            `json:"field"`
	SuppressMovable bool              `json:"suppressMovable,omitempty"`
	CellClass       string            `json:"cellClass,omitempty"`
	Flex            int               `json:"flex,omitempty"`
	TooltipField    string            `json:"tooltipField,omitempty"`
	HeaderTooltip   string            `json:"headerTooltip,omitempty"`
	Sort            string            `json:"sort,omitempty"`
	CellRenderer    string            `json:"cellRenderer,omitempty"`
	Links           map[string]string `json:"links,omitempty"`
}
