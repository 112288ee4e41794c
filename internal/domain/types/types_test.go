package types_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/benchboard/internal/domain/ranking"
	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

func TestAccuracyRowJSON(t *testing.T) {
	convey.Convey("Given a ranked standard accuracy row", t, func() {
		rank := 1
		row := types.AccuracyRow{
			Standing:    ranking.Standing{Rank: &rank},
			Model:       "m",
			CutoffLabel: types.CutoffLabelPrefix + "1/2/2024",
			Pass1:       50,
			Easy:        100,
			Medium:      score.Missing,
			Hard:        0,
		}

		convey.Convey("When marshalling", func() {
			b, err := json.Marshal(row)

			convey.Convey("Then keys follow display order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldEqual,
					`{"Rank":1,"Model":"m","Estimated Cutoff For LiveCodeBench":"Estimated Cutoff For LiveCodeBench: 1/2/2024","Contaminated":false,"Pass@1":50,"Easy-Pass@1":100,"Medium-Pass@1":-1,"Hard-Pass@1":0}`)
			})
		})

		convey.Convey("Then field names match the standard schema", func() {
			convey.So(row.FieldNames(), convey.ShouldResemble, []string{
				"Rank", "Model", "Estimated Cutoff For LiveCodeBench", "Contaminated",
				"Pass@1", "Easy-Pass@1", "Medium-Pass@1", "Hard-Pass@1",
			})
		})
	})

	convey.Convey("Given a contaminated COT accuracy row", t, func() {
		row := types.AccuracyRow{
			Standing:   ranking.Standing{Contaminated: true},
			Schema:     types.SchemaCOT,
			Model:      "m",
			Pass1:      61.2,
			Pass1NoCOT: score.Missing,
		}

		convey.Convey("When marshalling", func() {
			b, err := json.Marshal(row)

			convey.Convey("Then rank is null and only COT fields appear", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldEqual,
					`{"Rank":null,"Model":"m","Estimated Cutoff For LiveCodeBench":"","Contaminated":true,"Pass@1":61.2,"Pass@1 (no COT)":-1}`)
			})
		})
	})
}

func TestEloRowJSON(t *testing.T) {
	convey.Convey("Given an ELO row with two topics", t, func() {
		rank := 2
		row := types.EloRow{
			Standing: ranking.Standing{Rank: &rank},
			Model:    "x",
			ELO:      1016,
			Topics: []types.TopicScore{
				{Topic: "Politics", Elo: score.Some(1008.5)},
				{Topic: "Entertainment", Elo: score.None()},
			},
		}

		convey.Convey("When marshalling", func() {
			b, err := json.Marshal(row)

			convey.Convey("Then topic fields follow ELO and absent topics are null", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldEqual,
					`{"Rank":2,"Model":"x","Contaminated":false,"ELO":1016,"Politics":1008.5,"Entertainment":null}`)
			})
		})

		convey.Convey("Then field names include the topics", func() {
			convey.So(row.FieldNames(), convey.ShouldResemble,
				[]string{"Rank", "Model", "Contaminated", "ELO", "Politics", "Entertainment"})
		})
	})
}

func TestSchemaString(t *testing.T) {
	convey.Convey("Given the schema enum", t, func() {
		convey.So(types.SchemaStandard.String(), convey.ShouldEqual, "standard")
		convey.So(types.SchemaCOT.String(), convey.ShouldEqual, "cot")
	})
}
