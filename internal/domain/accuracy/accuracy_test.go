package accuracy_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/benchboard/internal/domain/accuracy"
	"github.com/okian/benchboard/internal/domain/model"
	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/internal/domain/types"
)

func rec(m string, ts float64, pass float64, d model.Difficulty) model.PerformanceRecord {
	return model.PerformanceRecord{Model: m, Timestamp: ts, Pass1: score.Some(pass), Difficulty: d}
}

func TestPassAtOne(t *testing.T) {
	Convey("Given an easy pass and a hard fail inside the window", t, func() {
		records := []model.PerformanceRecord{
			rec("A", 1, 1, model.DifficultyEasy),
			rec("A", 2, 0, model.DifficultyHard),
		}

		Convey("When aggregating over [0, 10]", func() {
			b := accuracy.PassAtOne(records, "A", 0, 10)

			Convey("Then average, easy and hard are set and medium is absent", func() {
				So(b.Average.Value(), ShouldEqual, 0.5)
				So(b.Easy.Value(), ShouldEqual, 1)
				So(b.Hard.Value(), ShouldEqual, 0)
				So(b.Medium.Valid(), ShouldBeFalse)
				So(b.Medium.OrMissing(), ShouldEqual, -1)
				So(b.Exec.Valid(), ShouldBeFalse)
				So(b.Cot.Valid(), ShouldBeFalse)
			})
		})
	})

	Convey("Given records on both window bounds", t, func() {
		records := []model.PerformanceRecord{
			rec("A", 10, 1, model.DifficultyNone),
			rec("A", 20, 0, model.DifficultyNone),
			rec("A", 21, 0, model.DifficultyNone),
			rec("B", 15, 0, model.DifficultyNone),
		}

		Convey("When aggregating over [10, 20]", func() {
			b := accuracy.PassAtOne(records, "A", 10, 20)

			Convey("Then both bounds are kept and other models ignored", func() {
				So(b.Average.Value(), ShouldEqual, 0.5)
			})
		})

		Convey("When the model has no records", func() {
			b := accuracy.PassAtOne(records, "Z", 0, 100)

			Convey("Then every category is absent", func() {
				So(b.Average.Valid(), ShouldBeFalse)
				So(b.Easy.Valid(), ShouldBeFalse)
			})
		})
	})

	Convey("Given a mean that needs rounding", t, func() {
		records := []model.PerformanceRecord{
			rec("A", 1, 100, model.DifficultyNone),
			rec("A", 1, 0, model.DifficultyNone),
			rec("A", 1, 0, model.DifficultyNone),
		}

		Convey("Then it is rounded to one decimal", func() {
			So(accuracy.PassAtOne(records, "A", 0, 10).Average.Value(), ShouldEqual, 33.3)
		})
	})

	Convey("Given records carrying only the variant fields", t, func() {
		records := []model.PerformanceRecord{
			{Model: "A", Timestamp: 1, ExecPass1: score.Some(40), CotPass1: score.Some(60)},
			{Model: "A", Timestamp: 2, ExecPass1: score.Some(50)},
		}

		Convey("Then each variant averages its own subset", func() {
			b := accuracy.PassAtOne(records, "A", 0, 10)
			So(b.Exec.Value(), ShouldEqual, 45)
			So(b.Cot.Value(), ShouldEqual, 60)
			So(b.Average.Valid(), ShouldBeFalse)
		})
	})
}

func TestBuildLeaderboard(t *testing.T) {
	Convey("Given three dated models and one undated model", t, func() {
		models := []model.ModelDescriptor{
			{ModelRepr: "old-weak", ReleaseDate: 1000},
			{ModelRepr: "new-strong", ReleaseDate: 5000},
			{ModelRepr: "old-strong", ReleaseDate: 500},
			{ModelRepr: "undated"},
			{ModelRepr: "silent", ReleaseDate: 100},
		}
		records := []model.PerformanceRecord{
			rec("old-weak", 3000, 20, model.DifficultyEasy),
			rec("new-strong", 3000, 90, model.DifficultyHard),
			rec("old-strong", 3000, 70, model.DifficultyMedium),
			rec("undated", 3000, 100, model.DifficultyEasy),
		}

		Convey("When building with start 2000", func() {
			rows := accuracy.BuildLeaderboard(records, models, 2000, 4000)

			Convey("Then undated models are dropped and rows are sorted by Pass@1", func() {
				So(len(rows), ShouldEqual, 4)
				names := []string{rows[0].Model, rows[1].Model, rows[2].Model, rows[3].Model}
				So(names, ShouldResemble, []string{"new-strong", "old-strong", "old-weak", "silent"})
			})

			Convey("Then the contaminated model keeps its place without a rank", func() {
				So(rows[0].Contaminated, ShouldBeTrue)
				So(rows[0].Rank, ShouldBeNil)
				So(*rows[1].Rank, ShouldEqual, 1)
				So(*rows[2].Rank, ShouldEqual, 2)
				So(*rows[3].Rank, ShouldEqual, 3)
			})

			Convey("Then missing categories become -1", func() {
				So(rows[0].Hard, ShouldEqual, 90)
				So(rows[0].Easy, ShouldEqual, -1)
				So(rows[3].Pass1, ShouldEqual, -1)
			})

			Convey("Then the standard schema is used", func() {
				So(rows[0].Schema, ShouldEqual, types.SchemaStandard)
			})
		})
	})

	Convey("Given a record carrying a chain-of-thought score", t, func() {
		models := []model.ModelDescriptor{
			{ModelRepr: "a", ReleaseDate: 1},
			{ModelRepr: "b", ReleaseDate: 1},
		}
		records := []model.PerformanceRecord{
			{Model: "a", Timestamp: 10, ExecPass1: score.Some(30)},
			{Model: "b", Timestamp: 10, ExecPass1: score.Some(10), CotPass1: score.Some(50)},
		}

		Convey("When building", func() {
			rows := accuracy.BuildLeaderboard(records, models, 5, 20)

			Convey("Then every row uses the COT schema", func() {
				So(rows[0].Schema, ShouldEqual, types.SchemaCOT)
				So(rows[0].Model, ShouldEqual, "b")
				So(rows[0].Pass1, ShouldEqual, 50)
				So(rows[0].Pass1NoCOT, ShouldEqual, 10)
				So(rows[1].Pass1, ShouldEqual, -1)
				So(rows[1].Pass1NoCOT, ShouldEqual, 30)
			})
		})
	})

	Convey("Given a release date in milliseconds", t, func() {
		Convey("Then the cutoff label is the UTC calendar date", func() {
			So(accuracy.CutoffLabel(1704067200000), ShouldEqual,
				"Estimated Cutoff For LiveCodeBench: 1/1/2024")
		})
	})

	Convey("Given no models", t, func() {
		Convey("Then the leaderboard is empty", func() {
			So(accuracy.BuildLeaderboard(nil, nil, 0, 10), ShouldBeEmpty)
		})
	})
}
