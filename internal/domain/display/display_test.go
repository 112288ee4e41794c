package display_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/benchboard/internal/domain/display"
	"github.com/okian/benchboard/internal/domain/model"
	"github.com/okian/benchboard/internal/domain/types"
)

func TestMarksFromTimestamps(t *testing.T) {
	convey.Convey("Given a seconds and a milliseconds timestamp", t, func() {
		marks := display.MarksFromTimestamps([]int64{1000000000, 1700000000000})

		convey.Convey("Then both are labelled as UTC dates with raw values kept", func() {
			convey.So(marks, convey.ShouldResemble, []types.DateMark{
				{Value: 1000000000, Label: "9/9/2001"},
				{Value: 1700000000000, Label: "11/14/2023"},
			})
		})
	})

	convey.Convey("Given unsorted input", t, func() {
		marks := display.MarksFromTimestamps([]int64{1700000000, 0})

		convey.Convey("Then input order is preserved", func() {
			convey.So(marks[0].Label, convey.ShouldEqual, "11/14/2023")
			convey.So(marks[1].Label, convey.ShouldEqual, "1/1/1970")
		})
	})
}

func TestMarksFromModels(t *testing.T) {
	convey.Convey("Given models with repeated and missing release dates", t, func() {
		models := []model.ModelDescriptor{
			{ModelRepr: "a", ReleaseDate: 1714521600000},
			{ModelRepr: "b", ReleaseDate: 1696118400000},
			{ModelRepr: "c", ReleaseDate: 1714521600000},
			{ModelRepr: "d"},
			{ModelRepr: "e", ReleaseDate: display.DefaultReference},
		}

		convey.Convey("When deriving marks", func() {
			marks := display.MarksFromModels(models, display.DefaultReference)

			convey.Convey("Then release dates are distinct and the reference is added on top", func() {
				convey.So(marks, convey.ShouldResemble, []types.DateMark{
					{Value: 1696118400000, Label: "10/1/2023"},
					{Value: 1704067200000, Label: "1/1/2024"},
					{Value: 1704067200000, Label: "1/1/2024"},
					{Value: 1714521600000, Label: "5/1/2024"},
				})
			})
		})
	})

	convey.Convey("Given no models", t, func() {
		convey.Convey("Then only the reference mark remains", func() {
			convey.So(display.MarksFromModels(nil, display.DefaultReference), convey.ShouldResemble,
				[]types.DateMark{{Value: display.DefaultReference, Label: "1/1/2024"}})
		})
	})
}

func TestColumns(t *testing.T) {
	models := []model.ModelDescriptor{
		{ModelRepr: "a", Link: "https://example.com/a"},
		{ModelRepr: "b"},
	}

	convey.Convey("Given the standard accuracy field names", t, func() {
		cols := display.Columns(types.AccuracyFieldNames(types.SchemaStandard), models)

		convey.Convey("Then cutoff and contamination produce no column", func() {
			fields := make([]string, 0, len(cols))
			for _, c := range cols {
				fields = append(fields, c.Field)
			}
			convey.So(fields, convey.ShouldResemble, []string{
				"Rank", "Model", "Pass@1", "Easy-Pass@1", "Medium-Pass@1", "Hard-Pass@1",
			})
		})

		convey.Convey("Then Rank and Model are pinned", func() {
			convey.So(cols[0], convey.ShouldResemble, types.ColumnDescriptor{
				Field: "Rank", SuppressMovable: true, CellClass: display.PinnedCellClass,
			})
			convey.So(cols[1], convey.ShouldResemble, types.ColumnDescriptor{
				Field:           "Model",
				SuppressMovable: true,
				CellClass:       display.PinnedCellClass,
				Flex:            2,
				TooltipField:    types.FieldCutoff,
				CellRenderer:    display.LinkRenderer,
				Links:           map[string]string{"a": "https://example.com/a"},
			})
		})

		convey.Convey("Then score columns carry tooltips", func() {
			convey.So(cols[2].Sort, convey.ShouldEqual, "desc")
			convey.So(cols[2].HeaderTooltip, convey.ShouldEqual,
				"Pass@1 is probability of passing a given problem in one attempt.")
			convey.So(cols[3].HeaderTooltip, convey.ShouldEqual, "Pass@1 on problems with Easy difficulty")
			convey.So(cols[3].Sort, convey.ShouldBeEmpty)
		})
	})

	convey.Convey("Given the COT accuracy field names", t, func() {
		cols := display.Columns(types.AccuracyFieldNames(types.SchemaCOT), nil)

		convey.Convey("Then the no-COT column sorts descending", func() {
			last := cols[len(cols)-1]
			convey.So(last.Field, convey.ShouldEqual, "Pass@1 (no COT)")
			convey.So(last.Sort, convey.ShouldEqual, "desc")
			convey.So(cols[1].Links, convey.ShouldBeNil)
		})
	})

	convey.Convey("Given an unknown field", t, func() {
		cols := display.Columns([]string{"ELO", "Politics"}, nil)

		convey.Convey("Then it gets a plain column", func() {
			convey.So(cols, convey.ShouldResemble, []types.ColumnDescriptor{{Field: "ELO"}, {Field: "Politics"}})
		})
	})
}
