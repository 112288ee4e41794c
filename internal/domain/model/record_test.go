package model_test

import (
	"testing"

	model "github.com/okian/benchboard/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestModelDescriptor(t *testing.T) {
	convey.Convey("Given model descriptors", t, func() {
		convey.Convey("When the release date is zero", func() {
			m := model.ModelDescriptor{ModelRepr: "m"}
			convey.So(m.HasReleaseDate(), convey.ShouldBeFalse)
		})

		convey.Convey("When the release date is set", func() {
			m := model.ModelDescriptor{ModelRepr: "m", ReleaseDate: 1_700_000_000_000}
			convey.So(m.HasReleaseDate(), convey.ShouldBeTrue)
		})
	})
}

func TestIndex(t *testing.T) {
	convey.Convey("Given a list with a duplicated model", t, func() {
		models := []model.ModelDescriptor{
			{ModelRepr: "a", Link: "https://a.example"},
			{ModelRepr: "b"},
			{ModelRepr: "a", Link: "https://a2.example"},
		}

		convey.Convey("When indexing", func() {
			idx := model.Index(models)

			convey.Convey("Then each repr appears once and later entries win", func() {
				convey.So(idx, convey.ShouldHaveLength, 2)
				convey.So(idx["a"].Link, convey.ShouldEqual, "https://a2.example")
			})
		})
	})
}
