package score_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/okian/benchboard/internal/domain/score"
	"github.com/smartystreets/goconvey/convey"
)

func TestRound1(t *testing.T) {
	convey.Convey("Given values that need one-decimal rounding", t, func() {
		convey.Convey("When the value is an exact quarter tie", func() {
			convey.So(score.Round1(0.25), convey.ShouldEqual, 0.3)
			convey.So(score.Round1(0.75), convey.ShouldEqual, 0.8)
			convey.So(score.Round1(-0.25), convey.ShouldEqual, -0.3)
			convey.So(score.Round1(1016.25), convey.ShouldEqual, 1016.3) // Go formatting alone gives 1016.2
		})

		convey.Convey("When the decimal literal is not exactly representable", func() {
			// 0.15 is stored as 0.1499999999999999944...
			convey.So(score.Round1(0.15), convey.ShouldEqual, 0.1)
			// 2.55 is stored as 2.5499999999999998223...
			convey.So(score.Round1(2.55), convey.ShouldEqual, 2.5)
			// 0.45 is stored as 0.4500000000000000111...
			convey.So(score.Round1(0.45), convey.ShouldEqual, 0.5)
		})

		convey.Convey("When the value is already on the grid", func() {
			convey.So(score.Round1(50), convey.ShouldEqual, 50)
			convey.So(score.Round1(0.5), convey.ShouldEqual, 0.5)
			convey.So(score.Round1(1016), convey.ShouldEqual, 1016)
		})

		convey.Convey("When the value is a repeating fraction", func() {
			convey.So(score.Round1(2.0/3.0), convey.ShouldEqual, 0.7)
			convey.So(score.Round1(100.0/3.0), convey.ShouldEqual, 33.3)
		})

		convey.Convey("When the value is not finite", func() {
			convey.So(math.IsNaN(score.Round1(math.NaN())), convey.ShouldBeTrue)
			convey.So(math.IsInf(score.Round1(math.Inf(1)), 1), convey.ShouldBeTrue)
		})
	})
}

func TestMean(t *testing.T) {
	convey.Convey("Given a set of values", t, func() {
		convey.Convey("When it is empty", func() {
			m := score.Mean(nil)
			convey.So(m.Valid(), convey.ShouldBeFalse)
			convey.So(m.OrMissing(), convey.ShouldEqual, score.Missing)
		})

		convey.Convey("When it has values", func() {
			m := score.Mean([]float64{1, 0, 1, 1})
			v, ok := m.Get()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldEqual, 0.75)
			convey.So(m.Round1().Value(), convey.ShouldEqual, 0.8)
		})
	})
}

func TestOptionalJSON(t *testing.T) {
	convey.Convey("Given optional values", t, func() {
		convey.Convey("Then absent values encode as null", func() {
			b, err := json.Marshal(score.None())
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldEqual, "null")
		})

		convey.Convey("Then present values encode as numbers", func() {
			b, err := json.Marshal(score.Some(1016))
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldEqual, "1016")
		})

		convey.Convey("Then decoding round-trips null and numbers", func() {
			var pair []score.Optional
			err := json.Unmarshal([]byte(`[null, 12.5]`), &pair)
			convey.So(err, convey.ShouldBeNil)
			convey.So(pair[0].Valid(), convey.ShouldBeFalse)
			convey.So(pair[1].Value(), convey.ShouldEqual, 12.5)
		})
	})
}
