package prng_test

import (
	"testing"

	"github.com/okian/benchboard/internal/domain/prng"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSource_Next(t *testing.T) {
	Convey("Given a source seeded with the default seed", t, func() {
		src := prng.New(prng.DefaultSeed)

		Convey("Then the first values follow the LCG recurrence", func() {
			// (42*9301 + 49297) % 233280 = 206659
			So(src.Next(), ShouldEqual, 206659.0/233280.0)
			// (206659*9301 + 49297) % 233280 = 190736
			So(src.Next(), ShouldEqual, 190736.0/233280.0)
		})

		Convey("Then every value lies in [0,1)", func() {
			for i := 0; i < 10_000; i++ {
				v := src.Next()
				So(v >= 0 && v < 1, ShouldBeTrue)
			}
		})
	})

	Convey("Given two sources with the same seed", t, func() {
		a, b := prng.New(7), prng.New(7)

		Convey("Then they produce identical sequences", func() {
			for i := 0; i < 100; i++ {
				So(a.Next(), ShouldEqual, b.Next())
			}
		})
	})

	Convey("Given a negative seed", t, func() {
		src := prng.New(-1_000_000)

		Convey("Then values still stay in [0,1)", func() {
			for i := 0; i < 100; i++ {
				v := src.Next()
				So(v, ShouldBeGreaterThanOrEqualTo, 0)
				So(v, ShouldBeLessThan, 1)
			}
		})
	})
}
