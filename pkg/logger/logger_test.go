package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/benchboard/pkg/logger"
)

func TestInit(t *testing.T) {
	Convey("Given JSON output into a buffer", t, func() {
		var buf bytes.Buffer
		So(logger.Init(logger.WithFormat(logger.FormatJSON), logger.WithWriter(&buf)), ShouldBeNil)

		Convey("When logging with fields through a named logger", func() {
			logger.Named("loader").Info(context.Background(), "dataset loaded",
				logger.Int("records", 3),
				logger.Int64("start", 10),
				logger.Bool("cot", true),
				logger.Duration("took", time.Second),
				logger.Error(errors.New("boom")),
			)

			Convey("Then the entry carries every field, the name and the source", func() {
				var entry map[string]any
				So(json.Unmarshal(buf.Bytes(), &entry), ShouldBeNil)
				So(entry["msg"], ShouldEqual, "dataset loaded")
				So(entry["logger"], ShouldEqual, "loader")
				So(entry["records"], ShouldEqual, float64(3))
				So(entry["cot"], ShouldEqual, true)
				So(entry["error"], ShouldEqual, "boom")
				So(entry["source"], ShouldContainSubstring, "logger_test.go:")
			})
		})

		Convey("When the level is raised to error", func() {
			So(logger.SetLevelString("error"), ShouldBeNil)
			logger.Get().Info(context.Background(), "hidden")

			Convey("Then info entries are dropped", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given an unknown format", t, func() {
		Convey("Then Init fails", func() {
			So(logger.Init(logger.WithFormat("xml")), ShouldNotBeNil)
		})
	})

	Convey("Given an unknown level", t, func() {
		Convey("Then SetLevelString fails", func() {
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
			So(logger.SetLevelString("WARNING"), ShouldBeNil)
		})
	})
}

func TestStandalone(t *testing.T) {
	Convey("Given a standalone text logger", t, func() {
		var buf bytes.Buffer
		l := logger.New(&buf, logger.FormatText)

		Convey("Then debug output is written", func() {
			l.Debug(context.Background(), "trace", logger.String("k", "v"))
			So(buf.String(), ShouldContainSubstring, "k=v")
		})
	})

	Convey("Given the nop logger", t, func() {
		Convey("Then logging does not panic", func() {
			So(func() { logger.Nop().Error(context.Background(), "ignored") }, ShouldNotPanic)
		})
	})
}
