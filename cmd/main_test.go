package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/benchboard/internal/config"
	"github.com/okian/benchboard/pkg/logger"
)

const dataset = `{
  "performances": [
    {"model": "a", "id": "1", "timestamp": 2000, "pass@1": 100, "difficulty": "easy", "reward": 1},
    {"model": "b", "id": "1", "timestamp": 2000, "pass@1": 0, "difficulty": "easy", "reward": 0}
  ],
  "models": [
    {"model_repr": "a", "release_date": 1000},
    {"model_repr": "b", "release_date": 1500}
  ]
}`

func TestMainFunction(t *testing.T) {
	_ = logger.Init(logger.WithWriter(io.Discard))

	convey.Convey("Given the main application", t, func() {
		path := filepath.Join(t.TempDir(), "dataset.json")
		convey.So(os.WriteFile(path, []byte(dataset), 0o600), convey.ShouldBeNil)

		convey.Convey("When configuration comes from the environment", func() {
			t.Setenv("BENCHBOARD_ADDR", ":8081")
			t.Setenv("BENCHBOARD_DATASET_PATH", path)
			t.Setenv("BENCHBOARD_WARM_WORKERS", "0")

			cfg, err := config.Load(context.Background())

			convey.Convey("Then it is loadable", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8081")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, path)
				convey.So(cfg.WarmWorkers, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When the service and routes are wired", func() {
			ctx := context.Background()
			cfg := config.New(ctx)
			cfg.DatasetPath = path
			cfg.WarmWorkers = 0

			svc := newService(cfg, logger.Nop())
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			srv := httptest.NewServer(newMux(ctx, svc))
			defer srv.Close()

			get := func(path string) *http.Response {
				resp, err := http.Get(srv.URL + path)
				convey.So(err, convey.ShouldBeNil)
				return resp
			}

			convey.Convey("Then the leaderboard is served", func() {
				resp := get("/leaderboard/accuracy")
				defer resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

				var rows []map[string]any
				convey.So(json.NewDecoder(resp.Body).Decode(&rows), convey.ShouldBeNil)
				convey.So(len(rows), convey.ShouldEqual, 2)
				convey.So(rows[0]["Model"], convey.ShouldEqual, "a")
			})

			convey.Convey("Then the API docs are served", func() {
				resp := get("/api-docs")
				defer resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			})

			convey.Convey("Then the health endpoint answers", func() {
				resp := get("/healthz")
				defer resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			})

			convey.Convey("Then the service metrics update without panicking", func() {
				convey.So(func() { updateServiceMetrics(ctx, svc) }, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMetricsUpdaters(t *testing.T) {
	_ = logger.Init(logger.WithWriter(io.Discard))

	convey.Convey("Given the background metric updaters", t, func() {
		convey.Convey("When the system metrics are sampled", func() {
			convey.Convey("Then no panic occurs", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When the updaters run until their context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			svc := newService(config.New(ctx), logger.Nop())

			convey.Convey("Then both return", func() {
				convey.So(func() {
					startSystemMetricsUpdater(ctx)
					startServiceMetricsUpdater(ctx, svc)
				}, convey.ShouldNotPanic)
			})
		})
	})
}
