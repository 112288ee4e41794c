package repository_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/benchboard/internal/adapters/repository"
	"github.com/okian/benchboard/internal/domain/model"
)

const jsonDataset = `{
  "performances": [
    {"model": "a", "question_id": "q1", "date": 1700000000000, "pass@1": 100, "difficulty": "easy"},
    {"model": "a", "id": 7, "timestamp": "1700000001", "reward": 1, "Pass@1": 40, "Pass@1-COT": 55.5, "topic": "Politics"},
    {"model": "", "id": "x"},
    {"model": "b", "id": "x", "difficulty": "impossible"}
  ],
  "models": [
    {"model_repr": "a", "release_date": 1704067200000, "model_name": "A", "link": "https://example.com/a"},
    {"model_repr": "b", "release_date": "2024-05-01"},
    {"model_repr": "c", "link": "not a url"},
    {"model_name": "nameless"}
  ]
}`

const yamlDataset = `
performances:
  - model: a
    item_id: 12
    timestamp: 30
    reward: 0.5
models:
  - model_repr: a
`

func TestDecode(t *testing.T) {
	ctx := context.Background()

	Convey("Given a JSON dataset with valid and invalid rows", t, func() {
		ds, err := repository.Decode(ctx, strings.NewReader(jsonDataset), repository.FormatJSON, nil)

		Convey("Then it decodes without error", func() {
			So(err, ShouldBeNil)
		})

		Convey("Then invalid rows are skipped and counted", func() {
			So(ds.Stats, ShouldResemble, repository.LoadStats{Records: 2, Models: 2, SkippedRecords: 2, SkippedModels: 2})
		})

		Convey("Then alternative keys are normalized", func() {
			first, second := ds.Records[0], ds.Records[1]
			So(first.ItemID, ShouldEqual, "q1")
			So(first.Timestamp, ShouldEqual, 1700000000000)
			So(first.Pass1.Value(), ShouldEqual, 100)
			So(first.Difficulty, ShouldEqual, model.DifficultyEasy)
			So(first.ExecPass1.Valid(), ShouldBeFalse)

			So(second.ItemID, ShouldEqual, "7")
			So(second.Timestamp, ShouldEqual, 1700000001)
			So(second.Reward, ShouldEqual, 1)
			So(second.Pass1.Valid(), ShouldBeFalse)
			So(second.ExecPass1.Value(), ShouldEqual, 40)
			So(second.CotPass1.Value(), ShouldEqual, 55.5)
			So(second.Topic, ShouldEqual, "Politics")
		})

		Convey("Then release dates accept numbers and dates", func() {
			So(ds.Models[0].ReleaseDate, ShouldEqual, 1704067200000)
			So(ds.Models[0].DisplayName, ShouldEqual, "A")
			So(ds.Models[1].ReleaseDate, ShouldEqual, 1714521600000)
		})

		Convey("Then distinct timestamps are sorted", func() {
			So(ds.Timestamps(), ShouldResemble, []int64{1700000001, 1700000000000})
		})
	})

	Convey("Given a YAML dataset", t, func() {
		ds, err := repository.Decode(ctx, strings.NewReader(yamlDataset), repository.FormatYAML, nil)

		Convey("Then numeric ids become strings", func() {
			So(err, ShouldBeNil)
			So(ds.Records[0].ItemID, ShouldEqual, "12")
			So(ds.Records[0].Timestamp, ShouldEqual, 30)
			So(ds.Records[0].Reward, ShouldEqual, 0.5)
			So(ds.Models[0].HasReleaseDate(), ShouldBeFalse)
		})
	})

	Convey("Given a malformed document", t, func() {
		_, err := repository.Decode(ctx, strings.NewReader("{"), repository.FormatJSON, nil)

		Convey("Then a decode error is returned", func() {
			So(errors.Is(err, repository.ErrDecode), ShouldBeTrue)
		})
	})

	Convey("Given an unknown extension", t, func() {
		_, err := repository.FormatFromPath("data.csv")

		Convey("Then the format is unsupported", func() {
			So(errors.Is(err, repository.ErrUnsupportedFormat), ShouldBeTrue)
		})
	})
}

const fractionalDataset = `{
  "performances": [
    {"model": "a", "id": "1", "timestamp": 1704067200.5, "pass@1": 100},
    {"model": "a", "id": "2", "timestamp": "9.5", "pass@1": 0}
  ],
  "models": [
    {"model_repr": "a", "release_date": 1700000000000.0},
    {"model_repr": "b", "release_date": 1700000000000.75}
  ]
}`

func TestDecodeFractionalInstants(t *testing.T) {
	ctx := context.Background()

	Convey("Given epochs written as non-integer numbers", t, func() {
		ds, err := repository.Decode(ctx, strings.NewReader(fractionalDataset), repository.FormatJSON, nil)

		Convey("Then no row is skipped", func() {
			So(err, ShouldBeNil)
			So(ds.Stats, ShouldResemble, repository.LoadStats{Records: 2, Models: 2})
		})

		Convey("Then record timestamps keep their fraction", func() {
			So(ds.Records[0].Timestamp, ShouldEqual, 1704067200.5)
			So(ds.Records[1].Timestamp, ShouldEqual, 9.5)
			So(ds.Timestamps(), ShouldResemble, []int64{9, 1704067200})
		})

		Convey("Then release dates are floored to whole units", func() {
			So(ds.Models[0].ReleaseDate, ShouldEqual, 1700000000000)
			So(ds.Models[1].ReleaseDate, ShouldEqual, 1700000000000)
		})

		Convey("When encoded and decoded again", func() {
			var buf bytes.Buffer
			So(repository.Encode(&buf, ds, repository.FormatYAML), ShouldBeNil)
			back, err := repository.Decode(ctx, &buf, repository.FormatYAML, nil)

			Convey("Then the fractional timestamp survives", func() {
				So(err, ShouldBeNil)
				So(back.Records, ShouldResemble, ds.Records)
			})
		})
	})
}

func TestEncode(t *testing.T) {
	ctx := context.Background()

	Convey("Given a decoded dataset", t, func() {
		ds, err := repository.Decode(ctx, strings.NewReader(jsonDataset), repository.FormatJSON, nil)
		So(err, ShouldBeNil)

		for _, format := range []repository.Format{repository.FormatJSON, repository.FormatYAML} {
			Convey("When it is encoded as "+string(format), func() {
				var buf bytes.Buffer
				So(repository.Encode(&buf, ds, format), ShouldBeNil)
				back, err := repository.Decode(ctx, &buf, format, nil)

				Convey("Then it loads back unchanged", func() {
					So(err, ShouldBeNil)
					So(back.Records, ShouldResemble, ds.Records)
					So(back.Models, ShouldResemble, ds.Models)
					So(back.Stats.SkippedRecords, ShouldEqual, 0)
				})
			})
		}

		Convey("When the format is unknown", func() {
			err := repository.Encode(&bytes.Buffer{}, ds, "csv")

			Convey("Then it is unsupported", func() {
				So(errors.Is(err, repository.ErrUnsupportedFormat), ShouldBeTrue)
			})
		})
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store := repository.NewMemoryStore(ctx)
		defer store.Close()

		Convey("Then snapshots fail until a dataset is loaded", func() {
			_, err := store.Snapshot(ctx)
			So(errors.Is(err, repository.ErrDatasetNotLoaded), ShouldBeTrue)

			_, err = store.Load(ctx)
			So(errors.Is(err, repository.ErrNoPath), ShouldBeTrue)
		})

		Convey("When a dataset is replaced", func() {
			store.Replace(ctx, &repository.Dataset{Records: []model.PerformanceRecord{{Model: "a"}}})

			Convey("Then it is served", func() {
				ds, err := store.Snapshot(ctx)
				So(err, ShouldBeNil)
				So(len(ds.Records), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a dataset file", t, func() {
		path := filepath.Join(t.TempDir(), "dataset.json")
		So(os.WriteFile(path, []byte(jsonDataset), 0o600), ShouldBeNil)

		Convey("When loading explicitly", func() {
			var notified []*repository.Dataset
			store := repository.NewMemoryStore(ctx,
				repository.WithPath(path),
				repository.WithOnLoad(func(_ context.Context, ds *repository.Dataset) {
					notified = append(notified, ds)
				}),
			)
			defer store.Close()
			stats, err := store.Load(ctx)

			Convey("Then the stats and snapshot match the file", func() {
				So(err, ShouldBeNil)
				So(stats.Records, ShouldEqual, 2)
				ds, err := store.Snapshot(ctx)
				So(err, ShouldBeNil)
				So(ds.Source, ShouldEqual, path)
			})

			Convey("Then the load hook sees the published dataset", func() {
				ds, _ := store.Snapshot(ctx)
				So(len(notified), ShouldEqual, 1)
				So(notified[0], ShouldPointTo, ds)
			})
		})

		Convey("When polling is enabled", func() {
			store := repository.NewMemoryStore(ctx,
				repository.WithPath(path),
				repository.WithReloadInterval(10*time.Millisecond),
			)
			defer store.Close()

			Convey("Then the file is picked up without an explicit load", func() {
				var err error
				for i := 0; i < 100; i++ {
					if _, err = store.Snapshot(ctx); err == nil {
						break
					}
					time.Sleep(10 * time.Millisecond)
				}
				So(err, ShouldBeNil)
			})
		})
	})
}
