package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/benchboard/internal/adapters/cache"
)

func TestCache(t *testing.T) {
	ctx := context.Background()

	Convey("Given a cache bounded to two entries", t, func() {
		c := cache.New[int](cache.WithMaxSize(2))

		Convey("When inserting three keys after touching the first", func() {
			c.Put(ctx, "a", 1)
			c.Put(ctx, "b", 2)
			_, _ = c.Get(ctx, "a")
			c.Put(ctx, "c", 3)

			Convey("Then the least recently used key is evicted", func() {
				_, ok := c.Get(ctx, "b")
				So(ok, ShouldBeFalse)
				v, ok := c.Get(ctx, "a")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 1)
				So(c.Len(), ShouldEqual, 2)
			})

			Convey("Then hits and misses are counted", func() {
				hits, misses := c.Stats()
				So(hits, ShouldEqual, 1)
				So(misses, ShouldEqual, 0)
			})
		})

		Convey("When overwriting a key", func() {
			c.Put(ctx, "a", 1)
			c.Put(ctx, "a", 9)

			Convey("Then the new value is returned", func() {
				v, _ := c.Get(ctx, "a")
				So(v, ShouldEqual, 9)
				So(c.Len(), ShouldEqual, 1)
			})
		})

		Convey("When purging", func() {
			c.Put(ctx, "a", 1)
			c.Purge(ctx)

			Convey("Then the cache is empty", func() {
				So(c.Len(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a disabled cache", t, func() {
		c := cache.New[string](cache.WithMaxSize(0))
		c.Put(ctx, "a", "x")

		Convey("Then nothing is stored", func() {
			_, ok := c.Get(ctx, "a")
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given concurrent writers", t, func() {
		c := cache.New[int](cache.WithMaxSize(16))
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.Put(ctx, fmt.Sprintf("%d-%d", i, j), j)
					_, _ = c.Get(ctx, fmt.Sprintf("%d-%d", i, j/2))
				}
			}(i)
		}
		wg.Wait()

		Convey("Then the bound holds", func() {
			So(c.Len(), ShouldEqual, 16)
		})
	})
}
