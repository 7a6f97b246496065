package cache

import (
	"testing"
	"time"

	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/intersect"
	. "github.com/smartystreets/goconvey/convey"
)

func TestKey(t *testing.T) {
	Convey("Key", t, func() {
		Convey("Is independent of order and duplicates", func() {
			a := Key([]string{"US", "KR"}, []string{"netflix", "hulu", "netflix"})
			b := Key([]string{"KR", "US", "KR"}, []string{"hulu", "netflix"})
			So(a, ShouldEqual, b)
			So(a, ShouldEqual, "KR,US_hulu,netflix")
		})

		Convey("Normalizes case and blanks", func() {
			So(Key([]string{" kr"}, []string{"Netflix", ""}), ShouldEqual, "KR_netflix")
		})
	})
}

func TestCache(t *testing.T) {
	Convey("Given a cache", t, func() {
		c := New()
		fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return fixed }
		key := Key([]string{"KR"}, []string{"netflix"})
		first := &content.Item{SourceID: 1, Title: "Parasite"}

		Convey("A miss is None", func() {
			So(c.Get(key, content.Movie).IsAbsent(), ShouldBeTrue)
		})

		Convey("Entries are partitioned by kind", func() {
			c.Put(key, content.Movie, &Entry{Items: []*content.Item{first}})
			So(c.Get(key, content.Movie).IsPresent(), ShouldBeTrue)
			So(c.Get(key, content.Series).IsAbsent(), ShouldBeTrue)
		})

		Convey("Put fills key, kind and timestamp", func() {
			c.Put(key, content.Movie, &Entry{})
			e := c.Get(key, content.Movie).MustGet()
			So(e.Key, ShouldEqual, key)
			So(e.Kind, ShouldEqual, content.Movie)
			So(e.Timestamp, ShouldEqual, fixed)
		})

		Convey("Append grows the item list and replaces the snapshot", func() {
			c.Append(key, content.Movie, []*content.Item{first}, intersect.Snapshot{Emitted: 1})
			c.Append(key, content.Movie, []*content.Item{{SourceID: 2}}, intersect.Snapshot{Emitted: 2, Finished: true})

			e := c.Get(key, content.Movie).MustGet()
			So(e.Items, ShouldHaveLength, 2)
			So(e.Snapshot.Emitted, ShouldEqual, 2)
			So(e.Snapshot.Finished, ShouldBeTrue)
		})

		Convey("Returned entries do not alias the stored one", func() {
			c.Append(key, content.Movie, []*content.Item{first}, intersect.Snapshot{})
			got := c.Get(key, content.Movie).MustGet()
			got.Items = append(got.Items, &content.Item{SourceID: 9})
			So(c.Get(key, content.Movie).MustGet().Items, ShouldHaveLength, 1)
		})

		Convey("Delete and Clear remove entries", func() {
			c.Put(key, content.Movie, &Entry{})
			c.Put(key, content.Series, &Entry{})
			So(c.Len(), ShouldEqual, 2)

			c.Delete(key, content.Movie)
			So(c.Len(), ShouldEqual, 1)

			c.Clear()
			So(c.Len(), ShouldEqual, 0)
		})
	})
}
