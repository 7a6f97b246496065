package recent

import (
	"testing"
	"time"

	"github.com/crosswatch-cli/crosswatch/filesystem"
	"github.com/crosswatch-cli/crosswatch/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchRemember, true)
	viper.Set(key.SearchShowSuggestions, true)
}

func TestRecent(t *testing.T) {
	Convey("Given remembered selections", t, func() {
		clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		now = func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}
		So(store().Set(map[string]*Selection{}), ShouldBeNil)

		So(Remember([]string{"KR", "US"}, []string{"netflix"}), ShouldBeNil)
		So(Remember([]string{"JP"}, []string{"prime", "disney"}), ShouldBeNil)
		So(Remember([]string{"US", "KR"}, []string{"netflix"}), ShouldBeNil)

		Convey("The same selection in another order is one record", func() {
			So(SuggestMany(""), ShouldHaveLength, 2)
		})

		Convey("Suggestions are ranked by use", func() {
			best := Suggest("").MustGet()
			So(best.Rank, ShouldEqual, 2)
			So(best.Countries, ShouldResemble, []string{"US", "KR"})
		})

		Convey("Suggestions match fuzzily", func() {
			matches := SuggestMany("jp prime")
			So(matches, ShouldHaveLength, 1)
			So(matches[0].String(), ShouldEqual, "JP prime,disney")
			So(Suggest("gb").IsAbsent(), ShouldBeTrue)
		})

		Convey("Last is the most recently used", func() {
			So(Last().MustGet().String(), ShouldEqual, "US,KR netflix")
		})

		Convey("Nothing is recorded when disabled", func() {
			viper.Set(key.SearchRemember, false)
			defer viper.Set(key.SearchRemember, true)

			So(Remember([]string{"FR"}, []string{"apple"}), ShouldBeNil)
			So(SuggestMany("FR"), ShouldBeEmpty)
		})

		Convey("Suggestions can be turned off", func() {
			viper.Set(key.SearchShowSuggestions, false)
			defer viper.Set(key.SearchShowSuggestions, true)
			So(SuggestMany(""), ShouldBeEmpty)
		})
	})
}
