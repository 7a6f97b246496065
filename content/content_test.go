package content

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseKind(t *testing.T) {
	Convey("ParseKind", t, func() {
		for _, s := range []string{"movie", "Movies", " film "} {
			k, err := ParseKind(s)
			So(err, ShouldBeNil)
			So(k, ShouldEqual, Movie)
		}

		for _, s := range []string{"series", "TV", "tv show"} {
			k, err := ParseKind(s)
			So(err, ShouldBeNil)
			So(k, ShouldEqual, Series)
		}

		_, err := ParseKind("podcast")
		So(err, ShouldNotBeNil)
	})

	Convey("Kind paths and labels", t, func() {
		So(Movie.Path(), ShouldEqual, "movie")
		So(Series.Path(), ShouldEqual, "tv")
		So(Series.Label(), ShouldEqual, "TV Show")
	})
}

func TestItem(t *testing.T) {
	Convey("Given a candidate", t, func() {
		c := &Candidate{SourceID: 42, Title: "Parasite", Year: 2019, Genres: []string{"Comedy", "Thriller", "Drama"}}

		Convey("NewItem copies fields and assigns a fresh id", func() {
			a := NewItem(c, Movie, map[string][]string{"KR": {"netflix"}, "US": {"hulu", "netflix"}})
			b := NewItem(c, Movie, nil)

			So(a.ID, ShouldNotBeEmpty)
			So(a.ID, ShouldNotEqual, b.ID)
			So(a.SourceID, ShouldEqual, 42)
			So(a.Genres, ShouldResemble, []string{"Comedy", "Thriller", "Drama"})
			So(a.String(), ShouldEqual, "Parasite (2019)")

			Convey("Genres are not shared with the candidate", func() {
				c.Genres[0] = "Horror"
				So(a.Genres[0], ShouldEqual, "Comedy")
			})

			Convey("Services is the ordered union", func() {
				So(a.Services([]string{"KR", "US"}), ShouldResemble, []string{"netflix", "hulu"})
			})

			Convey("HasGenre", func() {
				So(a.HasGenre("Drama"), ShouldBeTrue)
				So(a.HasGenre("War"), ShouldBeFalse)
			})
		})
	})
}

func TestGenreNames(t *testing.T) {
	Convey("GenreNames keeps order and drops unknown ids", t, func() {
		So(GenreNames([]int{18, 1, 28}), ShouldResemble, []string{"Drama", "Action"})
		name, ok := GenreName(10765)
		So(ok, ShouldBeTrue)
		So(name, ShouldEqual, "Sci-Fi & Fantasy")
	})
}
