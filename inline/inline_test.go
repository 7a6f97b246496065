package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/crosswatch-cli/crosswatch/availability"
	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type catalog struct {
	items []*content.Candidate
	err   error
}

func (c *catalog) FetchPage(_ context.Context, req content.PageRequest) (*content.Page, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &content.Page{Number: req.Page, Items: c.items, IsLastPage: true}, nil
}

type resolver map[int]availability.Availability

func (r resolver) Resolve(_ context.Context, sourceID int, _ content.Kind, _ []string) (availability.Availability, error) {
	return r[sourceID], nil
}

func newOptions(out *bytes.Buffer) *Options {
	return &Options{
		Out: out,
		Catalog: &catalog{items: []*content.Candidate{
			{SourceID: 1, Title: "Parasite", Year: 2019, Rating: 8.5, Genres: []string{"Comedy", "Thriller"}, Description: "Greed and class discrimination threaten a newly formed symbiotic relationship."},
			{SourceID: 2, Title: "Okja", Year: 2017, Rating: 7.3, Genres: []string{"Adventure"}},
			{SourceID: 3, Title: "Burning", Year: 2018, Rating: 7.4, Genres: []string{"Mystery"}},
		}},
		Resolver: resolver{
			1: {"KR": {"netflix"}, "US": {"hulu"}},
			2: {"KR": {"netflix"}, "US": {"netflix"}},
			3: {"KR": {"netflix"}},
		},
		Countries: []string{"KR", "US"},
		Services:  []string{"netflix", "hulu"},
		Kind:      content.Movie,
		Batches:   1,
	}
}

func TestRun(t *testing.T) {
	Convey("Given a search in json mode", t, func() {
		var buf bytes.Buffer
		options := newOptions(&buf)
		options.Json = true

		So(Run(context.Background(), options), ShouldBeNil)

		var output Output
		So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)

		Convey("Only titles streaming in both countries are listed", func() {
			So(output.Result, ShouldHaveLength, 2)
			So(output.Result[0].Title, ShouldEqual, "Parasite")
			So(output.Result[0].AvailableOn["US"], ShouldResemble, []string{"hulu"})
			So(output.Result[1].Title, ShouldEqual, "Okja")
		})

		Convey("The selection and progress are echoed", func() {
			So(output.Selection.Countries, ShouldResemble, []string{"KR", "US"})
			So(output.Selection.Kind, ShouldEqual, content.Movie)
			So(output.Exhausted, ShouldBeTrue)
			So(output.Stats.Checked, ShouldEqual, 3)
		})
	})

	Convey("Given a genre filter", t, func() {
		var buf bytes.Buffer
		options := newOptions(&buf)
		options.Json = true
		filter, err := ParseFilter("genre:thriller")
		So(err, ShouldBeNil)
		options.Filter = mo.Some(filter)

		So(Run(context.Background(), options), ShouldBeNil)

		var output Output
		So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
		So(output.Result, ShouldHaveLength, 1)
		So(output.Result[0].Title, ShouldEqual, "Parasite")
	})

	Convey("Given text mode", t, func() {
		var buf bytes.Buffer
		options := newOptions(&buf)
		options.Description = true

		So(Run(context.Background(), options), ShouldBeNil)
		text := buf.String()

		So(text, ShouldContainSubstring, "Parasite (2019)  8.5")
		So(text, ShouldContainSubstring, "  US: Hulu")
		So(text, ShouldContainSubstring, "    Greed and class")
		So(text, ShouldContainSubstring, "2 titles in KR and US")
	})

	Convey("An empty result is still valid json", t, func() {
		var buf bytes.Buffer
		options := newOptions(&buf)
		options.Json = true
		options.Services = []string{"apple"}

		So(Run(context.Background(), options), ShouldBeNil)

		var output Output
		So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
		So(output.Result, ShouldNotBeNil)
		So(output.Result, ShouldBeEmpty)
	})

	Convey("Catalog failures are returned", t, func() {
		var buf bytes.Buffer
		options := newOptions(&buf)
		options.Catalog = &catalog{err: errors.New("offline")}

		So(Run(context.Background(), options), ShouldNotBeNil)
		So(buf.Len(), ShouldEqual, 0)
	})

	Convey("An empty selection is refused", t, func() {
		options := newOptions(&bytes.Buffer{})
		options.Countries = nil
		So(Run(context.Background(), options), ShouldNotBeNil)
	})
}

func TestParseFilter(t *testing.T) {
	Convey("ParseFilter", t, func() {
		items := []*content.Item{
			{Title: "Parasite", Genres: []string{"Drama"}},
			{Title: "Mother", Genres: []string{"Crime"}},
			{Title: "The Host", Genres: []string{"Horror", "Drama"}},
		}

		Convey("first:n keeps a prefix", func() {
			f, err := ParseFilter("first:2")
			So(err, ShouldBeNil)
			So(f(items), ShouldHaveLength, 2)
		})

		Convey("@text@ matches titles", func() {
			f, err := ParseFilter("@host@")
			So(err, ShouldBeNil)
			So(f(items)[0].Title, ShouldEqual, "The Host")
		})

		Convey("genre: ignores case", func() {
			f, err := ParseFilter("genre:DRAMA")
			So(err, ShouldBeNil)
			So(f(items), ShouldHaveLength, 2)
		})

		Convey("Anything else is an error", func() {
			_, err := ParseFilter("last")
			So(err, ShouldNotBeNil)
			_, err = ParseFilter("first:x")
			So(err, ShouldNotBeNil)
		})
	})
}
