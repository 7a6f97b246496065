package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crosswatch-cli/crosswatch/content"
	. "github.com/smartystreets/goconvey/convey"
)

const discoverBody = `{
  "page": 2,
  "total_pages": 2,
  "total_results": 22,
  "results": [
    {"id": 496243, "title": "Parasite", "overview": "All unemployed.", "vote_average": 8.5,
     "release_date": "2019-05-30", "poster_path": "/p.jpg", "genre_ids": [35, 53, 18, 1]},
    {"id": 93405, "name": "Squid Game", "overview": "Hundreds of players.", "vote_average": 7.8,
     "first_air_date": "2021-09-17", "poster_path": "", "genre_ids": [10759, 9648]}
  ]
}`

const providersBody = `{
  "id": 496243,
  "results": {
    "KR": {"flatrate": [{"provider_id": 8, "provider_name": "Netflix"}, {"provider_id": 1796, "provider_name": "Netflix basic with Ads"}]},
    "US": {"flatrate": [{"provider_id": 15, "provider_name": "Hulu"}], "ads": [{"provider_id": 15, "provider_name": "Hulu"}],
           "rent": [{"provider_id": 2, "provider_name": "Apple TV"}]}
  }
}`

func newTestClient(handler http.HandlerFunc, apiKey string) (*Client, func()) {
	srv := httptest.NewServer(handler)
	c, err := New(Options{
		BaseURL:      srv.URL,
		ImageBaseURL: "https://img.example/w500/",
		Language:     "en-US",
		APIKey:       apiKey,
		HTTPClient:   srv.Client(),
	})
	if err != nil {
		panic(err)
	}
	return c, srv.Close
}

func TestNew(t *testing.T) {
	Convey("New", t, func() {
		Convey("Requires an API key", func() {
			_, err := New(Options{BaseURL: "http://x"})
			So(errors.Is(err, ErrNoAPIKey), ShouldBeTrue)
		})

		Convey("Requires a base url", func() {
			_, err := New(Options{APIKey: "k"})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestFetchPage(t *testing.T) {
	Convey("Given a catalog serving a discover page", t, func() {
		var got *http.Request
		client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			got = r
			_, _ = w.Write([]byte(discoverBody))
		}, "v3key")
		defer closeFn()

		page, err := client.FetchPage(context.Background(), content.PageRequest{
			Country:  "KR",
			Kind:     content.Movie,
			Page:     2,
			Services: []string{"netflix", "prime"},
		})
		So(err, ShouldBeNil)

		Convey("It queries the region and the provider filter", func() {
			So(got.URL.Path, ShouldEqual, "/discover/movie")
			q := got.URL.Query()
			So(q.Get("watch_region"), ShouldEqual, "KR")
			So(q.Get("page"), ShouldEqual, "2")
			So(q.Get("sort_by"), ShouldEqual, "popularity.desc")
			So(q.Get("with_watch_providers"), ShouldEqual, "8|9|119")
			So(q.Get("api_key"), ShouldEqual, "v3key")
			So(q.Get("language"), ShouldEqual, "en-US")
		})

		Convey("It maps movies and series to candidates", func() {
			So(page.Items, ShouldHaveLength, 2)

			movie := page.Items[0]
			So(movie.SourceID, ShouldEqual, 496243)
			So(movie.Title, ShouldEqual, "Parasite")
			So(movie.Year, ShouldEqual, 2019)
			So(movie.PosterURL, ShouldEqual, "https://img.example/w500/p.jpg")
			So(movie.Genres, ShouldResemble, []string{"Comedy", "Thriller", "Drama"})

			show := page.Items[1]
			So(show.Title, ShouldEqual, "Squid Game")
			So(show.Year, ShouldEqual, 2021)
			So(show.PosterURL, ShouldBeEmpty)
			So(show.Genres, ShouldResemble, []string{"Action & Adventure", "Mystery"})
		})

		Convey("It marks the final page", func() {
			So(page.Number, ShouldEqual, 2)
			So(page.IsLastPage, ShouldBeTrue)
		})
	})

	Convey("Given a v4 read token", t, func() {
		var got *http.Request
		client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			got = r
			_, _ = w.Write([]byte(`{"page":1,"total_pages":3,"results":[]}`))
		}, "eyJhbGciOi.token")
		defer closeFn()

		page, err := client.FetchPage(context.Background(), content.PageRequest{Country: "US", Kind: content.Series, Page: 1})
		So(err, ShouldBeNil)
		So(page.IsLastPage, ShouldBeFalse)
		So(got.URL.Path, ShouldEqual, "/discover/tv")
		So(got.Header.Get("Authorization"), ShouldEqual, "Bearer eyJhbGciOi.token")
		So(got.URL.Query().Has("api_key"), ShouldBeFalse)
		So(got.URL.Query().Has("with_watch_providers"), ShouldBeFalse)
	})

	Convey("Given a failing catalog", t, func() {
		client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key"}`))
		}, "bad")
		defer closeFn()

		_, err := client.FetchPage(context.Background(), content.PageRequest{Country: "US", Kind: content.Movie, Page: 1})
		So(errors.Is(err, ErrStatus), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "Invalid API key")
	})

	Convey("Page numbers start at one", t, func() {
		client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {}, "k")
		defer closeFn()

		_, err := client.FetchPage(context.Background(), content.PageRequest{Country: "US", Kind: content.Movie})
		So(err, ShouldNotBeNil)
	})
}

func TestFetchProviders(t *testing.T) {
	Convey("Given a catalog serving watch providers", t, func() {
		var path string
		client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			_, _ = w.Write([]byte(providersBody))
		}, "k")
		defer closeFn()

		got, err := client.FetchProviders(context.Background(), 496243, content.Movie, []string{"KR", "US", "JP"})
		So(err, ShouldBeNil)
		So(path, ShouldEqual, "/movie/496243/watch/providers")

		Convey("Streaming offers are kept per country without duplicates", func() {
			So(got["KR"], ShouldResemble, []int{8, 1796})
			So(got["US"], ShouldResemble, []int{15})
		})

		Convey("Countries without listings are present and empty", func() {
			So(got, ShouldContainKey, "JP")
			So(got["JP"], ShouldBeEmpty)
		})
	})

	Convey("A canceled context stops the request", t, func() {
		client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(providersBody))
		}, "k")
		defer closeFn()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.FetchProviders(ctx, 1, content.Series, []string{"US"})
		So(err, ShouldNotBeNil)
	})
}

func TestPosterURL(t *testing.T) {
	Convey("posterURL joins without doubling slashes", t, func() {
		c := &Client{imageBaseURL: "https://img.example/w500"}
		So(c.posterURL("/a.jpg"), ShouldEqual, "https://img.example/w500/a.jpg")
		So(c.posterURL(""), ShouldBeEmpty)
	})
}

func TestWebURL(t *testing.T) {
	Convey("WebURL uses the catalog path of the kind", t, func() {
		So(WebURL(content.Movie, 496243), ShouldEqual, "https://www.themoviedb.org/movie/496243")
		So(WebURL(content.Series, 93405), ShouldEqual, "https://www.themoviedb.org/tv/93405")
	})
}
