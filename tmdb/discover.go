package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/region"
	"github.com/samber/lo"
)

// FetchPage returns one page of titles streaming in req.Country, most popular first.
func (c *Client) FetchPage(ctx context.Context, req content.PageRequest) (*content.Page, error) {
	if req.Page < 1 {
		return nil, fmt.Errorf("invalid page %d", req.Page)
	}

	query := url.Values{
		"watch_region":                  {req.Country},
		"sort_by":                       {"popularity.desc"},
		"page":                          {strconv.Itoa(req.Page)},
		"include_adult":                 {"false"},
		"with_watch_monetization_types": {"flatrate|ads"},
	}

	if ids := region.ProviderIDs(req.Services); len(ids) > 0 {
		query.Set("with_watch_providers", strings.Join(lo.Map(ids, func(id int, _ int) string {
			return strconv.Itoa(id)
		}), "|"))
	}

	var resp discoverResponse
	if err := c.get(ctx, "/discover/"+req.Kind.Path(), query, &resp); err != nil {
		return nil, err
	}

	last := lo.Min([]int{resp.TotalPages, maxPage})
	return &content.Page{
		Number:     req.Page,
		Items:      lo.Map(resp.Results, func(r discoverResult, _ int) *content.Candidate { return c.candidate(r) }),
		IsLastPage: req.Page >= last,
	}, nil
}

func (c *Client) candidate(r discoverResult) *content.Candidate {
	title, date := r.Title, r.ReleaseDate
	if title == "" {
		title, date = r.Name, r.FirstAirDate
	}

	var year int
	if len(date) >= 4 {
		year, _ = strconv.Atoi(date[:4])
	}

	return &content.Candidate{
		SourceID:    r.ID,
		Title:       title,
		Description: r.Overview,
		Rating:      r.VoteAverage,
		Year:        year,
		PosterURL:   c.posterURL(r.PosterPath),
		Genres:      content.GenreNames(r.GenreIDs),
	}
}
