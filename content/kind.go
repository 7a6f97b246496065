// Package content holds the title model shared by the catalog client, the search engine and the presentation layer.
package content

import (
	"fmt"
	"strings"
)

// Kind is the media kind of a title.
type Kind string

const (
	Movie  Kind = "movie"
	Series Kind = "series"
)

// Kinds lists every supported kind.
func Kinds() []Kind {
	return []Kind{Movie, Series}
}

// ParseKind accepts the usual spellings of both kinds.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies", "film", "films":
		return Movie, nil
	case "series", "tv", "show", "shows", "tv show", "tv-show":
		return Series, nil
	default:
		return "", fmt.Errorf("unknown content type %q, expected movie or series", s)
	}
}

// Label is the display name.
func (k Kind) Label() string {
	if k == Series {
		return "TV Show"
	}
	return "Movie"
}

// Path is the catalog path segment for the kind.
func (k Kind) Path() string {
	if k == Series {
		return "tv"
	}
	return "movie"
}

func (k Kind) String() string {
	return string(k)
}
