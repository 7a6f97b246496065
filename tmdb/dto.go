package tmdb

type statusResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// discoverResult covers both movies (title, release_date) and series (name, first_air_date).
type discoverResult struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	GenreIDs     []int   `json:"genre_ids"`
}

type discoverResponse struct {
	Page         int              `json:"page"`
	Results      []discoverResult `json:"results"`
	TotalPages   int              `json:"total_pages"`
	TotalResults int              `json:"total_results"`
}

type watchProvider struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
}

type regionProviders struct {
	Link     string          `json:"link"`
	Flatrate []watchProvider `json:"flatrate"`
	Ads      []watchProvider `json:"ads"`
	Free     []watchProvider `json:"free"`
	Rent     []watchProvider `json:"rent"`
	Buy      []watchProvider `json:"buy"`
}

type watchProvidersResponse struct {
	ID      int                        `json:"id"`
	Results map[string]regionProviders `json:"results"`
}
