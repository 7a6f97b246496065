// Package tmdb is the catalog client. It lists popular titles per region and looks up where a title streams.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/crosswatch-cli/crosswatch/auth"
	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/log"
	"github.com/crosswatch-cli/crosswatch/network"
	"github.com/crosswatch-cli/crosswatch/util"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

// maxPage is the last page the discover endpoint serves.
const maxPage = 500

var (
	ErrNoAPIKey = errors.New("no catalog API key configured, run \"crosswatch auth set\" or set CROSSWATCH_CATALOG_API_KEY")
	ErrStatus   = errors.New("unexpected catalog response status")
)

// Options configures a Client.
type Options struct {
	BaseURL           string
	ImageBaseURL      string
	Language          string
	APIKey            string
	RequestsPerSecond int
	HTTPClient        *http.Client
}

// Client talks to the TMDB v3 API.
type Client struct {
	baseURL      string
	imageBaseURL string
	language     string
	apiKey       string
	http         *http.Client
	limiter      *rate.Limiter
}

// New validates options and returns a client.
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if opts.BaseURL == "" {
		return nil, errors.New("catalog base url is empty")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = network.Client
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Client{
		baseURL:      strings.TrimSuffix(opts.BaseURL, "/"),
		imageBaseURL: strings.TrimSuffix(opts.ImageBaseURL, "/"),
		language:     opts.Language,
		apiKey:       opts.APIKey,
		http:         httpClient,
		limiter:      rate.NewLimiter(limit, max(opts.RequestsPerSecond, 1)),
	}, nil
}

// NewFromConfig builds a client from the configuration, falling back to the keyring for the API key.
func NewFromConfig() (*Client, error) {
	apiKey := viper.GetString(key.CatalogAPIKey)
	if apiKey == "" {
		stored, err := auth.GetAPIKey()
		if err != nil {
			log.Warnf("keyring unavailable: %v", err)
		}
		apiKey = stored
	}

	return New(Options{
		BaseURL:           viper.GetString(key.CatalogBaseURL),
		ImageBaseURL:      viper.GetString(key.CatalogImageBaseURL),
		Language:          viper.GetString(key.CatalogLanguage),
		APIKey:            apiKey,
		RequestsPerSecond: viper.GetInt(key.CatalogRequestsPerSecond),
		HTTPClient:        network.New(time.Duration(viper.GetInt(key.CatalogTimeout)) * time.Second),
	})
}

// get performs a GET against path and decodes the JSON body into target.
func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if query == nil {
		query = url.Values{}
	}
	if c.language != "" {
		query.Set("language", c.language)
	}

	// v4 read tokens are JWTs and go into the Authorization header, v3 keys into the query.
	bearer := strings.HasPrefix(c.apiKey, "eyJ")
	if !bearer {
		query.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if bearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	log.Debugf("catalog GET %s", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request %s: %w", path, err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		var apiErr statusResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.StatusMessage != "" {
			return fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, apiErr.StatusMessage)
		}
		return fmt.Errorf("%w %d", ErrStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) posterURL(path string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + path
}

const webURL = "https://www.themoviedb.org"

// WebURL is the public catalog page of a title.
func WebURL(kind content.Kind, sourceID int) string {
	return fmt.Sprintf("%s/%s/%d", webURL, kind.Path(), sourceID)
}
