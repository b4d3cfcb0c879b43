package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"streamfinder/config"
	"streamfinder/internal/metrics"
)

// Minimal TMDB v3 client: multi search and per-title watch providers.

const (
	tmdbPosterSize = "w342"
	tmdbLogoSize   = "w92"

	tmdbDefaultBaseURL  = "https://api.themoviedb.org/3"
	tmdbDefaultImageURL = "https://image.tmdb.org/t/p"
	tmdbSearchLanguage  = "en-US"
	tmdbRetryDelay      = 250 * time.Millisecond
)

type tmdbClient struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	httpc        *http.Client
	attempts     uint
	retryDelay   time.Duration
	metrics      *metrics.Registry
}

func newTMDBClient(cfg config.TMDBConfig, attempts int, httpc *http.Client, reg *metrics.Registry) *tmdbClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	if attempts < 1 {
		attempts = 1
	}
	return &tmdbClient{
		apiKey:       cfg.APIKey,
		baseURL:      orDefault(strings.TrimRight(cfg.BaseURL, "/"), tmdbDefaultBaseURL),
		imageBaseURL: orDefault(strings.TrimRight(cfg.ImageBaseURL, "/"), tmdbDefaultImageURL),
		language:     orDefault(cfg.Language, tmdbSearchLanguage),
		httpc:        httpc,
		attempts:     uint(attempts),
		retryDelay:   tmdbRetryDelay,
		metrics:      reg,
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func (c *tmdbClient) isConfigured() bool {
	return c != nil && c.apiKey != ""
}

type tmdbSearchResponse struct {
	Page    int              `json:"page"`
	Results []tmdbSearchItem `json:"results"`
}

type tmdbSearchItem struct {
	ID           int64  `json:"id"`
	MediaType    string `json:"media_type"` // "movie" | "tv" | "person"
	Title        string `json:"title"`
	Name         string `json:"name"`
	ReleaseDate  string `json:"release_date"`
	FirstAirDate string `json:"first_air_date"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
}

type tmdbWatchProvidersResponse struct {
	ID      int64       `json:"id"`
	Results tmdbRegions `json:"results"`
}

// tmdbRegions keeps the regions of a watch-provider response in the order
// TMDB sent them.
type tmdbRegions []tmdbRegion

type tmdbRegion struct {
	Code      string
	Providers tmdbRegionProviders
}

type tmdbRegionProviders struct {
	Link     string         `json:"link"`
	Flatrate []tmdbProvider `json:"flatrate"`
	Free     []tmdbProvider `json:"free"`
	Ads      []tmdbProvider `json:"ads"`
	Rent     []tmdbProvider `json:"rent"`
	Buy      []tmdbProvider `json:"buy"`
}

func (p tmdbRegionProviders) available() bool {
	return len(p.Flatrate) > 0 || len(p.Free) > 0 || len(p.Ads) > 0 || len(p.Rent) > 0 || len(p.Buy) > 0
}

type tmdbProvider struct {
	ProviderID      int64  `json:"provider_id"`
	ProviderName    string `json:"provider_name"`
	LogoPath        string `json:"logo_path"`
	DisplayPriority int    `json:"display_priority"`
}

func (r *tmdbRegions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*r = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("watch provider results: expected object, got %v", tok)
	}
	out := tmdbRegions{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		code, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("watch provider results: unexpected key %v", keyTok)
		}
		var providers tmdbRegionProviders
		if err := dec.Decode(&providers); err != nil {
			return fmt.Errorf("watch provider region %s: %w", code, err)
		}
		out = append(out, tmdbRegion{Code: code, Providers: providers})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}

func (c *tmdbClient) searchMulti(ctx context.Context, query string) ([]tmdbSearchItem, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("language", c.language)

	var resp tmdbSearchResponse
	if err := c.getJSON(ctx, "search", "/search/multi", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// watchProviders fetches the per-region providers of a title. mediaType is
// TMDB's own type, "movie" or "tv".
func (c *tmdbClient) watchProviders(ctx context.Context, mediaType string, id int64) (tmdbRegions, error) {
	path := "/" + mediaType + "/" + strconv.FormatInt(id, 10) + "/watch/providers"
	var resp tmdbWatchProvidersResponse
	if err := c.getJSON(ctx, "providers", path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *tmdbClient) getJSON(ctx context.Context, endpoint, path string, params url.Values, dst any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	target := c.baseURL + path + "?" + params.Encode()

	err := retry.Do(
		func() error { return c.get(ctx, path, target, dst) },
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	)
	c.metrics.ObserveUpstream(endpoint, upstreamOutcome(err))
	return err
}

func (c *tmdbClient) get(ctx context.Context, path, target string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		// url.Error carries the full URL including the api key; keep only the cause.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &UpstreamError{StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &decodeError{err: err}
	}
	return nil
}

// isTransient reports whether a failed call may succeed when repeated.
// Statuses, malformed bodies and expired contexts are final.
func isTransient(err error) bool {
	var upstream *UpstreamError
	var decode *decodeError
	switch {
	case errors.As(err, &upstream), errors.As(err, &decode):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}

func upstreamOutcome(err error) string {
	var upstream *UpstreamError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &upstream):
		return "status"
	default:
		return "error"
	}
}

// buildTMDBImage templates an image CDN URL. An empty path has no image.
func buildTMDBImage(base, path, size string) *string {
	if path == "" {
		return nil
	}
	full := base + "/" + size + path
	return &full
}

// releaseYear takes the year from a movie release date or a series first air
// date, falling back to "Onbekend".
func releaseYear(releaseDate, firstAirDate string) string {
	date := releaseDate
	if date == "" {
		date = firstAirDate
	}
	if len(date) > 4 {
		date = date[:4]
	}
	if date == "" {
		return unknownYear
	}
	return date
}
