package metadata

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"streamfinder/config"
	"streamfinder/internal/metrics"
	"streamfinder/internal/regions"
	"streamfinder/models"
)

const (
	unknownYear        = "Onbekend"
	missingDescription = "Geen beschrijving beschikbaar."

	defaultMaxResults    = 18
	defaultMaxProviders  = 12
	defaultDetailTimeout = 8 * time.Second
)

// Service searches TMDB and aggregates watch-provider availability per title.
type Service struct {
	tmdb      *tmdbClient
	localizer *regions.Localizer
	search    config.SearchConfig
	metrics   *metrics.Registry
}

// NewService wires a Service. httpc may be nil for a default client.
func NewService(tmdbCfg config.TMDBConfig, searchCfg config.SearchConfig, httpc *http.Client, reg *metrics.Registry) *Service {
	if searchCfg.MaxResults <= 0 {
		searchCfg.MaxResults = defaultMaxResults
	}
	if searchCfg.MaxProviders <= 0 {
		searchCfg.MaxProviders = defaultMaxProviders
	}
	if searchCfg.MaxConcurrency <= 0 {
		searchCfg.MaxConcurrency = searchCfg.MaxResults
	}
	if searchCfg.DetailTimeout <= 0 {
		searchCfg.DetailTimeout = defaultDetailTimeout
	}
	return &Service{
		tmdb:      newTMDBClient(tmdbCfg, searchCfg.Attempts, httpc, reg),
		localizer: regions.NewLocalizer(tmdbCfg.CountryLocale),
		search:    searchCfg,
		metrics:   reg,
	}
}

// Search runs one multi search and enriches every movie/series hit with its
// provider availability. Detail lookups run concurrently and are joined before
// returning; a failed lookup only empties that title's provider data.
//
// The search is detached from ctx cancellation: once started it completes,
// bounded by the per-call timeouts.
func (s *Service) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	if !s.tmdb.isConfigured() {
		return nil, ErrMissingAPIKey
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	ctx = context.WithoutCancel(ctx)

	start := time.Now()
	items, err := s.tmdb.searchMulti(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	titles := filterTitles(items, s.search.MaxResults)

	results := make([]models.SearchResult, len(titles))
	var partial atomic.Int32
	p := pool.New().WithMaxGoroutines(s.search.MaxConcurrency)
	for i, item := range titles {
		p.Go(func() {
			avail, err := s.fetchAvailability(ctx, item)
			if err != nil {
				log.Printf("[metadata] %v; returning title without provider data", err)
				s.metrics.IncPartial()
				partial.Add(1)
				avail = emptyAvailability()
			}
			results[i] = buildSearchResult(item, avail, s.tmdb.imageBaseURL)
		})
	}
	p.Wait()

	log.Printf("[metadata] search query=%q hits=%d titles=%d partial=%d took=%dms",
		query, len(items), len(titles), partial.Load(), time.Since(start).Milliseconds())
	return &models.SearchResponse{Results: results}, nil
}

// fetchAvailability loads and merges the providers of one title under the
// detail timeout. Panics are turned into a PartialDataError.
func (s *Service) fetchAvailability(ctx context.Context, item tmdbSearchItem) (avail availability, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PartialDataError{MediaType: item.MediaType, ID: item.ID, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.search.DetailTimeout)
	defer cancel()

	entries, err := s.tmdb.watchProviders(ctx, item.MediaType, item.ID)
	if err != nil {
		return availability{}, &PartialDataError{MediaType: item.MediaType, ID: item.ID, Err: err}
	}
	return mergeRegions(entries, s.localizer, s.tmdb.imageBaseURL, s.search.MaxProviders), nil
}

// filterTitles keeps movies and series, capped at limit.
func filterTitles(items []tmdbSearchItem, limit int) []tmdbSearchItem {
	if limit <= 0 {
		limit = len(items)
	}
	out := make([]tmdbSearchItem, 0, min(len(items), limit))
	for _, item := range items {
		if len(out) == limit {
			break
		}
		if item.MediaType == "movie" || item.MediaType == "tv" {
			out = append(out, item)
		}
	}
	return out
}

func buildSearchResult(item tmdbSearchItem, avail availability, imageBase string) models.SearchResult {
	title := item.Title
	if title == "" {
		title = item.Name
	}
	description := item.Overview
	if description == "" {
		description = missingDescription
	}
	return models.SearchResult{
		ID:                 item.ID,
		MediaType:          mediaTypeFromTMDB(item.MediaType),
		Title:              title,
		Year:               releaseYear(item.ReleaseDate, item.FirstAirDate),
		Description:        description,
		PosterURL:          buildTMDBImage(imageBase, item.PosterPath, tmdbPosterSize),
		StreamingCountries: avail.countries,
		Providers:          avail.summary,
		Details: models.ProviderDetails{
			SubscriptionProviders: avail.subscription,
			RentProviders:         avail.rent,
			BuyProviders:          avail.buy,
		},
	}
}

func mediaTypeFromTMDB(mediaType string) string {
	if mediaType == "tv" {
		return models.MediaTypeSeries
	}
	return models.MediaTypeMovie
}
