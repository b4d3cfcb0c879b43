package models

import "strconv"

// Media types exposed by the search API.
const (
	MediaTypeMovie  = "movie"
	MediaTypeSeries = "series"
)

// Provider is a streaming, rental or purchase service offering a title.
type Provider struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	LogoURL *string `json:"logoUrl"`
}

// ProviderDetails holds the full, deduplicated provider buckets of a title.
type ProviderDetails struct {
	SubscriptionProviders []Provider `json:"subscriptionProviders"` // flatrate + free + ads
	RentProviders         []Provider `json:"rentProviders"`
	BuyProviders          []Provider `json:"buyProviders"`
}

// SearchResult is one normalized title in a search response.
type SearchResult struct {
	ID                 int64           `json:"id"`
	MediaType          string          `json:"mediaType"` // "movie" | "series"
	Title              string          `json:"title"`
	Year               string          `json:"year"`
	Description        string          `json:"description"`
	PosterURL          *string         `json:"posterUrl"`
	StreamingCountries []string        `json:"streamingCountries"` // localized, sorted, unique
	Providers          []Provider      `json:"providers"`          // capped summary of subscription providers
	Details            ProviderDetails `json:"details"`
}

// Key identifies a result within a response; TMDB ids are only unique per media type.
func (r SearchResult) Key() string {
	return r.MediaType + ":" + strconv.FormatInt(r.ID, 10)
}

// SearchResponse is returned by GET /api/search.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}
