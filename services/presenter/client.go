package presenter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"streamfinder/models"
	"streamfinder/utils"
)

const (
	searchPath           = "/api/search"
	defaultClientTimeout = 30 * time.Second
)

// BackendClient calls the Aggregator, trying each candidate base URL in order.
type BackendClient struct {
	resty *resty.Client
	bases []string
}

// NewBackendClient creates a client for the configured base followed by the
// fallbacks. Bases are trimmed and deduplicated.
func NewBackendClient(configured string, fallbacks []string, timeout time.Duration) *BackendClient {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &BackendClient{
		resty: rc,
		bases: utils.BaseURLs(append([]string{configured}, fallbacks...)...),
	}
}

// Bases returns the candidate base URLs in the order they are tried.
func (c *BackendClient) Bases() []string {
	return append([]string(nil), c.bases...)
}

// Search runs query against the first candidate that answers with successful JSON.
func (c *BackendClient) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	lastErr := "onbekend"

	for _, base := range c.bases {
		resp, err := c.resty.R().
			SetContext(ctx).
			SetQueryParam("query", query).
			Get(base + searchPath)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			log.Printf("[web] backend %s unreachable: %v", base, err)
			lastErr = err.Error()
			continue
		}

		if !strings.Contains(resp.Header().Get("Content-Type"), "application/json") {
			lastErr = "Geen JSON op " + base
			continue
		}

		if !resp.IsSuccess() {
			var body models.ErrorResponse
			if err := json.Unmarshal(resp.Body(), &body); err != nil || body.Error == "" {
				lastErr = "Onbekende fout"
			} else {
				lastErr = body.Error
			}
			continue
		}

		var out models.SearchResponse
		if err := json.Unmarshal(resp.Body(), &out); err != nil {
			lastErr = err.Error()
			continue
		}
		return &out, nil
	}

	return nil, &UnreachableError{Last: lastErr}
}

// UnreachableError is returned when no candidate base produced results. Last
// holds the failure of the final candidate.
type UnreachableError struct {
	Last string
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("Backend niet bereikbaar. Zet APP_API_BASE naar je live backend URL. Laatste fout: %s", e.Last)
}
