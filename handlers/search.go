package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"streamfinder/models"
	metadatapkg "streamfinder/services/metadata"
)

const (
	msgMissingAPIKey = "Server mist TMDB_API_KEY configuratie."
	msgMissingQuery  = "Query parameter is verplicht."
	msgUpstream      = "Kon TMDB zoekresultaten niet ophalen."
	msgInternal      = "Er ging iets mis bij het ophalen van resultaten."
)

//go:generate mockgen -destination=mock_search_service_test.go -package=handlers . searchService

type searchService interface {
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
}

var _ searchService = (*metadatapkg.Service)(nil)

type SearchHandler struct {
	Service searchService
}

func NewSearchHandler(svc searchService) *SearchHandler {
	return &SearchHandler{Service: svc}
}

// Search handles GET /api/search?query=.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	resp, err := h.Service.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		status, msg := classifySearchError(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[http] search failed: %v", err)
		}
		writeJSON(w, status, models.ErrorResponse{Error: msg})
		return
	}
	if resp.Results == nil {
		resp.Results = []models.SearchResult{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func classifySearchError(err error) (int, string) {
	var upstream *metadatapkg.UpstreamError
	switch {
	case errors.Is(err, metadatapkg.ErrMissingAPIKey):
		return http.StatusInternalServerError, msgMissingAPIKey
	case errors.Is(err, metadatapkg.ErrEmptyQuery):
		return http.StatusBadRequest, msgMissingQuery
	case errors.As(err, &upstream):
		return upstream.StatusCode, msgUpstream
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[http] encode response: %v", err)
	}
}
