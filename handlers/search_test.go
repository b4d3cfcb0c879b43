package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"streamfinder/models"
	"streamfinder/services/metadata"
)

func TestSearchHandlerSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMocksearchService(ctrl)
	svc.EXPECT().Search(gomock.Any(), "inception").Return(&models.SearchResponse{
		Results: []models.SearchResult{{ID: 27205, MediaType: models.MediaTypeMovie, Title: "Inception"}},
	}, nil)

	rec := httptest.NewRecorder()
	NewSearchHandler(svc).Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?query=inception", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected permissive CORS header, got %q", got)
	}
	var body models.SearchResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Results) != 1 || body.Results[0].Title != "Inception" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestSearchHandlerEmptyResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMocksearchService(ctrl)
	svc.EXPECT().Search(gomock.Any(), "zzz").Return(&models.SearchResponse{}, nil)

	rec := httptest.NewRecorder()
	NewSearchHandler(svc).Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?query=zzz", nil))

	if strings.TrimSpace(rec.Body.String()) != `{"results":[]}` {
		t.Fatalf("expected empty results array, got %s", rec.Body.String())
	}
}

func TestSearchHandlerErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"missing key", metadata.ErrMissingAPIKey, http.StatusInternalServerError, "Server mist TMDB_API_KEY configuratie."},
		{"empty query", metadata.ErrEmptyQuery, http.StatusBadRequest, "Query parameter is verplicht."},
		{"upstream", fmt.Errorf("search %q: %w", "x", &metadata.UpstreamError{StatusCode: http.StatusUnauthorized}), http.StatusUnauthorized, "Kon TMDB zoekresultaten niet ophalen."},
		{"internal", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "Er ging iets mis bij het ophalen van resultaten."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := NewMocksearchService(ctrl)
			svc.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewSearchHandler(svc).Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?query=x", nil))

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			var body models.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.msg {
				t.Fatalf("expected %q, got %q", tt.msg, body.Error)
			}
			if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
				t.Fatal("expected CORS header on error responses")
			}
		})
	}
}
