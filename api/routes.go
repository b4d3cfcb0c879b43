package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"

	"streamfinder/handlers"
	"streamfinder/internal/metrics"
	"streamfinder/models"
	"streamfinder/services/presenter"
	"streamfinder/utils"
)

// Searcher is the search operation behind GET /api/search.
type Searcher interface {
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
}

// NewAggregatorRouter wires the Aggregator HTTP surface: search, health,
// version, metrics and the public directory for every other GET.
func NewAggregatorRouter(svc Searcher, fs afero.Fs, publicDir string, reg *metrics.Registry) *mux.Router {
	r := utils.NewRouter()
	r.Use(RequestIDMiddleware(), RecoverMiddleware(), AccessLogMiddleware("http"))

	search := handlers.NewSearchHandler(svc)
	r.Handle("/api/search", reg.Wrap("search", http.HandlerFunc(search.Search))).Methods(http.MethodGet)
	r.HandleFunc("/api/version", handlers.GetVersion).Methods(http.MethodGet)
	r.Handle("/api/metrics", reg.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(reg.Wrap("static", handlers.NewStaticHandler(fs, publicDir))).Methods(http.MethodGet)
	return r
}

// NewWebRouter wires the Presenter UI.
func NewWebRouter(sessions *presenter.SessionStore, backend presenter.Searcher) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestIDMiddleware(), RecoverMiddleware(), AccessLogMiddleware("web"))
	handlers.NewWebHandler(sessions, backend).Register(r)
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})
	return r
}
