package utils

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter constructs the base mux router with common routes. Paths are not
// cleaned so traversal attempts reach the handlers unchanged.
func NewRouter() *mux.Router {
	r := mux.NewRouter().SkipClean(true)

	r.Use(corsMiddleware)

	// Preflight for every path; registered first so it wins over method-specific routes.
	r.Methods(http.MethodOptions).HandlerFunc(preflight)

	r.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}).Methods(http.MethodGet)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})
	return r
}
