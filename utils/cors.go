package utils

import "net/http"

const (
	allowOrigin  = "*"
	allowMethods = "GET,OPTIONS"
	allowHeaders = "Content-Type"
)

// SetCORSHeaders marks a response as readable from any origin.
func SetCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", allowOrigin)
	h.Set("Access-Control-Allow-Methods", allowMethods)
	h.Set("Access-Control-Allow-Headers", allowHeaders)
}

// corsMiddleware adds the permissive CORS headers to every routed response.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetCORSHeaders(w.Header())
		next.ServeHTTP(w, r)
	})
}

// preflight answers any OPTIONS request with 204 and the CORS headers.
func preflight(w http.ResponseWriter, r *http.Request) {
	SetCORSHeaders(w.Header())
	w.WriteHeader(http.StatusNoContent)
}
