package presenter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendClientBases(t *testing.T) {
	c := NewBackendClient("https://api.example.com//", []string{"http://127.0.0.1:3000", "https://api.example.com", "http://localhost:3000"}, time.Second)
	assert.Equal(t, []string{"https://api.example.com", "http://127.0.0.1:3000", "http://localhost:3000"}, c.Bases())

	c = NewBackendClient("", []string{"http://127.0.0.1:3000"}, time.Second)
	assert.Equal(t, []string{"http://127.0.0.1:3000"}, c.Bases())
}

func TestBackendClientFallsThrough(t *testing.T) {
	html := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer html.Close()

	var gotQuery string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		assert.Equal(t, "/api/search", r.URL.Path)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"results":[{"id":7,"mediaType":"movie","title":"Se7en"}]}`))
	}))
	defer api.Close()

	c := NewBackendClient(html.URL, []string{api.URL}, time.Second)
	resp, err := c.Search(context.Background(), "se7en & co")
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Se7en", resp.Results[0].Title)
	assert.Equal(t, "se7en & co", gotQuery)
}

func TestBackendClientReportsLastError(t *testing.T) {
	html := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("nope"))
	}))
	defer html.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"Kon TMDB zoekresultaten niet ophalen."}`))
	}))
	defer failing.Close()

	c := NewBackendClient(failing.URL, []string{html.URL}, time.Second)
	_, err := c.Search(context.Background(), "x")
	var unreachable *UnreachableError
	require.True(t, errors.As(err, &unreachable))
	assert.Equal(t, "Geen JSON op "+html.URL, unreachable.Last)

	c = NewBackendClient(html.URL, []string{failing.URL}, time.Second)
	_, err = c.Search(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, "Backend niet bereikbaar. Zet APP_API_BASE naar je live backend URL. Laatste fout: Kon TMDB zoekresultaten niet ophalen.", err.Error())
}

func TestBackendClientUnknownError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewBackendClient(srv.URL, nil, time.Second).Search(context.Background(), "x")
	var unreachable *UnreachableError
	require.True(t, errors.As(err, &unreachable))
	assert.Equal(t, "Onbekende fout", unreachable.Last)
}

func TestBackendClientNoBases(t *testing.T) {
	_, err := NewBackendClient("", nil, time.Second).Search(context.Background(), "x")
	var unreachable *UnreachableError
	require.True(t, errors.As(err, &unreachable))
	assert.Equal(t, "onbekend", unreachable.Last)
}
