package presenter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamfinder/models"
)

type fakeSearcher struct {
	resp    *models.SearchResponse
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string) (*models.SearchResponse, error) {
	f.queries = append(f.queries, query)
	return f.resp, f.err
}

func sampleResults() []models.SearchResult {
	return []models.SearchResult{
		{ID: 1, MediaType: models.MediaTypeMovie, Title: "One", StreamingCountries: []string{"Nederland", "Duitsland"}},
		{ID: 1, MediaType: models.MediaTypeSeries, Title: "One: The Series", StreamingCountries: []string{"België"}},
	}
}

func TestSessionSearchStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query", func(t *testing.T) {
		searcher := &fakeSearcher{}
		sess := &Session{}
		sess.Search(ctx, searcher, "   ")
		assert.Equal(t, "Vul een zoekterm in.", sess.View().Status)
		assert.Empty(t, searcher.queries)
	})

	t.Run("no results", func(t *testing.T) {
		sess := &Session{}
		sess.Search(ctx, &fakeSearcher{resp: &models.SearchResponse{Results: []models.SearchResult{}}}, "x")
		assert.Equal(t, "Geen resultaten gevonden.", sess.View().Status)
	})

	t.Run("results", func(t *testing.T) {
		searcher := &fakeSearcher{resp: &models.SearchResponse{Results: sampleResults()}}
		sess := &Session{}
		sess.Search(ctx, searcher, " one ")
		view := sess.View()
		assert.Equal(t, "2 resultaat/resultaten gevonden.", view.Status)
		assert.Equal(t, "one", view.Query)
		assert.Len(t, view.Cards, 2)
		assert.Equal(t, []string{"one"}, searcher.queries)
	})

	t.Run("error", func(t *testing.T) {
		sess := &Session{}
		sess.Search(ctx, &fakeSearcher{err: errors.New("kapot")}, "x")
		view := sess.View()
		assert.Equal(t, "Fout: kapot", view.Status)
		assert.Empty(t, view.Cards)
	})
}

func TestSessionOpenClose(t *testing.T) {
	sess := &Session{}
	sess.Search(context.Background(), &fakeSearcher{resp: &models.SearchResponse{Results: sampleResults()}}, "one")

	require.NoError(t, sess.Open("series:1"))
	view := sess.View()
	require.True(t, view.DetailsOpen)
	assert.Equal(t, "One: The Series", view.Details.Title)

	sess.CheckCountry("belgie")
	assert.Equal(t, CheckStateYes, sess.View().Details.Check.State)

	sess.Close()
	view = sess.View()
	assert.False(t, view.DetailsOpen)
	assert.Len(t, view.Cards, 2)
	active, ok := sess.Active()
	require.True(t, ok)
	assert.Equal(t, "series:1", active.Key())

	// Reopening rebuilds the view, clearing the previous check.
	require.NoError(t, sess.Open("movie:1"))
	view = sess.View()
	assert.Equal(t, "One", view.Details.Title)
	assert.Empty(t, view.Details.Check.Message)

	assert.ErrorIs(t, sess.Open("movie:99"), ErrUnknownResult)
	active, _ = sess.Active()
	assert.Equal(t, "movie:1", active.Key())
}

func TestSessionCheckWithoutActiveEntity(t *testing.T) {
	sess := &Session{}
	got := sess.CheckCountry("Nederland")
	assert.Equal(t, "Vul een land in om te controleren.", got.Message)
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(time.Minute)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	first, created := store.Get("")
	require.True(t, created)
	require.NotEmpty(t, first.ID)

	again, created := store.Get(first.ID)
	assert.False(t, created)
	assert.Same(t, first, again)

	_, created = store.Get("unknown-id")
	assert.True(t, created)
	assert.Equal(t, 2, store.Len())

	assert.Equal(t, 0, store.Sweep(base.Add(30*time.Second)))
	assert.Equal(t, 2, store.Sweep(base.Add(2*time.Minute)))
	assert.Equal(t, 0, store.Len())
}
