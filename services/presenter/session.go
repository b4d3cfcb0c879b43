package presenter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"streamfinder/models"
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 30 * time.Minute

// ErrUnknownResult is returned by Open for a key that is not in the current results.
var ErrUnknownResult = errors.New("result not found")

// Searcher runs a search against the Aggregator.
type Searcher interface {
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
}

// View is a rendering snapshot of a session.
type View struct {
	Query       string
	Status      string
	Cards       []Card
	Details     *Details
	DetailsOpen bool
}

// Session is the UI state of one browser: the last results, the status line
// and at most one active entity shown in the details view.
type Session struct {
	ID string

	mu          sync.Mutex
	query       string
	status      string
	results     []models.SearchResult
	cards       []Card
	active      *models.SearchResult
	details     *Details
	detailsOpen bool
	lastSeen    time.Time
}

// Search replaces the result list with the outcome of query.
func (s *Session) Search(ctx context.Context, searcher Searcher, query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	s.query = query
	s.results, s.cards = nil, nil
	s.detailsOpen = false
	if query == "" {
		s.status = "Vul een zoekterm in."
		s.mu.Unlock()
		return
	}
	s.status = "Zoeken..."
	s.mu.Unlock()

	resp, err := searcher.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("[web] search %q failed: %v", query, err)
		s.status = "Fout: " + err.Error()
		return
	}
	if resp == nil || len(resp.Results) == 0 {
		s.status = "Geen resultaten gevonden."
		return
	}
	s.results = resp.Results
	s.cards = make([]Card, len(resp.Results))
	for i, r := range resp.Results {
		s.cards[i] = NewCard(r)
	}
	s.status = fmt.Sprintf("%d resultaat/resultaten gevonden.", len(resp.Results))
}

// Open makes the result with key the active entity and rebuilds the details
// view from scratch.
func (s *Session) Open(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.results {
		if s.results[i].Key() == key {
			active := s.results[i]
			details := NewDetails(active)
			s.active = &active
			s.details = &details
			s.detailsOpen = true
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownResult, key)
}

// Close hides the details view. The active entity and results are kept.
func (s *Session) Close() {
	s.mu.Lock()
	s.detailsOpen = false
	s.mu.Unlock()
}

// CheckCountry runs the country check against the active entity and stores
// the outcome in the details view.
func (s *Session) CheckCountry(input string) CountryCheck {
	s.mu.Lock()
	defer s.mu.Unlock()
	var countries []string
	if s.active != nil {
		countries = s.active.StreamingCountries
	}
	check := CheckCountry(countries, input, s.active != nil)
	if s.details != nil {
		s.details.Check = check
	}
	return check
}

// Active returns a copy of the active entity, if any.
func (s *Session) Active() (models.SearchResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return models.SearchResult{}, false
	}
	return *s.active, true
}

// View returns a snapshot for rendering.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		Query:       s.query,
		Status:      s.status,
		Cards:       append([]Card(nil), s.cards...),
		DetailsOpen: s.detailsOpen && s.details != nil,
	}
	if s.details != nil {
		d := *s.details
		v.Details = &d
	}
	return v
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// SessionStore keeps sessions in memory keyed by a random id.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a store evicting sessions idle for longer than ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session for id, creating a fresh one when id is unknown.
// The second return value reports whether a new session was created.
func (st *SessionStore) Get(id string) (*Session, bool) {
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()

	if sess, ok := st.sessions[id]; ok {
		sess.touch(now)
		return sess, false
	}
	sess := &Session{ID: uuid.NewString(), lastSeen: now}
	st.sessions[sess.ID] = sess
	return sess, true
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep evicts sessions idle at now for longer than the ttl and returns how
// many were removed.
func (st *SessionStore) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, sess := range st.sessions {
		if sess.idleSince(now) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps on every interval until ctx is done.
func (st *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := st.Sweep(now); n > 0 {
				log.Printf("[web] evicted %d idle sessions", n)
			}
		}
	}
}
