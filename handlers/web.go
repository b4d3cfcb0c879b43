package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"streamfinder/services/presenter"
)

//go:embed templates/*
var webAssets embed.FS

const sessionCookie = "streamfinder_session"

var pageTemplate = template.Must(
	template.New("index.html").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(webAssets, "templates/index.html"),
)

// WebHandler serves the server-rendered Presenter UI.
type WebHandler struct {
	Sessions *presenter.SessionStore
	Backend  presenter.Searcher
}

func NewWebHandler(sessions *presenter.SessionStore, backend presenter.Searcher) *WebHandler {
	return &WebHandler{Sessions: sessions, Backend: backend}
}

// Register adds the Presenter routes to r.
func (h *WebHandler) Register(r *mux.Router) {
	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/details", h.OpenDetails).Methods(http.MethodGet)
	r.HandleFunc("/details/close", h.CloseDetails).Methods(http.MethodPost)
	r.HandleFunc("/details/country", h.CheckCountry).Methods(http.MethodPost)
	r.HandleFunc("/assets/styles.css", h.Styles).Methods(http.MethodGet)
}

// Index renders the page. A query parameter runs a new search first.
func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if r.URL.Query().Has("query") {
		sess.Search(r.Context(), h.Backend, r.URL.Query().Get("query"))
	}
	h.render(w, http.StatusOK, sess.View())
}

// OpenDetails makes ?id= the active entity.
func (h *WebHandler) OpenDetails(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if err := sess.Open(r.URL.Query().Get("id")); err != nil {
		if errors.Is(err, presenter.ErrUnknownResult) {
			h.render(w, http.StatusNotFound, sess.View())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.render(w, http.StatusOK, sess.View())
}

func (h *WebHandler) CloseDetails(w http.ResponseWriter, r *http.Request) {
	h.session(w, r).Close()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *WebHandler) CheckCountry(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	sess.CheckCountry(r.PostFormValue("country"))
	h.render(w, http.StatusOK, sess.View())
}

func (h *WebHandler) Styles(w http.ResponseWriter, r *http.Request) {
	data, err := webAssets.ReadFile("templates/styles.css")
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

// session resolves the cookie session, issuing a new cookie when needed.
func (h *WebHandler) session(w http.ResponseWriter, r *http.Request) *presenter.Session {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}
	sess, created := h.Sessions.Get(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

func (h *WebHandler) render(w http.ResponseWriter, status int, view presenter.View) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		log.Printf("[web] render: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
