package web

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"tasklist/internal/store"
)

type ServerConfig struct {
	PageTitle string
	Store     *store.Store
	Logger    *log.Logger
}

type Server struct {
	pageTitle string
	st        *store.Store
	rnd       *Renderer
	hub       *listHub
	log       *log.Logger
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.PageTitle = strings.TrimSpace(cfg.PageTitle)
	if cfg.PageTitle == "" {
		cfg.PageTitle = "Tasklist"
	}
	if cfg.Store == nil {
		return nil, errors.New("web: store is nil")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	rnd, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	return &Server{
		pageTitle: cfg.PageTitle,
		st:        cfg.Store,
		rnd:       rnd,
		hub:       newListHub(),
		log:       cfg.Logger,
	}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /static/app.css", s.handleAppCSS)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /items", s.handleItemList)
	mux.HandleFunc("POST /items", s.handleItemCreate)
	mux.HandleFunc("GET /items/{itemId}", s.handleItemGet)
	mux.HandleFunc("GET /items/{itemId}/edit", s.handleItemEditForm)
	mux.HandleFunc("POST /items/{itemId}", s.handleItemUpdate)
	mux.HandleFunc("POST /items/{itemId}/toggle", s.handleItemToggle)
	mux.HandleFunc("DELETE /items/{itemId}", s.handleItemDelete)
	return s.withRequestLog(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleAppCSS(w http.ResponseWriter, r *http.Request) {
	b, err := assetsFS.ReadFile("static/app.css")
	if err != nil || len(b) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Flush keeps the event stream flowing when the wrapper sits in front of it.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(sw, r)
		s.log.Info("handled", "method", r.Method, "path", r.URL.Path, "status", sw.status, "dur", time.Since(start))
	})
}
