package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tasklist/internal/store"
)

func writeHTML(w http.ResponseWriter, status int, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, html)
}

// itemID parses the {itemId} path segment. A malformed id can never have
// been assigned, so it reports the same way as a missing item.
func itemID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("itemId")), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// writeStoreError maps the store's error kinds onto statuses: validation
// failures become a 400 with an error fragment the page can swap in, unknown
// ids become a plain 404.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var verr store.ValidationError
	if errors.As(err, &verr) {
		html, rerr := s.rnd.Error(verr.Error())
		if rerr != nil {
			http.Error(w, rerr.Error(), http.StatusInternalServerError)
			return
		}
		writeHTML(w, http.StatusBadRequest, html)
		return
	}
	var nf store.NotFoundError
	if errors.As(err, &nf) {
		http.NotFound(w, r)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	html, err := s.rnd.Page(s.pageTitle, s.st.List())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

func (s *Server) handleItemList(w http.ResponseWriter, r *http.Request) {
	f := store.ParseFilter(r.URL.Query().Get("filter"))
	html, err := s.rnd.List(s.st.ListFiltered(f))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

func (s *Server) handleItemCreate(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	if _, err := s.st.Create(r.Form.Get("title")); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.hub.broadcast()

	html, err := s.rnd.List(s.st.List())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

func (s *Server) handleItemGet(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	it, err := s.st.Get(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	html, err := s.rnd.Item(it)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

func (s *Server) handleItemEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	it, err := s.st.Get(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	html, err := s.rnd.ItemEdit(it)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

func (s *Server) handleItemUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	_ = r.ParseForm()
	it, err := s.st.UpdateTitle(id, r.Form.Get("title"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.hub.broadcast()

	html, err := s.rnd.Item(it)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

func (s *Server) handleItemToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	it, err := s.st.Toggle(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.hub.broadcast()

	html, err := s.rnd.Item(it)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

func (s *Server) handleItemDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.st.Delete(id); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.hub.broadcast()

	html, err := s.rnd.List(s.st.List())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

// writeEvent emits one server-sent event. Multi-line payloads become one
// data: field per line, which the client joins back together.
func writeEvent(w io.Writer, event, data string) error {
	if event != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", event); err != nil {
			return err
		}
	}
	for _, line := range strings.Split(data, "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// handleEvents streams the list fragment to the page: once on connect, then
// again after every successful mutation. The stream always carries the
// unfiltered list.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.hub.subscribe()
	defer cancel()

	send := func() bool {
		html, err := s.rnd.List(s.st.List())
		if err != nil {
			s.log.Error("render list for stream", "err", err)
			return true
		}
		if err := writeEvent(w, "items", html); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !send() {
		return
	}

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			if _, err := io.WriteString(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case <-ch:
			if !send() {
				return
			}
		}
	}
}
