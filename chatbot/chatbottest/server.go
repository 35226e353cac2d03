// Package chatbottest provides an in-process /chatbot/ backend for tests.
package chatbottest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Recorded is one request as the backend saw it.
type Recorded struct {
	Message     string
	ContentType string
	CSRFToken   string
	// HasCSRFToken distinguishes an empty header from a missing one.
	HasCSRFToken bool
	SessionID    string
	Body         []byte
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Recorded
}

// NewServer starts a backend that records every POST /chatbot/ and answers
// with h. It is closed when the test ends.
func NewServer(t testing.TB, h http.HandlerFunc) *Server {
	t.Helper()

	s := &Server{}
	r := chi.NewRouter()
	r.Post("/chatbot/", s.record(h))

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) record(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		rec := Recorded{
			ContentType: r.Header.Get("Content-Type"),
			Body:        body,
		}
		if values, ok := r.Header["X-Csrftoken"]; ok {
			rec.HasCSRFToken = true
			if len(values) > 0 {
				rec.CSRFToken = values[0]
			}
		}
		if c, err := r.Cookie("sessionid"); err == nil {
			rec.SessionID = c.Value
		}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			rec.Message = payload.Message
		}

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()

		next(w, r)
	}
}

// Requests returns a snapshot of everything received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// Reply answers 200 with {"reply": text}.
func Reply(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"reply": text})
	}
}

// Status answers with the given status code and a plain-text body.
func Status(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(code)
		_, _ = io.WriteString(w, body)
	}
}

// Raw answers 200 with body as-is.
func Raw(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = io.WriteString(w, body)
	}
}

// Session hands out a sessionid cookie on the first request and echoes
// the session the client presented, the way the site's session middleware
// would keep order state between messages.
func Session(id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seen := ""
		if c, err := r.Cookie("sessionid"); err == nil {
			seen = c.Value
		} else {
			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: id, Path: "/"})
		}
		Reply("session:" + seen)(w, r)
	}
}
