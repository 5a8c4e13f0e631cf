// Package enginetest provides a fake Engine API server for tests
package enginetest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// ErrorBody is the error shape the Engine returns
type ErrorBody struct {
	Key     string            `json:"key"`
	Message string            `json:"message"`
	Params  map[string]string `json:"params,omitempty"`
}

// RecordedRequest is a request received by the fake server
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// DecodeBody unmarshals the recorded body into v
func (r RecordedRequest) DecodeBody(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Server is a fake Engine. Routes are registered with gorilla/mux
// patterns, so "characters/{id}" matches any id
type Server struct {
	*httptest.Server

	prefix string
	router *mux.Router
	api    *mux.Router

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewServer starts a fake Engine serving under prefix (e.g. "/api") and
// stops it when the test ends
func NewServer(t testing.TB, prefix string) *Server {
	t.Helper()

	s := &Server{prefix: prefix, router: mux.NewRouter()}
	s.router.Use(s.recordMiddleware)
	s.api = s.router.PathPrefix(prefix).Subrouter()
	s.router.NotFoundHandler = s.recordMiddleware(http.HandlerFunc(notFoundHandler))
	s.router.MethodNotAllowedHandler = s.recordMiddleware(http.HandlerFunc(methodNotAllowedHandler))

	s.Server = httptest.NewServer(s.router)
	t.Cleanup(s.Close)
	return s
}

// APIURL returns the base URL clients should be configured with
func (s *Server) APIURL() string {
	return s.URL + s.prefix
}

// HandleFunc registers a handler for method and path relative to the prefix
func (s *Server) HandleFunc(method, path string, handler http.HandlerFunc) {
	s.api.HandleFunc("/"+path, handler).Methods(method)
}

// HandleJSON responds to method+path with status and body encoded as JSON
func (s *Server) HandleJSON(method, path string, status int, body any) {
	s.HandleFunc(method, path, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, status, body)
	})
}

// HandleError responds to method+path with an Engine error body
func (s *Server) HandleError(method, path string, status int, key, message string, params map[string]string) {
	s.HandleJSON(method, path, status, ErrorBody{Key: key, Message: message, Params: params})
}

// Requests returns a copy of every request received so far
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request. It fails the test when none
// has been received
func (s *Server) LastRequest(t testing.TB) RecordedRequest {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("enginetest: no requests received")
	}
	return reqs[len(reqs)-1]
}

// recordMiddleware stores each request before passing it on
func (s *Server) recordMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, ErrorBody{Key: "NOT_FOUND", Message: "Resource not found"})
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusMethodNotAllowed, ErrorBody{Key: "METHOD_NOT_ALLOWED", Message: "Method not allowed"})
}
