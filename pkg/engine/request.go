package engine

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Header names managed by the client
const (
	HeaderAcceptLanguage = "Accept-Language"
	HeaderAgentName      = "x-agent-name"
	HeaderServerID       = "x-server-id"
	HeaderCorrelationID  = "x-correlationid"
	HeaderAuthorization  = "Authorization"
	HeaderCharacterID    = "x-character-id"
	HeaderExecutorUser   = "x-executor-user"
)

// RequestOptions are per-call overrides. A nil *RequestOptions is valid
type RequestOptions struct {
	// CorrelationID replaces the generated x-correlationid
	CorrelationID string
	// CharacterID is sent as x-character-id when set
	CharacterID string
	// ExecutorUser is sent as x-executor-user when set
	ExecutorUser string
	// Headers are copied first; headers the client manages win on collision
	// Values are stringified and nil values skipped
	Headers map[string]any
}

// Request describes one call to the Engine
type Request struct {
	// URL is relative to Config.APIURL, e.g. "characters/42"
	URL string
	// Query parameters appended to URL
	Query Query
	// Data is JSON-encoded as the body for POST, PUT and PATCH
	Data any
	// Options are per-call overrides
	Options *RequestOptions
}

// Response is the full envelope of a successful call
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// URL is the final request URL
	URL string
}

// Decode unmarshals the body into out. An empty body leaves out untouched
func (r *Response) Decode(out any) error {
	if out == nil || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("engine: decode response: %w", err)
	}
	return nil
}

func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
