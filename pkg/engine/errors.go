package engine

import (
	"errors"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Error keys the client produces itself or that callers commonly branch on
const (
	ErrKeyUnknown      = "UNKNOWN_API_ERROR"
	ErrKeyBadRequest   = "BAD_REQUEST"
	ErrKeyUnauthorized = "UNAUTHORIZED"
	ErrKeyForbidden    = "FORBIDDEN"
	ErrKeyNotFound     = "NOT_FOUND"
)

// APIError is returned for every non-2xx response from the Engine
type APIError struct {
	// Key is the stable machine-readable error code
	Key string `json:"key"`
	// Message is the human-readable description
	Message string `json:"message"`
	// Params holds substitution values for message templates
	Params map[string]string `json:"params,omitempty"`
	// StatusCode is the HTTP status of the failed response
	StatusCode int `json:"statusCode"`
	// Details carries request context such as "url", "method" and "correlationId"
	Details map[string]any `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Key
}

// Name returns the error key
func (e *APIError) Name() string {
	return e.Key
}

// URL returns the request URL recorded in Details, if any
func (e *APIError) URL() string {
	s, _ := e.Details["url"].(string)
	return s
}

// ToServiceError converts the error into a go-errors envelope, keeping the
// status as Code and the key as TextCode
func (e *APIError) ToServiceError() *goerrors.Error {
	metadata := make(map[string]any, len(e.Params)+len(e.Details))
	for k, v := range e.Details {
		metadata[k] = v
	}
	for k, v := range e.Params {
		metadata["param_"+k] = v
	}
	err := goerrors.New(e.Error(), categoryForStatus(e.StatusCode)).
		WithCode(e.StatusCode).
		WithTextCode(e.Key)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func categoryForStatus(status int) goerrors.Category {
	switch {
	case status == http.StatusUnauthorized:
		return goerrors.CategoryAuth
	case status == http.StatusForbidden:
		return goerrors.CategoryAuthz
	case status == http.StatusNotFound:
		return goerrors.CategoryNotFound
	case status == http.StatusConflict:
		return goerrors.CategoryConflict
	case status == http.StatusTooManyRequests:
		return goerrors.CategoryRateLimit
	case status == http.StatusUnprocessableEntity:
		return goerrors.CategoryValidation
	case status >= 400 && status < 500:
		return goerrors.CategoryBadInput
	}
	return goerrors.CategoryExternal
}

// AsAPIError unwraps err into an *APIError
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKey reports whether err is an APIError with the given key
func IsKey(err error, key string) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Key == key
}

// HasStatus reports whether err is an APIError with the given HTTP status
func HasStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == status
}
