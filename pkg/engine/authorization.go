package engine

import (
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthorizationProvider produces the value of the Authorization header
// It is called once per request
type AuthorizationProvider interface {
	AuthorizationHeader() (string, error)
}

// AuthorizationFunc adapts a function to AuthorizationProvider
type AuthorizationFunc func() (string, error)

// AuthorizationHeader calls f
func (f AuthorizationFunc) AuthorizationHeader() (string, error) {
	return f()
}

// APIKeyAuthorization authenticates with an API key id/secret pair using
// the Basic scheme
type APIKeyAuthorization struct {
	KeyID  string
	Secret string
}

// NewAPIKeyAuthorization creates an API key provider
func NewAPIKeyAuthorization(keyID, secret string) *APIKeyAuthorization {
	return &APIKeyAuthorization{KeyID: keyID, Secret: secret}
}

// AuthorizationHeader returns "Basic base64(id:secret)", encoding the pair as given
func (a *APIKeyAuthorization) AuthorizationHeader() (string, error) {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(a.KeyID+":"+a.Secret)), nil
}

// BearerAuthorization sends a pre-issued token, e.g. a player session token
type BearerAuthorization struct {
	Token string
}

// AuthorizationHeader returns "Bearer <token>"
func (a *BearerAuthorization) AuthorizationHeader() (string, error) {
	if a.Token == "" {
		return "", errors.New("bearer token is empty")
	}
	return "Bearer " + a.Token, nil
}

// refreshMargin is how long before expiry a cached service token is replaced
const refreshMargin = 30 * time.Second

// ServiceTokenAuthorization signs short-lived HS256 tokens with the API key
// secret. Tokens are cached until shortly before they expire
type ServiceTokenAuthorization struct {
	KeyID    string
	Secret   string
	Subject  string
	Audience string
	TTL      time.Duration

	// Now is overridable for tests
	Now func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewServiceTokenAuthorization creates a signing provider with a 5 minute TTL
func NewServiceTokenAuthorization(keyID, secret, audience string) *ServiceTokenAuthorization {
	return &ServiceTokenAuthorization{
		KeyID:    keyID,
		Secret:   secret,
		Audience: audience,
		TTL:      5 * time.Minute,
	}
}

// AuthorizationHeader returns "Bearer <jwt>", signing a new token when the
// cached one is missing or about to expire
func (a *ServiceTokenAuthorization) AuthorizationHeader() (string, error) {
	if a.KeyID == "" || a.Secret == "" {
		return "", errors.New("service token key id and secret are required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now().UTC()
	if a.Now != nil {
		now = a.Now()
	}
	if a.token != "" && now.Add(refreshMargin).Before(a.expiresAt) {
		return "Bearer " + a.token, nil
	}

	ttl := a.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	expiresAt := now.Add(ttl)

	subject := a.Subject
	if subject == "" {
		subject = a.KeyID
	}
	claims := jwt.RegisteredClaims{
		Issuer:    a.KeyID,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}
	if a.Audience != "" {
		claims.Audience = jwt.ClaimStrings{a.Audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.Secret))
	if err != nil {
		return "", err
	}
	a.token = signed
	a.expiresAt = expiresAt
	return "Bearer " + signed, nil
}
