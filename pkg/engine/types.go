package engine

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Page wraps a paginated list response
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ListParams are the common pagination parameters
type ListParams struct {
	Page    int
	Limit   int
	NoCache bool
}

func (p *ListParams) query() Query {
	q := Query{}
	if p == nil {
		return q
	}
	if p.Page > 0 {
		q["page"] = p.Page
	}
	if p.Limit > 0 {
		q["limit"] = p.Limit
	}
	if p.NoCache {
		q["noCache"] = true
	}
	return q
}

// Animation is an animation asset bound to blueprints
type Animation struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	URL       string          `json:"url"`
	Duration  int             `json:"duration"` // milliseconds
	Loop      bool            `json:"loop"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// AnimationInput is the body for creating or updating an animation
type AnimationInput struct {
	Name     string          `json:"name,omitempty"`
	URL      string          `json:"url,omitempty"`
	Duration int             `json:"duration,omitempty"`
	Loop     *bool           `json:"loop,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// Character is a player-owned character on a game server
type Character struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	Name        string            `json:"name"`
	BlueprintID string            `json:"blueprintId"`
	Level       int               `json:"level"`
	Attributes  map[string]any    `json:"attributes,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// CharacterInput is the body for creating or updating a character
type CharacterInput struct {
	UserID      string            `json:"userId,omitempty"`
	Name        string            `json:"name,omitempty"`
	BlueprintID string            `json:"blueprintId,omitempty"`
	Level       *int              `json:"level,omitempty"`
	Attributes  map[string]any    `json:"attributes,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// CharacterListParams filters character listings
type CharacterListParams struct {
	ListParams
	IDs    []string
	UserID string
}

// BlueprintType classifies blueprints
type BlueprintType string

const (
	BlueprintTypeCharacter BlueprintType = "character"
	BlueprintTypeItem      BlueprintType = "item"
	BlueprintTypeCurrency  BlueprintType = "currency"
)

// Blueprint is a definition that characters and items are created from
type Blueprint struct {
	ID          string         `json:"id"`
	Type        BlueprintType  `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
	AnimationID string         `json:"animationId,omitempty"`
	TemplateID  string         `json:"templateId,omitempty"`
	Stackable   bool           `json:"stackable"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// BlueprintInput is the body for creating or replacing a blueprint
type BlueprintInput struct {
	Type        BlueprintType  `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
	AnimationID string         `json:"animationId,omitempty"`
	TemplateID  string         `json:"templateId,omitempty"`
	Stackable   bool           `json:"stackable"`
}

// BlueprintListParams filters blueprint listings
type BlueprintListParams struct {
	ListParams
	Type BlueprintType
	Tags []string
}

// InventoryItem is an item held by a character
type InventoryItem struct {
	ID          string         `json:"id"`
	CharacterID string         `json:"characterId"`
	BlueprintID string         `json:"blueprintId"`
	Quantity    int            `json:"quantity"`
	Slot        *int           `json:"slot,omitempty"`
	Container   string         `json:"container,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
	AcquiredAt  time.Time      `json:"acquiredAt"`
}

// AddItemInput is the body for adding an item to an inventory
type AddItemInput struct {
	BlueprintID string         `json:"blueprintId"`
	Quantity    int            `json:"quantity"`
	Slot        *int           `json:"slot,omitempty"`
	Container   string         `json:"container,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
}

// MoveItemInput is the body for moving an item between slots or containers
type MoveItemInput struct {
	Slot      *int   `json:"slot,omitempty"`
	Container string `json:"container,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}

// Balance is a character's holding in one currency
type Balance struct {
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// TransactionType is the direction of a ledger entry
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Transaction is a single ledger entry
type Transaction struct {
	ID          string          `json:"id"`
	CharacterID string          `json:"characterId"`
	Type        TransactionType `json:"type"`
	Currency    string          `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
	Reason      string          `json:"reason,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// TransactionInput is the body for recording a ledger entry
type TransactionInput struct {
	CharacterID string          `json:"characterId"`
	Type        TransactionType `json:"type"`
	Currency    string          `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason,omitempty"`
	Reference   string          `json:"reference,omitempty"`
}

// TransactionListParams filters ledger transactions
type TransactionListParams struct {
	ListParams
	Currency string
	From     *time.Time
	To       *time.Time
}

// Locale is a language available on the Engine
type Locale struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

// Translations maps namespace -> key -> translated text
type Translations map[string]map[string]string

// ServerConfiguration is the game server configuration document
type ServerConfiguration struct {
	ServerID        string         `json:"serverId"`
	Name            string         `json:"name"`
	DefaultLocale   string         `json:"defaultLocale"`
	Currencies      []string       `json:"currencies"`
	MaxCharacters   int            `json:"maxCharacters"`
	MaintenanceMode bool           `json:"maintenanceMode"`
	Settings        map[string]any `json:"settings,omitempty"`
}

// TemplateType classifies templates
type TemplateType string

const (
	TemplateTypeMessage TemplateType = "message"
	TemplateTypeItem    TemplateType = "item"
	TemplateTypeQuest   TemplateType = "quest"
)

// Template is a reusable content template
type Template struct {
	ID        string         `json:"id"`
	Type      TemplateType   `json:"type"`
	Name      string         `json:"name"`
	Content   string         `json:"content"`
	Variables []string       `json:"variables,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// TemplateInput is the body for creating or replacing a template
type TemplateInput struct {
	Type      TemplateType   `json:"type"`
	Name      string         `json:"name"`
	Content   string         `json:"content"`
	Variables []string       `json:"variables,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// ServerInfo is the public description of a game server
type ServerInfo struct {
	ServerID        string   `json:"serverId"`
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	Locales         []string `json:"locales"`
	MaintenanceMode bool     `json:"maintenanceMode"`
}

// UserInfo describes the authenticated principal
type UserInfo struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	ServerID    string   `json:"serverId,omitempty"`
	Locale      string   `json:"locale,omitempty"`
}
