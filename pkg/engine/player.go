package engine

import "context"

// PlayerAPI exposes the endpoints a signed-in player calls for themselves
// Character scoped calls send the character through x-character-id
type PlayerAPI struct {
	r Requester
}

// NewPlayerAPI creates a PlayerAPI over r
func NewPlayerAPI(r Requester) *PlayerAPI {
	return &PlayerAPI{r: r}
}

// Characters returns the characters owned by the player
func (a *PlayerAPI) Characters(ctx context.Context, opts *RequestOptions) ([]Character, error) {
	var chars []Character
	if err := a.r.Get(ctx, Request{URL: "player/characters", Options: opts}, &chars); err != nil {
		return nil, err
	}
	return chars, nil
}

// Inventory returns the items of the player's character
func (a *PlayerAPI) Inventory(ctx context.Context, characterID string, opts *RequestOptions) ([]InventoryItem, error) {
	var items []InventoryItem
	if err := a.r.Get(ctx, Request{URL: "player/inventory", Options: withCharacter(opts, characterID)}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Balances returns the balances of the player's character
func (a *PlayerAPI) Balances(ctx context.Context, characterID string, opts *RequestOptions) ([]Balance, error) {
	var balances []Balance
	if err := a.r.Get(ctx, Request{URL: "player/balances", Options: withCharacter(opts, characterID)}, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// withCharacter returns a copy of opts carrying characterID
func withCharacter(opts *RequestOptions, characterID string) *RequestOptions {
	out := RequestOptions{}
	if opts != nil {
		out = *opts
	}
	if characterID != "" {
		out.CharacterID = characterID
	}
	return &out
}

// PublicAPI exposes endpoints that need no authorization
type PublicAPI struct {
	r Requester
}

// NewPublicAPI creates a PublicAPI over r
func NewPublicAPI(r Requester) *PublicAPI {
	return &PublicAPI{r: r}
}

// Server returns the public server description
func (a *PublicAPI) Server(ctx context.Context, opts *RequestOptions) (*ServerInfo, error) {
	var info ServerInfo
	if err := a.r.Get(ctx, Request{URL: "public/server", Options: opts}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Blueprints returns the publicly listed blueprints
func (a *PublicAPI) Blueprints(ctx context.Context, params *BlueprintListParams, opts *RequestOptions) (*Page[Blueprint], error) {
	q := Query{}
	if params != nil {
		q = params.ListParams.query()
		q["type"] = optional(params.Type)
		q["tags"] = params.Tags
	}
	var page Page[Blueprint]
	if err := a.r.Get(ctx, Request{URL: "public/blueprints", Query: q, Options: opts}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Translations returns the public translations of a locale
func (a *PublicAPI) Translations(ctx context.Context, locale string, namespaces []string, opts *RequestOptions) (Translations, error) {
	var tr Translations
	req := Request{
		URL:     resourcePath("public", "locales", locale),
		Query:   Query{"namespaces": namespaces},
		Options: opts,
	}
	if err := a.r.Get(ctx, req, &tr); err != nil {
		return nil, err
	}
	return tr, nil
}

// UserInfoAPI describes the authenticated principal
type UserInfoAPI struct {
	r Requester
}

// NewUserInfoAPI creates a UserInfoAPI over r
func NewUserInfoAPI(r Requester) *UserInfoAPI {
	return &UserInfoAPI{r: r}
}

// Me returns the principal behind the current authorization
func (a *UserInfoAPI) Me(ctx context.Context, opts *RequestOptions) (*UserInfo, error) {
	var info UserInfo
	if err := a.r.Get(ctx, Request{URL: "userinfo", Options: opts}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
