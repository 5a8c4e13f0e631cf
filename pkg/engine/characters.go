package engine

import "context"

// CharacterAPI manages characters
type CharacterAPI struct {
	r Requester
}

// NewCharacterAPI creates a CharacterAPI over r
func NewCharacterAPI(r Requester) *CharacterAPI {
	return &CharacterAPI{r: r}
}

// List returns a page of characters filtered by ids or owner
func (a *CharacterAPI) List(ctx context.Context, params *CharacterListParams, opts *RequestOptions) (*Page[Character], error) {
	q := Query{}
	if params != nil {
		q = params.ListParams.query()
		q["ids"] = params.IDs
		q["userId"] = optional(params.UserID)
	}
	var page Page[Character]
	if err := a.r.Get(ctx, Request{URL: "characters", Query: q, Options: opts}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get returns one character
func (a *CharacterAPI) Get(ctx context.Context, id string, opts *RequestOptions) (*Character, error) {
	var ch Character
	if err := a.r.Get(ctx, Request{URL: resourcePath("characters", id), Options: opts}, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// Create creates a character from a blueprint
func (a *CharacterAPI) Create(ctx context.Context, input *CharacterInput, opts *RequestOptions) (*Character, error) {
	var ch Character
	if err := a.r.Post(ctx, Request{URL: "characters", Data: input, Options: opts}, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// Update changes the given fields of a character
func (a *CharacterAPI) Update(ctx context.Context, id string, input *CharacterInput, opts *RequestOptions) (*Character, error) {
	var ch Character
	if err := a.r.Patch(ctx, Request{URL: resourcePath("characters", id), Data: input, Options: opts}, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// Delete removes a character
func (a *CharacterAPI) Delete(ctx context.Context, id string, opts *RequestOptions) error {
	return a.r.Delete(ctx, Request{URL: resourcePath("characters", id), Options: opts}, nil)
}

// InventoryAPI manages the items held by characters
type InventoryAPI struct {
	r Requester
}

// NewInventoryAPI creates an InventoryAPI over r
func NewInventoryAPI(r Requester) *InventoryAPI {
	return &InventoryAPI{r: r}
}

// List returns the items of a character, optionally restricted to a container
func (a *InventoryAPI) List(ctx context.Context, characterID, container string, opts *RequestOptions) ([]InventoryItem, error) {
	var items []InventoryItem
	req := Request{
		URL:     resourcePath("inventory", characterID, "items"),
		Query:   Query{"container": optional(container)},
		Options: opts,
	}
	if err := a.r.Get(ctx, req, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Add grants an item to a character
func (a *InventoryAPI) Add(ctx context.Context, characterID string, input *AddItemInput, opts *RequestOptions) (*InventoryItem, error) {
	var item InventoryItem
	req := Request{URL: resourcePath("inventory", characterID, "items"), Data: input, Options: opts}
	if err := a.r.Post(ctx, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Move moves an item to another slot or container
func (a *InventoryAPI) Move(ctx context.Context, characterID, itemID string, input *MoveItemInput, opts *RequestOptions) (*InventoryItem, error) {
	var item InventoryItem
	req := Request{URL: resourcePath("inventory", characterID, "items", itemID), Data: input, Options: opts}
	if err := a.r.Patch(ctx, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Remove takes quantity units of an item away; zero removes the whole stack
func (a *InventoryAPI) Remove(ctx context.Context, characterID, itemID string, quantity int, opts *RequestOptions) error {
	req := Request{
		URL:     resourcePath("inventory", characterID, "items", itemID),
		Query:   Query{"quantity": optional(quantity)},
		Options: opts,
	}
	return a.r.Delete(ctx, req, nil)
}

// LedgerAPI reads and records currency movements
type LedgerAPI struct {
	r Requester
}

// NewLedgerAPI creates a LedgerAPI over r
func NewLedgerAPI(r Requester) *LedgerAPI {
	return &LedgerAPI{r: r}
}

// Balances returns the balances of a character in every currency
func (a *LedgerAPI) Balances(ctx context.Context, characterID string, opts *RequestOptions) ([]Balance, error) {
	var balances []Balance
	if err := a.r.Get(ctx, Request{URL: resourcePath("ledger", characterID, "balances"), Options: opts}, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// Transactions returns a page of a character's ledger entries
func (a *LedgerAPI) Transactions(ctx context.Context, characterID string, params *TransactionListParams, opts *RequestOptions) (*Page[Transaction], error) {
	q := Query{}
	if params != nil {
		q = params.ListParams.query()
		q["currency"] = optional(params.Currency)
		q["from"] = params.From
		q["to"] = params.To
	}
	var page Page[Transaction]
	req := Request{URL: resourcePath("ledger", characterID, "transactions"), Query: q, Options: opts}
	if err := a.r.Get(ctx, req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateTransaction records a credit or debit
func (a *LedgerAPI) CreateTransaction(ctx context.Context, input *TransactionInput, opts *RequestOptions) (*Transaction, error) {
	var tx Transaction
	if err := a.r.Post(ctx, Request{URL: "ledger/transactions", Data: input, Options: opts}, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
