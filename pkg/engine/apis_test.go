package engine

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterAPI(t *testing.T) {
	srv := newTestServer(t)
	srv.HandleJSON(http.MethodGet, "characters", http.StatusOK, Page[Character]{
		Items: []Character{{ID: "c1", Name: "Hero"}}, Total: 1, Page: 2, Limit: 10,
	})
	srv.HandleJSON(http.MethodGet, "characters/{id}", http.StatusOK, Character{ID: "c 1", Level: 3})
	srv.HandleJSON(http.MethodPatch, "characters/{id}", http.StatusOK, Character{ID: "c1", Name: "Renamed"})
	srv.HandleJSON(http.MethodDelete, "characters/{id}", http.StatusNoContent, nil)
	c := newTestClient(t, srv)
	ctx := context.Background()

	page, err := c.Characters().List(ctx, &CharacterListParams{
		ListParams: ListParams{Page: 2, Limit: 10},
		IDs:        []string{"c1", "c2"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "Hero", page.Items[0].Name)
	assert.Equal(t, "ids=c1%2Cc2&limit=10&page=2", srv.LastRequest(t).RawQuery)

	ch, err := c.Characters().Get(ctx, "c 1", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, ch.Level)
	assert.Equal(t, "/api/characters/c 1", srv.LastRequest(t).Path)

	ch, err = c.Characters().Update(ctx, "c1", &CharacterInput{Name: "Renamed"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", ch.Name)
	last := srv.LastRequest(t)
	assert.Equal(t, http.MethodPatch, last.Method)
	assert.JSONEq(t, `{"name":"Renamed"}`, string(last.Body))

	require.NoError(t, c.Characters().Delete(ctx, "c1", nil))
	assert.Equal(t, http.MethodDelete, srv.LastRequest(t).Method)
}

func TestCharacterAPI_CreateForUser(t *testing.T) {
	srv := newTestServer(t)
	srv.HandleJSON(http.MethodPost, "characters", http.StatusCreated, Character{ID: "c9", UserID: "u1"})
	c := newTestClient(t, srv)

	ch, err := c.Characters().Create(context.Background(), &CharacterInput{UserID: "u1", Name: "n", BlueprintID: "bp"},
		&RequestOptions{ExecutorUser: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "c9", ch.ID)

	last := srv.LastRequest(t)
	assert.Equal(t, "admin", last.Header.Get(HeaderExecutorUser))
	var body CharacterInput
	require.NoError(t, last.DecodeBody(&body))
	assert.Equal(t, "bp", body.BlueprintID)
}

func TestCharacterAPI_NotFound(t *testing.T) {
	srv := newTestServer(t)
	srv.HandleError(http.MethodGet, "characters/{id}", http.StatusNotFound, ErrKeyNotFound, "Character not found",
		map[string]string{"id": "missing"})
	c := newTestClient(t, srv)

	_, err := c.Characters().Get(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.True(t, IsKey(err, ErrKeyNotFound))
	assert.True(t, HasStatus(err, http.StatusNotFound))
}

func TestInventoryAPI(t *testing.T) {
	srv := newTestServer(t)
	srv.HandleJSON(http.MethodGet, "inventory/{cid}/items", http.StatusOK, []InventoryItem{{ID: "i1", Quantity: 2}})
	srv.HandleJSON(http.MethodPost, "inventory/{cid}/items", http.StatusCreated, InventoryItem{ID: "i2", Quantity: 1})
	srv.HandleJSON(http.MethodPatch, "inventory/{cid}/items/{iid}", http.StatusOK, InventoryItem{ID: "i1", Container: "bank"})
	srv.HandleJSON(http.MethodDelete, "inventory/{cid}/items/{iid}", http.StatusNoContent, nil)
	c := newTestClient(t, srv)
	ctx := context.Background()

	items, err := c.Inventory().List(ctx, "c1", "", nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "", srv.LastRequest(t).RawQuery)

	_, err = c.Inventory().List(ctx, "c1", "bank", nil)
	require.NoError(t, err)
	assert.Equal(t, "container=bank", srv.LastRequest(t).RawQuery)

	item, err := c.Inventory().Add(ctx, "c1", &AddItemInput{BlueprintID: "sword", Quantity: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, "i2", item.ID)
	assert.Equal(t, "/api/inventory/c1/items", srv.LastRequest(t).Path)

	item, err = c.Inventory().Move(ctx, "c1", "i1", &MoveItemInput{Container: "bank"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "bank", item.Container)
	assert.Equal(t, "/api/inventory/c1/items/i1", srv.LastRequest(t).Path)

	require.NoError(t, c.Inventory().Remove(ctx, "c1", "i1", 3, nil))
	last := srv.LastRequest(t)
	assert.Equal(t, http.MethodDelete, last.Method)
	assert.Equal(t, "quantity=3", last.RawQuery)

	require.NoError(t, c.Inventory().Remove(ctx, "c1", "i1", 0, nil))
	assert.Equal(t, "", srv.LastRequest(t).RawQuery)
}

func TestLedgerAPI(t *testing.T) {
	srv := newTestServer(t)
	srv.HandleFunc(http.MethodGet, "ledger/{cid}/balances", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"currency":"GOLD","amount":"1250.75"}]`))
	})
	srv.HandleJSON(http.MethodGet, "ledger/{cid}/transactions", http.StatusOK, Page[Transaction]{})
	srv.HandleJSON(http.MethodPost, "ledger/transactions", http.StatusCreated, Transaction{
		ID: "tx1", Amount: decimal.RequireFromString("10.10"), Balance: decimal.RequireFromString("1260.85"),
	})
	c := newTestClient(t, srv)
	ctx := context.Background()

	balances, err := c.Ledger().Balances(ctx, "c1", nil)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.True(t, decimal.RequireFromString("1250.75").Equal(balances[0].Amount))

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = c.Ledger().Transactions(ctx, "c1", &TransactionListParams{Currency: "GOLD", From: &from}, nil)
	require.NoError(t, err)
	assert.Equal(t, "currency=GOLD&from=2024-01-01T00%3A00%3A00Z", srv.LastRequest(t).RawQuery)

	tx, err := c.Ledger().CreateTransaction(ctx, &TransactionInput{
		CharacterID: "c1",
		Type:        TransactionCredit,
		Currency:    "GOLD",
		Amount:      decimal.RequireFromString("10.10"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "1260.85", tx.Balance.String())

	var body map[string]any
	require.NoError(t, srv.LastRequest(t).DecodeBody(&body))
	assert.Equal(t, "10.1", body["amount"])
	assert.Equal(t, "credit", body["type"])
}

func TestBlueprintAPI(t *testing.T) {
	srv := newTestServer(t)
	srv.HandleJSON(http.MethodGet, "blueprints", http.StatusOK, Page[Blueprint]{Items: []Blueprint{{ID: "bp1"}}})
	srv.HandleJSON(http.MethodPut, "blueprints/{id}", http.StatusOK, Blueprint{ID: "bp1", Name: "Sword"})
	c := newTestClient(t, srv)
	ctx := context.Background()

	page, err := c.Blueprints().List(ctx, &BlueprintListParams{
		ListParams: ListParams{NoCache: true},
		Type:       BlueprintTypeItem,
		Tags:       []string{"weapon", "rare"},
	}, nil)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, "noCache=true&tags=weapon%2Crare&type=item", srv.LastRequest(t).RawQuery)

	bp, err := c.Blueprints().Update(ctx, "bp1", &BlueprintInput{Type: BlueprintTypeItem, Name: "Sword"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Sword", bp.Name)
	assert.Equal(t, http.MethodPut, srv.LastRequest(t).Method)
}

func TestAnimationAndTemplateAPI(t *testing.T) {
	srv := newTestServer(t)
	srv.HandleJSON(http.MethodGet, "animations", http.StatusOK, Page[Animation]{Total: 0})
	srv.HandleJSON(http.MethodPost, "animations", http.StatusCreated, Animation{ID: "a1"})
	srv.HandleJSON(http.MethodGet, "templates", http.StatusOK, []Template{{ID: "t1", Type: TemplateTypeQuest}})
	srv.HandleJSON(http.MethodDelete, "templates/{id}", http.StatusNoContent, nil)
	c := newTestClient(t, srv)
	ctx := context.Background()

	_, err := c.Animations().List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "", srv.LastRequest(t).RawQuery)

	anim, err := c.Animations().Create(ctx, &AnimationInput{Name: "idle", Duration: 1200}, nil)
	require.NoError(t, err)
	assert.Equal(t, "a1", anim.ID)

	templates, err := c.Templates().List(ctx, TemplateTypeQuest, nil)
	require.NoError(t, err)
	assert.Equal(t, TemplateTypeQuest, templates[0].Type)
	assert.Equal(t, "type=quest", srv.LastRequest(t).RawQuery)

	require.NoError(t, c.Templates().Delete(ctx, "t1", nil))
	assert.Equal(t, "/api/templates/t1", srv.LastRequest(t).Path)
}

func TestLocaleAndConfigurationAPI(t *testing.T) {
	srv := newTestServer(t)
	srv.HandleJSON(http.MethodGet, "locales", http.StatusOK, []Locale{{Code: "en-US", Default: true}, {Code: "fr-FR"}})
	srv.HandleJSON(http.MethodGet, "locales/{locale}", http.StatusOK, Translations{"common": {"hello": "Bonjour"}})
	srv.HandleJSON(http.MethodPut, "locales/{locale}", http.StatusOK, Translations{"common": {"bye": "Au revoir"}})
	srv.HandleJSON(http.MethodGet, "configuration", http.StatusOK, ServerConfiguration{ServerID: "srv", MaxCharacters: 5})
	c := newTestClient(t, srv)
	ctx := context.Background()

	locales, err := c.Locales().List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, locales, 2)

	tr, err := c.Locales().Translations(ctx, "fr-FR", []string{"common", "items"}, true, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", tr["common"]["hello"])
	last := srv.LastRequest(t)
	assert.Equal(t, "/api/locales/fr-FR", last.Path)
	assert.Equal(t, "namespaces=common%2Citems&noCache=true", last.RawQuery)

	_, err = c.Locales().UpsertTranslations(ctx, "fr-FR", Translations{"common": {"bye": "Au revoir"}}, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"common":{"bye":"Au revoir"}}`, string(srv.LastRequest(t).Body))

	cfg, err := c.Configuration().Get(ctx, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxCharacters)
	assert.Equal(t, "", srv.LastRequest(t).RawQuery)
}

func TestPlayerAPI_SendsCharacterHeader(t *testing.T) {
	srv := newTestServer(t)
	srv.HandleJSON(http.MethodGet, "player/inventory", http.StatusOK, []InventoryItem{})
	srv.HandleJSON(http.MethodGet, "player/balances", http.StatusOK, []Balance{})
	c := newTestClient(t, srv, WithAuthorization(&BearerAuthorization{Token: "player-session"}))
	ctx := context.Background()

	opts := &RequestOptions{CorrelationID: "corr-p"}
	_, err := c.Player().Inventory(ctx, "char-1", opts)
	require.NoError(t, err)

	h := srv.LastRequest(t).Header
	assert.Equal(t, "char-1", h.Get(HeaderCharacterID))
	assert.Equal(t, "corr-p", h.Get(HeaderCorrelationID))
	assert.Equal(t, "Bearer player-session", h.Get(HeaderAuthorization))
	assert.Empty(t, opts.CharacterID)

	_, err = c.Player().Balances(ctx, "char-2", nil)
	require.NoError(t, err)
	assert.Equal(t, "char-2", srv.LastRequest(t).Header.Get(HeaderCharacterID))
}

func TestPublicAndUserInfoAPI(t *testing.T) {
	srv := newTestServer(t)
	srv.HandleJSON(http.MethodGet, "public/server", http.StatusOK, ServerInfo{ServerID: "srv", Locales: []string{"en-US"}})
	srv.HandleJSON(http.MethodGet, "public/locales/{locale}", http.StatusOK, Translations{})
	srv.HandleJSON(http.MethodGet, "userinfo", http.StatusOK, UserInfo{ID: "u1", Roles: []string{"admin"}})
	c := newTestClient(t, srv)
	ctx := context.Background()

	info, err := c.Public().Server(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"en-US"}, info.Locales)

	_, err = c.Public().Translations(ctx, "en-US", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/public/locales/en-US", srv.LastRequest(t).Path)
	assert.Equal(t, "", srv.LastRequest(t).RawQuery)

	me, err := c.UserInfo().Me(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, me.Roles)
}

func TestGenericHelpers(t *testing.T) {
	srv := newTestServer(t)
	srv.HandleJSON(http.MethodPost, "characters", http.StatusCreated, Character{ID: "c1"})
	srv.HandleJSON(http.MethodDelete, "characters/{id}", http.StatusOK, map[string]bool{"deleted": true})
	c := newTestClient(t, srv)
	ctx := context.Background()

	ch, err := PostAs[Character](ctx, c, Request{URL: "characters", Data: CharacterInput{Name: "n"}})
	require.NoError(t, err)
	assert.Equal(t, "c1", ch.ID)

	res, err := DeleteAs[map[string]bool](ctx, c, Request{URL: "characters/c1"})
	require.NoError(t, err)
	assert.True(t, res["deleted"])

	_, err = GetAs[Character](ctx, c, Request{URL: "nowhere"})
	assert.True(t, IsKey(err, ErrKeyNotFound))
}
