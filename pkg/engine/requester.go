package engine

import (
	"context"
	"net/url"
	"strings"
)

// Requester is the part of Client the resource APIs depend on
type Requester interface {
	Get(ctx context.Context, req Request, out any) error
	Post(ctx context.Context, req Request, out any) error
	Put(ctx context.Context, req Request, out any) error
	Patch(ctx context.Context, req Request, out any) error
	Delete(ctx context.Context, req Request, out any) error
}

var _ Requester = (*Client)(nil)

// GetAs sends a GET request and returns the decoded body
func GetAs[T any](ctx context.Context, r Requester, req Request) (T, error) {
	var out T
	err := r.Get(ctx, req, &out)
	return out, err
}

// PostAs sends a POST request and returns the decoded body
func PostAs[T any](ctx context.Context, r Requester, req Request) (T, error) {
	var out T
	err := r.Post(ctx, req, &out)
	return out, err
}

// PutAs sends a PUT request and returns the decoded body
func PutAs[T any](ctx context.Context, r Requester, req Request) (T, error) {
	var out T
	err := r.Put(ctx, req, &out)
	return out, err
}

// PatchAs sends a PATCH request and returns the decoded body
func PatchAs[T any](ctx context.Context, r Requester, req Request) (T, error) {
	var out T
	err := r.Patch(ctx, req, &out)
	return out, err
}

// DeleteAs sends a DELETE request and returns the decoded body
func DeleteAs[T any](ctx context.Context, r Requester, req Request) (T, error) {
	var out T
	err := r.Delete(ctx, req, &out)
	return out, err
}

// resourcePath joins escaped segments with "/"
func resourcePath(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}

// Resource API accessors

func (c *Client) Animations() *AnimationAPI { return NewAnimationAPI(c) }
func (c *Client) Characters() *CharacterAPI { return NewCharacterAPI(c) }
func (c *Client) Blueprints() *BlueprintAPI { return NewBlueprintAPI(c) }
func (c *Client) Inventory() *InventoryAPI { return NewInventoryAPI(c) }
func (c *Client) Ledger() *LedgerAPI { return NewLedgerAPI(c) }
func (c *Client) Locales() *LocaleAPI { return NewLocaleAPI(c) }
func (c *Client) Configuration() *ConfigurationAPI { return NewConfigurationAPI(c) }
func (c *Client) Templates() *TemplateAPI { return NewTemplateAPI(c) }
func (c *Client) Player() *PlayerAPI { return NewPlayerAPI(c) }
func (c *Client) Public() *PublicAPI { return NewPublicAPI(c) }
func (c *Client) UserInfo() *UserInfoAPI { return NewUserInfoAPI(c) }
