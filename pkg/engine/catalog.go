package engine

import "context"

// optional returns nil for zero values so they are left off the query
func optional[T comparable](v T) any {
	var zero T
	if v == zero {
		return nil
	}
	return v
}

// AnimationAPI manages animation assets
type AnimationAPI struct {
	r Requester
}

// NewAnimationAPI creates an AnimationAPI over r
func NewAnimationAPI(r Requester) *AnimationAPI {
	return &AnimationAPI{r: r}
}

// List returns a page of animations
func (a *AnimationAPI) List(ctx context.Context, params *ListParams, opts *RequestOptions) (*Page[Animation], error) {
	var page Page[Animation]
	err := a.r.Get(ctx, Request{URL: "animations", Query: params.query(), Options: opts}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Get returns one animation
func (a *AnimationAPI) Get(ctx context.Context, id string, opts *RequestOptions) (*Animation, error) {
	var anim Animation
	if err := a.r.Get(ctx, Request{URL: resourcePath("animations", id), Options: opts}, &anim); err != nil {
		return nil, err
	}
	return &anim, nil
}

// Create registers a new animation
func (a *AnimationAPI) Create(ctx context.Context, input *AnimationInput, opts *RequestOptions) (*Animation, error) {
	var anim Animation
	if err := a.r.Post(ctx, Request{URL: "animations", Data: input, Options: opts}, &anim); err != nil {
		return nil, err
	}
	return &anim, nil
}

// Update changes the given fields of an animation
func (a *AnimationAPI) Update(ctx context.Context, id string, input *AnimationInput, opts *RequestOptions) (*Animation, error) {
	var anim Animation
	if err := a.r.Patch(ctx, Request{URL: resourcePath("animations", id), Data: input, Options: opts}, &anim); err != nil {
		return nil, err
	}
	return &anim, nil
}

// Delete removes an animation
func (a *AnimationAPI) Delete(ctx context.Context, id string, opts *RequestOptions) error {
	return a.r.Delete(ctx, Request{URL: resourcePath("animations", id), Options: opts}, nil)
}

// BlueprintAPI manages character, item and currency blueprints
type BlueprintAPI struct {
	r Requester
}

// NewBlueprintAPI creates a BlueprintAPI over r
func NewBlueprintAPI(r Requester) *BlueprintAPI {
	return &BlueprintAPI{r: r}
}

// List returns a page of blueprints, optionally filtered by type and tags
func (a *BlueprintAPI) List(ctx context.Context, params *BlueprintListParams, opts *RequestOptions) (*Page[Blueprint], error) {
	q := Query{}
	if params != nil {
		q = params.ListParams.query()
		q["type"] = optional(params.Type)
		q["tags"] = params.Tags
	}
	var page Page[Blueprint]
	if err := a.r.Get(ctx, Request{URL: "blueprints", Query: q, Options: opts}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get returns one blueprint
func (a *BlueprintAPI) Get(ctx context.Context, id string, opts *RequestOptions) (*Blueprint, error) {
	var bp Blueprint
	if err := a.r.Get(ctx, Request{URL: resourcePath("blueprints", id), Options: opts}, &bp); err != nil {
		return nil, err
	}
	return &bp, nil
}

// Create registers a new blueprint
func (a *BlueprintAPI) Create(ctx context.Context, input *BlueprintInput, opts *RequestOptions) (*Blueprint, error) {
	var bp Blueprint
	if err := a.r.Post(ctx, Request{URL: "blueprints", Data: input, Options: opts}, &bp); err != nil {
		return nil, err
	}
	return &bp, nil
}

// Update replaces a blueprint
func (a *BlueprintAPI) Update(ctx context.Context, id string, input *BlueprintInput, opts *RequestOptions) (*Blueprint, error) {
	var bp Blueprint
	if err := a.r.Put(ctx, Request{URL: resourcePath("blueprints", id), Data: input, Options: opts}, &bp); err != nil {
		return nil, err
	}
	return &bp, nil
}

// Delete removes a blueprint
func (a *BlueprintAPI) Delete(ctx context.Context, id string, opts *RequestOptions) error {
	return a.r.Delete(ctx, Request{URL: resourcePath("blueprints", id), Options: opts}, nil)
}

// TemplateAPI manages content templates
type TemplateAPI struct {
	r Requester
}

// NewTemplateAPI creates a TemplateAPI over r
func NewTemplateAPI(r Requester) *TemplateAPI {
	return &TemplateAPI{r: r}
}

// List returns templates, optionally restricted to one type
func (a *TemplateAPI) List(ctx context.Context, templateType TemplateType, opts *RequestOptions) ([]Template, error) {
	var templates []Template
	q := Query{"type": optional(templateType)}
	if err := a.r.Get(ctx, Request{URL: "templates", Query: q, Options: opts}, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// Get returns one template
func (a *TemplateAPI) Get(ctx context.Context, id string, opts *RequestOptions) (*Template, error) {
	var tpl Template
	if err := a.r.Get(ctx, Request{URL: resourcePath("templates", id), Options: opts}, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Create registers a new template
func (a *TemplateAPI) Create(ctx context.Context, input *TemplateInput, opts *RequestOptions) (*Template, error) {
	var tpl Template
	if err := a.r.Post(ctx, Request{URL: "templates", Data: input, Options: opts}, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Update replaces a template
func (a *TemplateAPI) Update(ctx context.Context, id string, input *TemplateInput, opts *RequestOptions) (*Template, error) {
	var tpl Template
	if err := a.r.Put(ctx, Request{URL: resourcePath("templates", id), Data: input, Options: opts}, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Delete removes a template
func (a *TemplateAPI) Delete(ctx context.Context, id string, opts *RequestOptions) error {
	return a.r.Delete(ctx, Request{URL: resourcePath("templates", id), Options: opts}, nil)
}
