package engine

import "context"

// LocaleAPI manages languages and their translations
type LocaleAPI struct {
	r Requester
}

// NewLocaleAPI creates a LocaleAPI over r
func NewLocaleAPI(r Requester) *LocaleAPI {
	return &LocaleAPI{r: r}
}

// List returns the locales configured on the server
func (a *LocaleAPI) List(ctx context.Context, opts *RequestOptions) ([]Locale, error) {
	var locales []Locale
	if err := a.r.Get(ctx, Request{URL: "locales", Options: opts}, &locales); err != nil {
		return nil, err
	}
	return locales, nil
}

// Translations returns the translations of a locale, limited to namespaces
// when any are given
func (a *LocaleAPI) Translations(ctx context.Context, locale string, namespaces []string, noCache bool, opts *RequestOptions) (Translations, error) {
	var tr Translations
	req := Request{
		URL:     resourcePath("locales", locale),
		Query:   Query{"namespaces": namespaces, "noCache": optional(noCache)},
		Options: opts,
	}
	if err := a.r.Get(ctx, req, &tr); err != nil {
		return nil, err
	}
	return tr, nil
}

// UpsertTranslations replaces the given namespaces of a locale
func (a *LocaleAPI) UpsertTranslations(ctx context.Context, locale string, tr Translations, opts *RequestOptions) (Translations, error) {
	var out Translations
	if err := a.r.Put(ctx, Request{URL: resourcePath("locales", locale), Data: tr, Options: opts}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConfigurationAPI reads and writes the server configuration
type ConfigurationAPI struct {
	r Requester
}

// NewConfigurationAPI creates a ConfigurationAPI over r
func NewConfigurationAPI(r Requester) *ConfigurationAPI {
	return &ConfigurationAPI{r: r}
}

// Get returns the configuration of the server named by x-server-id
func (a *ConfigurationAPI) Get(ctx context.Context, noCache bool, opts *RequestOptions) (*ServerConfiguration, error) {
	var cfg ServerConfiguration
	req := Request{URL: "configuration", Query: Query{"noCache": optional(noCache)}, Options: opts}
	if err := a.r.Get(ctx, req, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Update replaces the server configuration
func (a *ConfigurationAPI) Update(ctx context.Context, cfg *ServerConfiguration, opts *RequestOptions) (*ServerConfiguration, error) {
	var out ServerConfiguration
	if err := a.r.Put(ctx, Request{URL: "configuration", Data: cfg, Options: opts}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
