package advsearch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/kailas-cloud/advsearch/internal/config"
	"github.com/kailas-cloud/advsearch/internal/db"
	dbRedis "github.com/kailas-cloud/advsearch/internal/db/redis"
	"github.com/kailas-cloud/advsearch/internal/domain/namespace"
	"github.com/kailas-cloud/advsearch/internal/domain/search"
	"github.com/kailas-cloud/advsearch/internal/domain/user"
	"github.com/kailas-cloud/advsearch/internal/repository/language"
	"github.com/kailas-cloud/advsearch/internal/repository/mimetype"
	"github.com/kailas-cloud/advsearch/internal/repository/namespaces"
	"github.com/kailas-cloud/advsearch/internal/repository/tooltip"
	"github.com/kailas-cloud/advsearch/internal/repository/userprefs"
	healthuc "github.com/kailas-cloud/advsearch/internal/usecase/health"
	hookuc "github.com/kailas-cloud/advsearch/internal/usecase/hook"
	"github.com/kailas-cloud/advsearch/internal/usecase/jsconfig"
	"github.com/kailas-cloud/advsearch/internal/usecase/scope"
)

const defaultReadinessTimeout = 10 * time.Second

type hookUseCase interface {
	SearchResultsPrepend(ctx context.Context, req search.Request, u user.Identity, lang string) (hookuc.Outcome, error)
	Preferences() []hookuc.PreferenceDefinition
}

// Client is the advsearch entry point for in-process hosts.
type Client struct {
	store     db.Store
	hookSvc   hookUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("advsearch: database address required (use WithValkey or WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.addrs,
		Password:   cfg.password,
		Standalone: cfg.standalone,
	})
	if err != nil {
		return nil, fmt.Errorf("advsearch: create %s store: %w", cfg.driver, err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("advsearch: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	c, err := wireClient(store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

// serverConfig maps client options onto the server config so both
// share one set of defaults.
func serverConfig(cfg *clientConfig) config.Config {
	var sc config.Config
	sc.Storage.KeyPrefix = cfg.keyPrefix
	sc.Search = config.SearchConfig{
		Extensions:          cfg.search.FileExtensions,
		MimeOverrides:       cfg.search.MimeOverrides,
		Presets:             cfg.search.NamespacePresets,
		DeepCategory:        cfg.search.DeepCategoryEnabled,
		DefaultNamespaceIDs: cfg.search.DefaultNamespaces,
		Searchable:          cfg.search.SearchableNamespaces,
		MainNamespaceLabel:  cfg.search.MainNamespaceLabel,
	}
	sc.Tooltips.FallbackLang = cfg.fallbackLang
	sc.Tooltips.Messages = cfg.messages
	sc.ApplyDefaults()
	return sc
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	sc := serverConfig(cfg)

	defaults, err := namespace.NewSet(sc.Search.DefaultNamespaceIDs...)
	if err != nil {
		return nil, fmt.Errorf("advsearch: default namespaces: %w", err)
	}

	prefs := userprefs.New(store, sc.Storage.KeyPrefix, defaults)
	asm := jsconfig.New(
		prefs,
		scope.New(prefs),
		sc.Search,
		mimetype.New(sc.Search.MimeOverrides),
		tooltip.New(sc.Tooltips.FallbackLang, sc.Tooltips.Messages),
		namespaces.New(sc.Search.MainNamespaceLabel),
	)
	if len(cfg.languages) > 0 {
		asm = asm.WithLanguages(language.New(cfg.languages))
	}

	return &Client{
		store:     store,
		hookSvc:   hookuc.New(asm),
		healthSvc: healthuc.New(store),
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// SearchResultsPrepend decides whether the enhanced search UI is injected
// into a search-results page and returns what to add.
func (c *Client) SearchResultsPrepend(ctx context.Context, r Request, u User, lang string) (out Outcome, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search_results_prepend", start, err) }()

	var req search.Request
	if r.Params == nil {
		req, err = search.RequestFromURL(r.URL)
	} else {
		req, err = search.NewRequest(r.Params, r.URL)
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("advsearch: %w", err)
	}

	res, err := c.hookSvc.SearchResultsPrepend(ctx, req, user.Identity{ID: u.ID, Name: u.Name, Named: u.Named}, lang)
	if err != nil {
		return Outcome{}, fmt.Errorf("advsearch: %w", err)
	}

	out = Outcome{
		Active:       res.Active,
		HTML:         res.HTML,
		Modules:      res.Modules,
		ModuleStyles: res.ModuleStyles,
	}
	if res.ConfigVars != nil {
		out.ConfigVars = maps.Clone(map[string]any(res.ConfigVars))
	}
	return out, nil
}

// Preferences returns the preference declarations for the host's preferences form.
func (c *Client) Preferences() []Preference {
	defs := c.hookSvc.Preferences()
	out := make([]Preference, len(defs))
	for i, d := range defs {
		out[i] = Preference{
			Key:          d.Key,
			Type:         d.Type,
			LabelMessage: d.LabelMessage,
			Section:      d.Section,
			HelpMessage:  d.HelpMessage,
		}
	}
	return out
}
