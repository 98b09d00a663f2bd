package advsearch

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	dbRedis "github.com/kailas-cloud/advsearch/internal/db/redis"
	"github.com/kailas-cloud/advsearch/internal/domain/bundle"
	"github.com/kailas-cloud/advsearch/internal/domain/search"
	"github.com/kailas-cloud/advsearch/internal/domain/user"
	healthuc "github.com/kailas-cloud/advsearch/internal/usecase/health"
	hookuc "github.com/kailas-cloud/advsearch/internal/usecase/hook"
)

// --- mocks ---

type mockHookUC struct {
	prependFn func(ctx context.Context, req search.Request, u user.Identity, lang string) (hookuc.Outcome, error)
}

func (m *mockHookUC) SearchResultsPrepend(
	ctx context.Context, req search.Request, u user.Identity, lang string,
) (hookuc.Outcome, error) {
	return m.prependFn(ctx, req, u, lang)
}

func (m *mockHookUC) Preferences() []hookuc.PreferenceDefinition {
	return []hookuc.PreferenceDefinition{{Key: "advancedsearch-disable", Type: "toggle"}}
}

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- tests ---

func TestNew_NoAddress(t *testing.T) {
	if _, err := New(context.Background()); err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithValkey("localhost:6379", "secret").apply(cfg)
	if cfg.driver != "valkey" || cfg.addrs[0] != "localhost:6379" || cfg.password != "secret" {
		t.Errorf("valkey option: %+v", cfg)
	}

	WithRedis("localhost:6380", "pass").apply(cfg)
	if cfg.driver != "redis" || cfg.addrs[0] != "localhost:6380" {
		t.Errorf("redis option: %+v", cfg)
	}

	WithStandalone().apply(cfg)
	WithKeyPrefix("wiki:").apply(cfg)
	WithLanguages("en", "de").apply(cfg)
	WithTooltips("de", map[string]map[string]string{"de": {"or": "oder"}}).apply(cfg)
	if !cfg.standalone || cfg.keyPrefix != "wiki:" || len(cfg.languages) != 2 || cfg.fallbackLang != "de" {
		t.Errorf("options not applied: %+v", cfg)
	}

	logger := slog.Default()
	WithLogger(logger).apply(cfg)
	if cfg.logger != logger {
		t.Error("expected logger to be set")
	}

	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg)
	if cfg.metricsReg != reg {
		t.Error("expected registerer to be set")
	}
}

func TestServerConfig_Defaults(t *testing.T) {
	sc := serverConfig(&clientConfig{})
	if sc.Storage.KeyPrefix != "advsearch:" {
		t.Errorf("key prefix = %q", sc.Storage.KeyPrefix)
	}
	if len(sc.Search.DefaultNamespaceIDs) != 1 || sc.Search.DefaultNamespaceIDs[0] != 0 {
		t.Errorf("default namespaces = %v", sc.Search.DefaultNamespaceIDs)
	}
	if sc.Tooltips.FallbackLang != "en" {
		t.Errorf("fallback lang = %q", sc.Tooltips.FallbackLang)
	}
}

func TestWireClient_RejectsNegativeDefaults(t *testing.T) {
	cfg := &clientConfig{search: SearchSettings{DefaultNamespaces: []int{-2}}}
	if _, err := wireClient(dbRedis.NewStoreForTest(nil), cfg, nil); err == nil {
		t.Fatal("expected error for negative namespace")
	}
}

func TestSearchResultsPrepend_Wired(t *testing.T) {
	ctrl := gomock.NewController(t)
	rc := mock.NewClient(ctrl)

	rc.EXPECT().
		Do(gomock.Any(), mock.Match("HGET", "advsearch:user:5:options", "advancedsearch-disable")).
		Return(mock.Result(mock.RedisNil()))
	rc.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", "advsearch:user:5:options")).
		Return(mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
			"searchNs2": mock.RedisString("1"),
		})))

	cfg := &clientConfig{
		search:    SearchSettings{FileExtensions: []string{"png"}},
		languages: []string{"de"},
	}
	c, err := wireClient(dbRedis.NewStoreForTest(rc), cfg, nil)
	if err != nil {
		t.Fatalf("wire: %v", err)
	}

	out, err := c.SearchResultsPrepend(context.Background(),
		Request{URL: "http://wiki/w/index.php?search=cat"},
		User{ID: 5, Name: "Dana", Named: true}, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Active || out.HTML == "" || len(out.Modules) != 2 {
		t.Fatalf("outcome = %+v", out)
	}
	if got := out.ConfigVars[bundle.KeyExplicitNamespaceURL]; got != "http://wiki/w/index.php?search=cat&ns2=1" {
		t.Errorf("explicit url = %v", got)
	}
	if _, ok := out.ConfigVars[bundle.KeyLanguages]; !ok {
		t.Error("expected languages key")
	}
}

func TestSearchResultsPrepend_InvalidRequest(t *testing.T) {
	c := &Client{hookSvc: &mockHookUC{}}
	_, err := c.SearchResultsPrepend(context.Background(), Request{}, User{}, "en")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestSearchResultsPrepend_ExplicitParams(t *testing.T) {
	var gotParams []string
	c := &Client{hookSvc: &mockHookUC{
		prependFn: func(_ context.Context, req search.Request, _ user.Identity, _ string) (hookuc.Outcome, error) {
			gotParams = req.ParamNames()
			return hookuc.Outcome{}, nil
		},
	}}

	out, err := c.SearchResultsPrepend(context.Background(),
		Request{URL: "http://wiki/?search=cat&ns0=1", Params: map[string]string{"search": "cat"}},
		User{}, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Active || out.ConfigVars != nil {
		t.Errorf("expected inactive empty outcome, got %+v", out)
	}
	if len(gotParams) != 1 || gotParams[0] != "search" {
		t.Errorf("params = %v, want [search]", gotParams)
	}
}

func TestSearchResultsPrepend_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("observer: %v", err)
	}

	c := &Client{obs: obs, hookSvc: &mockHookUC{
		prependFn: func(context.Context, search.Request, user.Identity, string) (hookuc.Outcome, error) {
			return hookuc.Outcome{}, ErrStoreUnavailable
		},
	}}

	_, err = c.SearchResultsPrepend(context.Background(), Request{URL: "http://wiki/?search=x"}, User{}, "en")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}

	got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("search_results_prepend", "error"))
	if got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
}

func TestNewObserver_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.metrics.operations != second.metrics.operations {
		t.Error("expected the registered counter to be reused")
	}
}

func TestPreferences(t *testing.T) {
	c := &Client{hookSvc: &mockHookUC{}}
	prefs := c.Preferences()
	if len(prefs) != 1 || prefs[0].Key != "advancedsearch-disable" {
		t.Errorf("preferences = %+v", prefs)
	}
}

func TestHealth(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckError},
	}}}
	h := c.Health(context.Background())
	if h.Status != "degraded" || h.Checks["database"] != "error" {
		t.Errorf("health = %+v", h)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	rc := mock.NewClient(ctrl)
	rc.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	c := &Client{store: dbRedis.NewStoreForTest(rc)}
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error")
	}
}
