package hook

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/advsearch/internal/domain/bundle"
	"github.com/kailas-cloud/advsearch/internal/domain/search"
	"github.com/kailas-cloud/advsearch/internal/domain/user"
	"github.com/kailas-cloud/advsearch/internal/metrics"
)

// --- Mocks ---

type mockAssembler struct {
	active        bool
	activateErr   error
	bundle        bundle.Bundle
	assembleErr   error
	assembleCalls int
}

func (m *mockAssembler) ShouldActivate(_ context.Context, _ user.Identity) (bool, error) {
	return m.active, m.activateErr
}

func (m *mockAssembler) Assemble(_ context.Context, _ search.Request, _ user.Identity, _ string) (bundle.Bundle, error) {
	m.assembleCalls++
	return m.bundle, m.assembleErr
}

func testRequest(t *testing.T) search.Request {
	t.Helper()
	r, err := search.NewRequest(map[string]string{"search": "cat"}, "http://x/wiki/Special:Search?search=cat")
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	return r
}

var named = user.Identity{ID: 1, Name: "Carol", Named: true}

// --- Tests ---

func TestSearchResultsPrepend_OptedOut(t *testing.T) {
	before := testutil.ToFloat64(metrics.HookInvocationsTotal.WithLabelValues("opted_out"))
	asm := &mockAssembler{active: false}

	out, err := New(asm).SearchResultsPrepend(context.Background(), testRequest(t), named, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Active || out.HTML != "" || len(out.Modules) != 0 || out.ConfigVars != nil {
		t.Errorf("expected empty outcome, got %+v", out)
	}
	if asm.assembleCalls != 0 {
		t.Error("bundle must not be assembled for an opted-out user")
	}
	after := testutil.ToFloat64(metrics.HookInvocationsTotal.WithLabelValues("opted_out"))
	if after != before+1 {
		t.Errorf("opted_out counter = %f, want %f", after, before+1)
	}
}

func TestSearchResultsPrepend_Active(t *testing.T) {
	before := testutil.ToFloat64(metrics.ExplicitURLTotal.WithLabelValues("rewritten"))
	b := bundle.Bundle{bundle.KeyExplicitNamespaceURL: "http://x/?search=cat&ns0=1"}

	out, err := New(&mockAssembler{active: true, bundle: b}).
		SearchResultsPrepend(context.Background(), testRequest(t), named, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Active {
		t.Fatal("expected active outcome")
	}
	if out.HTML != SpinnerHTML {
		t.Errorf("HTML = %q", out.HTML)
	}
	if len(out.Modules) != 2 || out.Modules[0] != "ext.advancedSearch.init" || out.Modules[1] != "ext.advancedSearch.searchtoken" {
		t.Errorf("Modules = %v", out.Modules)
	}
	if len(out.ModuleStyles) != 1 || out.ModuleStyles[0] != "ext.advancedSearch.initialstyles" {
		t.Errorf("ModuleStyles = %v", out.ModuleStyles)
	}
	if out.ConfigVars[bundle.KeyExplicitNamespaceURL] != "http://x/?search=cat&ns0=1" {
		t.Errorf("ConfigVars = %v", out.ConfigVars)
	}
	after := testutil.ToFloat64(metrics.ExplicitURLTotal.WithLabelValues("rewritten"))
	if after != before+1 {
		t.Errorf("rewritten counter = %f, want %f", after, before+1)
	}
}

func TestSearchResultsPrepend_AlreadyScopedCounter(t *testing.T) {
	before := testutil.ToFloat64(metrics.ExplicitURLTotal.WithLabelValues("already_scoped"))
	b := bundle.Bundle{bundle.KeyExplicitNamespaceURL: nil}

	if _, err := New(&mockAssembler{active: true, bundle: b}).
		SearchResultsPrepend(context.Background(), testRequest(t), user.Anonymous(), "en"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := testutil.ToFloat64(metrics.ExplicitURLTotal.WithLabelValues("already_scoped"))
	if after != before+1 {
		t.Errorf("already_scoped counter = %f, want %f", after, before+1)
	}
}

func TestSearchResultsPrepend_ModulesAreCopies(t *testing.T) {
	svc := New(&mockAssembler{active: true, bundle: bundle.Bundle{}})
	out, err := svc.SearchResultsPrepend(context.Background(), testRequest(t), named, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out.Modules[0] = "mutated"
	if Modules[0] != "ext.advancedSearch.init" {
		t.Error("caller mutation leaked into package modules")
	}
}

func TestSearchResultsPrepend_ActivationError(t *testing.T) {
	boom := errors.New("store down")
	_, err := New(&mockAssembler{activateErr: boom}).
		SearchResultsPrepend(context.Background(), testRequest(t), named, "en")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestSearchResultsPrepend_AssembleError(t *testing.T) {
	boom := errors.New("timeout")
	_, err := New(&mockAssembler{active: true, assembleErr: boom}).
		SearchResultsPrepend(context.Background(), testRequest(t), named, "en")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestPreferences(t *testing.T) {
	prefs := New(&mockAssembler{}).Preferences()
	if len(prefs) != 1 {
		t.Fatalf("expected 1 preference, got %d", len(prefs))
	}
	p := prefs[0]
	if p.Key != "advancedsearch-disable" || p.Type != "toggle" {
		t.Errorf("unexpected preference %+v", p)
	}
	if p.LabelMessage != "advancedsearch-preference-disable" ||
		p.Section != "searchoptions/advancedsearch" ||
		p.HelpMessage != "advancedsearch-preference-help" {
		t.Errorf("unexpected preference messages %+v", p)
	}
}
