// Package hook implements the host's search-results-prepend and preferences hooks.
package hook

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/advsearch/internal/domain/bundle"
	"github.com/kailas-cloud/advsearch/internal/domain/search"
	"github.com/kailas-cloud/advsearch/internal/domain/user"
	logpkg "github.com/kailas-cloud/advsearch/internal/logger"
	"github.com/kailas-cloud/advsearch/internal/metrics"
	"github.com/kailas-cloud/advsearch/internal/usecase/jsconfig"
)

// SpinnerHTML is the loading indicator shown until the client UI takes over.
const SpinnerHTML = `<div class="mw-search-spinner"><div class="mw-search-spinner-bounce"></div></div>`

// Client bundles attached to an activated search page.
var (
	Modules      = []string{"ext.advancedSearch.init", "ext.advancedSearch.searchtoken"}
	ModuleStyles = []string{"ext.advancedSearch.initialstyles"}
)

// Outcome is what the host adds to the search-results page.
// An inactive outcome carries nothing.
type Outcome struct {
	Active       bool
	HTML         string
	Modules      []string
	ModuleStyles []string
	ConfigVars   bundle.Bundle
}

// PreferenceDefinition declares a user preference for the host's preferences form.
type PreferenceDefinition struct {
	Key          string
	Type         string
	LabelMessage string
	Section      string
	HelpMessage  string
}

// Service runs the hooks.
type Service struct {
	assembler Assembler
}

// New creates a hook Service.
func New(assembler Assembler) *Service {
	return &Service{assembler: assembler}
}

// SearchResultsPrepend returns the additions for a search-results page.
func (s *Service) SearchResultsPrepend(
	ctx context.Context, req search.Request, u user.Identity, lang string,
) (Outcome, error) {
	log := logpkg.FromContext(ctx)

	active, err := s.assembler.ShouldActivate(ctx, u)
	if err != nil {
		metrics.HookInvocationsTotal.WithLabelValues("error").Inc()
		return Outcome{}, fmt.Errorf("should activate: %w", err)
	}
	if !active {
		metrics.HookInvocationsTotal.WithLabelValues("opted_out").Inc()
		log.Debug("advanced search disabled by user preference", zap.Int64("user_id", u.ID))
		return Outcome{}, nil
	}

	vars, err := s.assembler.Assemble(ctx, req, u, lang)
	if err != nil {
		metrics.HookInvocationsTotal.WithLabelValues("error").Inc()
		return Outcome{}, fmt.Errorf("assemble config: %w", err)
	}
	metrics.HookInvocationsTotal.WithLabelValues("active").Inc()

	if vars[bundle.KeyExplicitNamespaceURL] != nil {
		metrics.ExplicitURLTotal.WithLabelValues("rewritten").Inc()
	} else {
		metrics.ExplicitURLTotal.WithLabelValues("already_scoped").Inc()
	}

	return Outcome{
		Active:       true,
		HTML:         SpinnerHTML,
		Modules:      append([]string(nil), Modules...),
		ModuleStyles: append([]string(nil), ModuleStyles...),
		ConfigVars:   vars,
	}, nil
}

// Preferences returns the preference declarations contributed to the host.
func (s *Service) Preferences() []PreferenceDefinition {
	return []PreferenceDefinition{{
		Key:          jsconfig.OptOutPreference,
		Type:         "toggle",
		LabelMessage: "advancedsearch-preference-disable",
		Section:      "searchoptions/advancedsearch",
		HelpMessage:  "advancedsearch-preference-help",
	}}
}
