// Package jsconfig builds the client configuration bundle for the search UI.
package jsconfig

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/advsearch/internal/domain/bundle"
	"github.com/kailas-cloud/advsearch/internal/domain/search"
	"github.com/kailas-cloud/advsearch/internal/domain/user"
)

// OptOutPreference is the user option that disables the enhanced search UI.
const OptOutPreference = "advancedsearch-disable"

// Service assembles configuration bundles.
type Service struct {
	prefs     PreferenceLookup
	scope     ScopeResolver
	host      HostConfig
	mime      MimeCatalog
	tooltips  TooltipCatalog
	curator   NamespaceCurator
	languages LanguageCatalog
}

// New creates a Service. The language catalog is off until WithLanguages is called.
func New(
	prefs PreferenceLookup,
	scope ScopeResolver,
	host HostConfig,
	mime MimeCatalog,
	tooltips TooltipCatalog,
	curator NamespaceCurator,
) *Service {
	return &Service{
		prefs:    prefs,
		scope:    scope,
		host:     host,
		mime:     mime,
		tooltips: tooltips,
		curator:  curator,
	}
}

// WithLanguages enables the language-name catalog. Pass nil to disable.
func (s *Service) WithLanguages(catalog LanguageCatalog) *Service {
	s.languages = catalog
	return s
}

// ShouldActivate is false only for a named user who has opted out.
func (s *Service) ShouldActivate(ctx context.Context, u user.Identity) (bool, error) {
	if !u.IsNamed() {
		return true, nil
	}
	disabled, err := s.prefs.GetBoolOption(ctx, u, OptOutPreference)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", OptOutPreference, err)
	}
	return !disabled, nil
}

// Assemble builds the bundle for req. It performs no writes.
func (s *Service) Assemble(
	ctx context.Context, req search.Request, u user.Identity, lang string,
) (bundle.Bundle, error) {
	explicitURL, err := s.scope.ExplicitNamespaceURL(ctx, req, u)
	if err != nil {
		return nil, fmt.Errorf("explicit namespace url: %w", err)
	}

	b := bundle.Bundle{
		bundle.KeyMimeTypes:            s.mime.MimeTypesFor(s.host.FileExtensions()),
		bundle.KeyTooltips:             s.tooltips.Tooltips(lang),
		bundle.KeyNamespacePresets:     s.host.NamespacePresets(),
		bundle.KeyDeepCategoryEnabled:  s.host.DeepCategoryEnabled(),
		bundle.KeySearchableNamespaces: s.curator.Curate(s.host.SearchableNamespaces()),
		bundle.KeyExplicitNamespaceURL: nil,
	}
	if explicitURL != nil {
		b[bundle.KeyExplicitNamespaceURL] = *explicitURL
	}

	if s.languages != nil {
		b[bundle.KeyLanguages] = s.languages.LanguageNames()
	}

	return b, nil
}
