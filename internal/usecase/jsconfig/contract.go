package jsconfig

import (
	"context"

	"github.com/kailas-cloud/advsearch/internal/domain/search"
	"github.com/kailas-cloud/advsearch/internal/domain/user"
)

// PreferenceLookup reads persisted user options.
type PreferenceLookup interface {
	GetBoolOption(ctx context.Context, u user.Identity, key string) (bool, error)
}

// ScopeResolver derives the explicit-namespace URL for a request.
type ScopeResolver interface {
	ExplicitNamespaceURL(ctx context.Context, req search.Request, u user.Identity) (*string, error)
}

// HostConfig exposes the host settings passed to the client.
type HostConfig interface {
	NamespacePresets() map[string]any
	DeepCategoryEnabled() bool
	FileExtensions() []string
	SearchableNamespaces() map[int]string
}

// MimeCatalog maps file extensions to mime types.
type MimeCatalog interface {
	MimeTypesFor(extensions []string) map[string]string
}

// TooltipCatalog returns tooltip texts for a language.
type TooltipCatalog interface {
	Tooltips(lang string) map[string]string
}

// NamespaceCurator turns the host's raw searchable namespaces into the client list.
type NamespaceCurator interface {
	Curate(raw map[int]string) map[string]string
}

// LanguageCatalog lists language names. Optional integration.
type LanguageCatalog interface {
	LanguageNames() map[string]string
}
