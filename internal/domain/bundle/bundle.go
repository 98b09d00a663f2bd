// Package bundle holds the client configuration handed to the search UI.
package bundle

import "encoding/json"

// Well-known bundle keys.
const (
	KeyMimeTypes            = "advancedSearch.mimeTypes"
	KeyTooltips             = "advancedSearch.tooltips"
	KeyNamespacePresets     = "advancedSearch.namespacePresets"
	KeyDeepCategoryEnabled  = "advancedSearch.deepcategoryEnabled"
	KeySearchableNamespaces = "advancedSearch.searchableNamespaces"
	KeyExplicitNamespaceURL = "advancedSearch.explicitNamespaceURL"
	KeyLanguages            = "advancedSearch.languages"
)

// Bundle maps well-known keys to serializable values. Built fresh per request.
type Bundle map[string]any

// Has reports whether key is set (a nil value still counts as set).
func (b Bundle) Has(key string) bool {
	_, ok := b[key]
	return ok
}

// MarshalJSON encodes the bundle. Map keys are sorted, so output is deterministic.
func (b Bundle) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(b)) //nolint:wrapcheck // plain delegation
}
