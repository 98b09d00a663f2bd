package scope

import (
	"context"

	"github.com/kailas-cloud/advsearch/internal/domain/namespace"
	"github.com/kailas-cloud/advsearch/internal/domain/user"
)

// NamespacePreferences resolves which namespaces a search covers by default.
type NamespacePreferences interface {
	// UserNamespaces returns the user's own namespace selection; empty means no preference.
	UserNamespaces(ctx context.Context, u user.Identity) (namespace.Set, error)
	// DefaultNamespaces returns the host's globally configured default selection.
	DefaultNamespaces(ctx context.Context) (namespace.Set, error)
}
