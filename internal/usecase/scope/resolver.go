// Package scope decides whether a search request pins down its namespaces
// and, if it does not, derives a URL that makes the default scope explicit.
package scope

import (
	"context"
	"fmt"
	"regexp"

	"github.com/kailas-cloud/advsearch/internal/domain/namespace"
	"github.com/kailas-cloud/advsearch/internal/domain/search"
	"github.com/kailas-cloud/advsearch/internal/domain/user"
)

// namespaceParam matches request keys like ns0, ns14. Digits are never parsed.
// One trailing newline is allowed, as the host's own key check allows it.
var namespaceParam = regexp.MustCompile(`^ns\d+\n?$`)

// Resolver resolves namespace scope for search requests.
type Resolver struct {
	prefs NamespacePreferences
}

// New creates a Resolver.
func New(prefs NamespacePreferences) *Resolver {
	return &Resolver{prefs: prefs}
}

// IsNamespacedSearch reports whether the request needs no scope rewriting.
// A missing or empty search term counts as already scoped.
func (r *Resolver) IsNamespacedSearch(req search.Request) bool {
	if term, _ := req.RawValue(search.TermParam); term == "" {
		return true
	}
	for _, key := range req.ParamNames() {
		if namespaceParam.MatchString(key) {
			return true
		}
	}
	return false
}

// DefaultNamespaces returns the user's namespaces, or the global default when the user has none.
func (r *Resolver) DefaultNamespaces(ctx context.Context, u user.Identity) (namespace.Set, error) {
	own, err := r.prefs.UserNamespaces(ctx, u)
	if err != nil {
		return namespace.Set{}, fmt.Errorf("user namespaces: %w", err)
	}
	if !own.IsEmpty() {
		return own, nil
	}

	def, err := r.prefs.DefaultNamespaces(ctx)
	if err != nil {
		return namespace.Set{}, fmt.Errorf("default namespaces: %w", err)
	}
	return def, nil
}

// ExplicitNamespaceURL returns the request URL with ns<id>=1 appended for every
// default namespace, or nil when the request is already namespaced.
func (r *Resolver) ExplicitNamespaceURL(
	ctx context.Context, req search.Request, u user.Identity,
) (*string, error) {
	if r.IsNamespacedSearch(req) {
		return nil, nil
	}

	set, err := r.DefaultNamespaces(ctx, u)
	if err != nil {
		return nil, err
	}

	ids := set.IDs()
	params := make([]search.Param, len(ids))
	for i, id := range ids {
		params[i] = search.Param{Key: namespace.ParamName(id), Value: "1"}
	}

	out := search.AppendQuery(req.FullURL(), params)
	return &out, nil
}
