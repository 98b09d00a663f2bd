// Package userprefs reads persisted user options from the shared Valkey/Redis store.
//
// Options live in one hash per user: <prefix>user:<id>:options.
// Namespace selections are fields named searchNs<id>.
package userprefs

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/kailas-cloud/advsearch/internal/db"
	"github.com/kailas-cloud/advsearch/internal/domain"
	"github.com/kailas-cloud/advsearch/internal/domain/namespace"
	"github.com/kailas-cloud/advsearch/internal/domain/user"
)

var searchNsField = regexp.MustCompile(`^searchNs(\d+)$`)

// store is the consumer interface for preference reads (ISP).
type store interface {
	HGet(ctx context.Context, key, field string) (string, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Repo serves user options and namespace preferences.
type Repo struct {
	store    store
	prefix   string
	defaults namespace.Set
}

// New creates a Repo. defaults is the host's global namespace selection.
func New(s store, keyPrefix string, defaults namespace.Set) *Repo {
	return &Repo{store: s, prefix: keyPrefix, defaults: defaults}
}

func (r *Repo) optionsKey(u user.Identity) string {
	return r.prefix + "user:" + strconv.FormatInt(u.ID, 10) + ":options"
}

// GetBoolOption reads a boolean option. Missing, "" and "0" are false.
func (r *Repo) GetBoolOption(ctx context.Context, u user.Identity, key string) (bool, error) {
	if u.ID <= 0 {
		return false, nil
	}
	v, err := r.store.HGet(ctx, r.optionsKey(u), key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: option %s: %w", domain.ErrStoreUnavailable, key, err)
	}
	return truthy(v), nil
}

// UserNamespaces returns the namespaces the user enabled, sorted by id.
// Anonymous users and users without stored options get an empty set.
func (r *Repo) UserNamespaces(ctx context.Context, u user.Identity) (namespace.Set, error) {
	if u.ID <= 0 {
		return namespace.Set{}, nil
	}
	fields, err := r.store.HGetAll(ctx, r.optionsKey(u))
	if err != nil {
		return namespace.Set{}, fmt.Errorf("%w: namespaces: %w", domain.ErrStoreUnavailable, err)
	}

	var ids []int
	for field, v := range fields {
		m := searchNsField.FindStringSubmatch(field)
		if m == nil || !truthy(v) {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue // out of int range; not a namespace we can name
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	set, err := namespace.NewSet(ids...)
	if err != nil {
		return namespace.Set{}, fmt.Errorf("namespaces: %w", err)
	}
	return set, nil
}

// DefaultNamespaces returns the configured global selection.
func (r *Repo) DefaultNamespaces(_ context.Context) (namespace.Set, error) {
	return r.defaults, nil
}

// truthy mirrors how the host casts stored option strings to bool.
func truthy(v string) bool {
	return v != "" && v != "0"
}
