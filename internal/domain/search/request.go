// Package search holds the inbound search-results request as seen by the hook.
package search

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/kailas-cloud/advsearch/internal/domain"
)

// TermParam is the request parameter carrying the search term.
const TermParam = "search"

// Request is an immutable view of an inbound search request.
// Keys are case-sensitive; a key may be present with an empty value.
type Request struct {
	params  map[string]string
	fullURL string
}

// NewRequest validates the full URL and copies params.
func NewRequest(params map[string]string, fullURL string) (Request, error) {
	if fullURL == "" {
		return Request{}, fmt.Errorf("%w: full request url is required", domain.ErrInvalidRequest)
	}
	cp := make(map[string]string, len(params))
	for k, v := range params {
		cp[k] = v
	}
	return Request{params: cp, fullURL: fullURL}, nil
}

// RequestFromURL builds a Request whose params are the URL's query (first value per key).
// Query text is read as the host reads it: only '&' separates pairs, and a pair
// that does not unescape cleanly (a literal ';' or a stray '%') is kept verbatim.
func RequestFromURL(fullURL string) (Request, error) {
	u, err := url.Parse(fullURL)
	if err != nil {
		return Request{}, fmt.Errorf("%w: parse url: %w", domain.ErrInvalidRequest, err)
	}
	return NewRequest(parseQuery(u.RawQuery), fullURL)
}

func parseQuery(rawQuery string) map[string]string {
	params := make(map[string]string)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		k = unescapeOrRaw(k)
		if _, seen := params[k]; seen {
			continue
		}
		params[k] = unescapeOrRaw(v)
	}
	return params
}

func unescapeOrRaw(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

// RawValue returns the value for key and whether the key is present.
func (r Request) RawValue(key string) (string, bool) {
	v, ok := r.params[key]
	return v, ok
}

// ParamNames returns the parameter keys in sorted order.
func (r Request) ParamNames() []string {
	names := make([]string, 0, len(r.params))
	for k := range r.params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// FullURL returns the full request URL as received.
func (r Request) FullURL() string { return r.fullURL }

// Param is a single ordered query parameter.
type Param struct {
	Key   string
	Value string
}

// AppendQuery appends params to rawURL, keeping the existing query verbatim.
// The fragment, if any, stays at the end. No params means rawURL is returned unchanged.
func AppendQuery(rawURL string, params []Param) string {
	if len(params) == 0 {
		return rawURL
	}

	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	query := b.String()

	base, fragment, hasFragment := strings.Cut(rawURL, "#")
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}

	out := base + sep + query
	if hasFragment {
		out += "#" + fragment
	}
	return out
}
