// Package language lists language names for the in-language search filter.
package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Catalog maps configured language codes to their own names (autonyms).
type Catalog struct {
	names map[string]string
}

// New resolves names once for codes. Codes that do not parse as BCP-47
// or have no known name are left out.
func New(codes []string) *Catalog {
	names := make(map[string]string, len(codes))
	for _, code := range codes {
		code = strings.ToLower(strings.TrimSpace(code))
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		if name := display.Self.Name(tag); name != "" {
			names[code] = name
		}
	}
	return &Catalog{names: names}
}

// LanguageNames returns code -> name. The map is a copy.
func (c *Catalog) LanguageNames() map[string]string {
	out := make(map[string]string, len(c.names))
	for k, v := range c.names {
		out[k] = v
	}
	return out
}
