// Package tooltip serves the help texts shown next to advanced search fields.
package tooltip

// defaults are the built-in English texts, keyed by search field.
var defaults = map[string]string{
	"plain":        "Find pages containing all of these words, in any order.",
	"phrase":       "Find pages containing this exact phrase. Quotes are added automatically.",
	"or":           "Find pages containing at least one of these words.",
	"not":          "Exclude pages containing any of these words.",
	"deepcategory": "Find pages in this category or any of its subcategories.",
	"hastemplate":  "Find pages that use this template.",
	"inlanguage":   "Find pages written in this language.",
	"intitle":      "Find pages whose title contains these words.",
	"subpageof":    "Find subpages of this page.",
	"filetype":     "Find files of this type.",
	"filew":        "Find files with this width in pixels.",
	"fileh":        "Find files with this height in pixels.",
	"sort":         "Order the results by relevance, date edited or date created.",
}

// Catalog returns tooltips per language with per-key fallback.
type Catalog struct {
	fallback string
	messages map[string]map[string]string
}

// New creates a Catalog. messages holds lang -> key -> text overrides;
// fallback is used for keys a language does not translate.
func New(fallback string, messages map[string]map[string]string) *Catalog {
	if fallback == "" {
		fallback = "en"
	}
	return &Catalog{fallback: fallback, messages: messages}
}

// Tooltips returns every known tooltip for lang.
func (c *Catalog) Tooltips(lang string) map[string]string {
	out := make(map[string]string, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range c.messages[c.fallback] {
		out[k] = v
	}
	if lang != c.fallback {
		for k, v := range c.messages[lang] {
			out[k] = v
		}
	}
	return out
}
