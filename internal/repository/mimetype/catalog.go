// Package mimetype maps the host's allowed upload extensions to mime types.
package mimetype

import (
	"mime"
	"strings"
)

// wikiTypes covers media formats common on wikis that the platform table
// may lack or name differently.
var wikiTypes = map[string]string{
	"djvu": "image/vnd.djvu",
	"flac": "audio/flac",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"mid":  "audio/midi",
	"mp3":  "audio/mpeg",
	"oga":  "audio/ogg",
	"ogg":  "application/ogg",
	"ogv":  "video/ogg",
	"opus": "audio/ogg",
	"pdf":  "application/pdf",
	"png":  "image/png",
	"gif":  "image/gif",
	"stl":  "application/sla",
	"svg":  "image/svg+xml",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"wav":  "audio/wav",
	"webm": "video/webm",
	"webp": "image/webp",
	"xcf":  "image/x-xcf",
}

// Catalog resolves extensions against the wiki table, then the platform table.
type Catalog struct {
	overrides map[string]string
}

// New creates a Catalog. overrides (extension -> mime) take precedence over everything.
func New(overrides map[string]string) *Catalog {
	norm := make(map[string]string, len(overrides))
	for ext, typ := range overrides {
		norm[normalizeExt(ext)] = typ
	}
	return &Catalog{overrides: norm}
}

// MimeTypesFor maps each extension to its mime type. Extensions with no known
// type are skipped, and so is any extension whose type an earlier one already claimed.
func (c *Catalog) MimeTypesFor(extensions []string) map[string]string {
	out := make(map[string]string, len(extensions))
	claimed := make(map[string]struct{}, len(extensions))

	for _, raw := range extensions {
		ext := normalizeExt(raw)
		if ext == "" {
			continue
		}
		typ := c.lookup(ext)
		if typ == "" {
			continue
		}
		if _, dup := claimed[typ]; dup {
			continue
		}
		claimed[typ] = struct{}{}
		out[ext] = typ
	}
	return out
}

func (c *Catalog) lookup(ext string) string {
	if typ, ok := c.overrides[ext]; ok {
		return typ
	}
	if typ, ok := wikiTypes[ext]; ok {
		return typ
	}
	typ := mime.TypeByExtension("." + ext)
	if typ == "" {
		return ""
	}
	if base, _, err := mime.ParseMediaType(typ); err == nil {
		return base
	}
	return typ
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
