// Package namespaces curates the host's searchable namespaces for the client.
package namespaces

import (
	"strconv"

	"github.com/kailas-cloud/advsearch/internal/domain/namespace"
)

// Curator drops virtual namespaces and labels the main namespace.
type Curator struct {
	mainLabel string
}

// New creates a Curator. mainLabel names namespace 0, whose canonical name is empty.
func New(mainLabel string) *Curator {
	return &Curator{mainLabel: mainLabel}
}

// Curate returns id (decimal string) -> display name.
// Negative ids (Special, Media) cannot be searched and are dropped.
func (c *Curator) Curate(raw map[int]string) map[string]string {
	out := make(map[string]string, len(raw))
	for id, name := range raw {
		if id < 0 {
			continue
		}
		if id == namespace.Main && name == "" {
			name = c.mainLabel
		}
		out[strconv.Itoa(id)] = name
	}
	return out
}
