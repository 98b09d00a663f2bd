package hook

import (
	"context"

	"github.com/kailas-cloud/advsearch/internal/domain/bundle"
	"github.com/kailas-cloud/advsearch/internal/domain/search"
	"github.com/kailas-cloud/advsearch/internal/domain/user"
)

// Assembler decides activation and builds the client bundle.
type Assembler interface {
	ShouldActivate(ctx context.Context, u user.Identity) (bool, error)
	Assemble(ctx context.Context, req search.Request, u user.Identity, lang string) (bundle.Bundle, error)
}
