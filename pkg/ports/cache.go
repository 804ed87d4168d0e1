package ports

import (
	"context"

	"github.com/aretw0/conduit/pkg/wire"
)

// VerdictCache remembers verdicts by structural fingerprint (wire.Fingerprint)
// so an unchanged graph is not re-submitted.
type VerdictCache interface {
	// Get returns the cached response and true, or false on a miss.
	Get(ctx context.Context, fingerprint string) (wire.Response, bool, error)

	// Put stores a response.
	Put(ctx context.Context, fingerprint string, resp wire.Response) error
}
