package ports

import (
	"context"

	"github.com/aretw0/conduit/pkg/wire"
)

// AcyclicityChecker delegates directed-cycle detection to an authority
// outside the core. Implementations return the verdict service response or
// an error classified as domain.ErrTimeout, domain.ErrNetworkUnreachable or
// domain.ErrRemote.
type AcyclicityChecker interface {
	CheckAcyclic(ctx context.Context, payload wire.Payload) (wire.Response, error)
}

// CheckerFunc adapts a function to AcyclicityChecker.
type CheckerFunc func(ctx context.Context, payload wire.Payload) (wire.Response, error)

// CheckAcyclic calls f.
func (f CheckerFunc) CheckAcyclic(ctx context.Context, payload wire.Payload) (wire.Response, error) {
	return f(ctx, payload)
}
