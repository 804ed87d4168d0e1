// Package local runs the acyclicity check in-process, for offline validation
// and for hosts that embed the verdict logic instead of calling the service.
package local

import (
	"context"

	"github.com/aretw0/conduit/internal/dag"
	"github.com/aretw0/conduit/pkg/wire"
)

// Checker implements ports.AcyclicityChecker without a network hop.
type Checker struct{}

// NewChecker returns an in-process checker.
func NewChecker() *Checker { return &Checker{} }

// CheckAcyclic analyzes the payload unless ctx is already done.
func (c *Checker) CheckAcyclic(ctx context.Context, payload wire.Payload) (wire.Response, error) {
	if err := ctx.Err(); err != nil {
		return wire.Response{}, err
	}
	return dag.Analyze(payload), nil
}
