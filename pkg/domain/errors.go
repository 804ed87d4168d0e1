package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidPortReference is returned when an edge endpoint names a port the
// node does not currently expose in that direction.
var ErrInvalidPortReference = errors.New("invalid port reference")

// ErrInvalidConfiguration is returned when a node configuration violates the
// schema of its type.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrDanglingEdge marks an edge pruned because one of its ports disappeared.
var ErrDanglingEdge = errors.New("dangling edge")

// ErrNodeNotFound is returned when a node id is not part of the pipeline.
var ErrNodeNotFound = errors.New("node not found")

// ErrEdgeNotFound is returned when an edge id is not part of the pipeline.
var ErrEdgeNotFound = errors.New("edge not found")

// ErrDuplicateNode is returned when restoring a node whose id is already taken.
var ErrDuplicateNode = errors.New("duplicate node id")

// ErrDuplicateEdge is returned when restoring an edge whose id is already taken.
var ErrDuplicateEdge = errors.New("duplicate edge id")

// ErrUnknownNodeType is returned for a type outside the palette.
var ErrUnknownNodeType = errors.New("unknown node type")

// ErrTimeout is returned when a submission did not resolve in time.
// It is retryable.
var ErrTimeout = errors.New("submission timed out")

// ErrNetworkUnreachable is returned when the verdict service cannot be reached.
var ErrNetworkUnreachable = errors.New("verdict service unreachable")

// ErrRemote is returned when the verdict service answers with a failure status.
var ErrRemote = errors.New("verdict service error")

// ConfigError describes a single field that failed validation.
type ConfigError struct {
	Type   NodeType
	Field  string
	Reason string
	Value  any
}

func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: field %q: %s", e.Type, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: field %q: %s (got %v)", e.Type, e.Field, e.Reason, e.Value)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfiguration }

// RemoteError carries the non-success status returned by the verdict service.
type RemoteError struct {
	StatusCode int
	Detail     string
}

func (e *RemoteError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("verdict service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("verdict service returned status %d: %s", e.StatusCode, e.Detail)
}

func (e *RemoteError) Unwrap() error { return ErrRemote }
