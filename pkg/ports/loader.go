package ports

import (
	"context"
	"errors"
)

// ErrFlowNotFound is returned by loaders when no definition exists for an ID.
var ErrFlowNotFound = errors.New("flow not found")

// FlowLoader defines how flow definition documents are retrieved.
// This allows the storage layer (Loam, Redis, Memory) to be decoupled from the compiler.
type FlowLoader interface {
	// GetFlow retrieves the raw definition of a flow by ID.
	// It returns the raw bytes (YAML or JSON, which the compiler will parse).
	// Missing flows are reported with an error wrapping ErrFlowNotFound.
	GetFlow(ctx context.Context, id string) ([]byte, error)

	// ListFlows returns the IDs of all flows available, sorted.
	ListFlows(ctx context.Context) ([]string, error)
}

// Watchable is implemented by loaders that can signal definition changes.
type Watchable interface {
	// Watch emits the ID of each changed flow until ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
