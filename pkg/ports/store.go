package ports

import "context"

// FlowStore is a FlowLoader that can also publish and retract definitions.
type FlowStore interface {
	FlowLoader

	// SaveFlow stores (or replaces) the raw definition for a flow ID.
	SaveFlow(ctx context.Context, id string, data []byte) error

	// DeleteFlow removes a definition. Deleting a missing flow returns ErrFlowNotFound.
	DeleteFlow(ctx context.Context, id string) error
}
