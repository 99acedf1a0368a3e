package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mpoindexter/spring-webflow/internal/compiler"
	"github.com/mpoindexter/spring-webflow/pkg/model"
	"github.com/mpoindexter/spring-webflow/pkg/ports"
)

// Loader implements ports.FlowStore using an in-memory map.
type Loader struct {
	mu    sync.RWMutex
	flows map[string][]byte
}

var _ ports.FlowStore = (*Loader)(nil)

// NewLoader creates a new in-memory loader with the provided raw documents.
func NewLoader(data map[string]string) *Loader {
	flows := make(map[string][]byte)
	for k, v := range data {
		flows[k] = []byte(v)
	}
	return &Loader{
		flows: flows,
	}
}

// NewFromFlows creates a new in-memory loader from model objects.
// This handles serialization automatically, improving DX for tests.
func NewFromFlows(flows ...*model.Flow) (*Loader, error) {
	data := make(map[string][]byte)
	for _, f := range flows {
		if f == nil || f.ID == "" {
			return nil, fmt.Errorf("flow missing ID")
		}
		bytes, err := compiler.Encode(f)
		if err != nil {
			return nil, err
		}
		data[f.ID] = bytes
	}
	return &Loader{flows: data}, nil
}

// GetFlow retrieves the raw definition of a flow by ID.
func (l *Loader) GetFlow(_ context.Context, id string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	content, ok := l.flows[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrFlowNotFound, id)
	}
	return content, nil
}

// ListFlows returns all available flow IDs.
func (l *Loader) ListFlows(_ context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.flows))
	for k := range l.flows {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

// SaveFlow stores a raw definition.
func (l *Loader) SaveFlow(_ context.Context, id string, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.flows[id] = append([]byte(nil), data...)
	return nil
}

// DeleteFlow removes a definition.
func (l *Loader) DeleteFlow(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.flows[id]; !ok {
		return fmt.Errorf("%w: %s", ports.ErrFlowNotFound, id)
	}
	delete(l.flows, id)
	return nil
}
