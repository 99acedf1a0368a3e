package convert

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// ErrNoEditor is returned when no editor is registered for a type.
var ErrNoEditor = errors.New("no editor registered")

// Registry is an in-memory EditorRegistry.
type Registry struct {
	mu      sync.RWMutex
	editors map[reflect.Type]Editor
}

var _ EditorRegistry = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		editors: make(map[reflect.Type]Editor),
	}
}

// RegisterCustomEditor installs editor for target.
// If an editor for target exists, it is overwritten.
func (r *Registry) RegisterCustomEditor(target reflect.Type, editor Editor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.editors[target] = editor
}

// FindCustomEditor returns the editor registered for target.
func (r *Registry) FindCustomEditor(target reflect.Type) (Editor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.editors[target]
	return e, ok
}

// Types lists the registered target types ordered by name.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]reflect.Type, 0, len(r.editors))
	for t := range r.editors {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })
	return types
}

// ParseAs converts text to target using the registered editor. Editors that
// implement TextParser are used without mutation; others go through the
// SetAsText/Value pair.
func (r *Registry) ParseAs(target reflect.Type, text string) (any, error) {
	editor, ok := r.FindCustomEditor(target)
	if !ok {
		return nil, fmt.Errorf("convert: %v: %w", target, ErrNoEditor)
	}
	if p, ok := editor.(TextParser); ok {
		return p.Parse(text)
	}
	if err := editor.SetAsText(text); err != nil {
		return nil, err
	}
	return editor.Value(), nil
}
