package convert

import (
	"fmt"
	"reflect"
)

var stringType = reflect.TypeFor[string]()

// EditorRegistry accepts editors keyed by the type they produce.
type EditorRegistry interface {
	RegisterCustomEditor(target reflect.Type, editor Editor)
}

// EditorRegistrar installs one or more editors into a registry.
type EditorRegistrar interface {
	RegisterCustomEditors(registry EditorRegistry)
}

// ConverterEditorRegistrar adapts a one-directional string converter to the
// Editor contract.
type ConverterEditorRegistrar struct {
	exec ConversionExecutor
}

var _ EditorRegistrar = (*ConverterEditorRegistrar)(nil)

// NewConverterEditorRegistrar validates exec and returns a registrar for it.
// The executor must be non-nil and convert from string; anything else is a
// *ConfigError.
func NewConverterEditorRegistrar(exec ConversionExecutor) (*ConverterEditorRegistrar, error) {
	if exec == nil {
		return nil, &ConfigError{Reason: "a conversion executor is required"}
	}
	if exec.SourceType() != stringType {
		return nil, &ConfigError{Reason: fmt.Sprintf("a string conversion executor is required, got source type %v", exec.SourceType())}
	}
	return &ConverterEditorRegistrar{exec: exec}, nil
}

// TargetType returns the type the registered editor produces.
func (r *ConverterEditorRegistrar) TargetType() reflect.Type {
	return r.exec.TargetType()
}

// RegisterCustomEditors installs a fresh ConverterEditor keyed by the
// executor's target type.
func (r *ConverterEditorRegistrar) RegisterCustomEditors(registry EditorRegistry) {
	editor := newConverterEditor(r.exec)
	registry.RegisterCustomEditor(editor.TargetType(), editor)
}
