package convert

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// Editor is the legacy, stateful text editing contract: text is pushed in with
// SetAsText and the converted value read back with Value.
type Editor interface {
	SetAsText(text string) error
	AsText() (string, error)
	SetValue(value any)
	Value() any
}

// TextParser is implemented by editors that can convert text without touching
// their own state, which makes them safe to share between goroutines.
type TextParser interface {
	Parse(text string) (any, error)
}

// ConverterEditor exposes a string-sourced ConversionExecutor as an Editor.
// It only converts text to values; AsText always fails.
type ConverterEditor struct {
	exec ConversionExecutor

	mu    sync.Mutex
	value any
}

func newConverterEditor(exec ConversionExecutor) *ConverterEditor {
	return &ConverterEditor{exec: exec}
}

// TargetType returns the type produced by the editor.
func (e *ConverterEditor) TargetType() reflect.Type {
	return e.exec.TargetType()
}

// Bidirectional reports whether the editor can format values back to text.
// It is always false for converter editors.
func (e *ConverterEditor) Bidirectional() bool {
	return false
}

// Parse converts text without modifying the editor.
func (e *ConverterEditor) Parse(text string) (any, error) {
	return e.exec.Execute(text)
}

// SetAsText converts text and stores the result as the editor's value.
// On failure the previous value is kept.
func (e *ConverterEditor) SetAsText(text string) error {
	v, err := e.Parse(text)
	if err != nil {
		return err
	}
	e.SetValue(v)
	return nil
}

// AsText is not supported by converter editors.
func (e *ConverterEditor) AsText() (string, error) {
	return "", fmt.Errorf("convert: formatting %v values as text: %w", e.exec.TargetType(), errors.ErrUnsupported)
}

// SetValue stores value as the editor's current value.
func (e *ConverterEditor) SetValue(value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.value = value
}

// Value returns the editor's current value.
func (e *ConverterEditor) Value() any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}
