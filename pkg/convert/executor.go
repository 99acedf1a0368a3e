package convert

import (
	"fmt"
	"reflect"
)

// ConversionExecutor converts values of a fixed source type to a fixed target type.
type ConversionExecutor interface {
	SourceType() reflect.Type
	TargetType() reflect.Type
	// Execute converts source. Failures are returned as *ConversionError.
	Execute(source any) (any, error)
}

type funcExecutor[S, T any] struct {
	fn func(S) (T, error)
}

// NewExecutor builds a ConversionExecutor from a typed conversion function.
func NewExecutor[S, T any](fn func(S) (T, error)) ConversionExecutor {
	return &funcExecutor[S, T]{fn: fn}
}

func (e *funcExecutor[S, T]) SourceType() reflect.Type { return reflect.TypeFor[S]() }

func (e *funcExecutor[S, T]) TargetType() reflect.Type { return reflect.TypeFor[T]() }

func (e *funcExecutor[S, T]) Execute(source any) (any, error) {
	s, ok := source.(S)
	if !ok {
		return nil, e.fail(source, fmt.Errorf("expected %v, got %T", e.SourceType(), source))
	}
	if e.fn == nil {
		return nil, e.fail(source, fmt.Errorf("no conversion function"))
	}
	v, err := e.fn(s)
	if err != nil {
		return nil, e.fail(source, err)
	}
	return v, nil
}

func (e *funcExecutor[S, T]) fail(value any, err error) error {
	return &ConversionError{
		Value:  value,
		Source: e.SourceType(),
		Target: e.TargetType(),
		Err:    err,
	}
}
