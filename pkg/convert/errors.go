package convert

import (
	"fmt"
	"reflect"
)

// ConfigError reports an invalid converter or editor configuration.
// It is raised at construction time, before anything is registered.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "convert: invalid configuration: " + e.Reason
}

// ConversionError reports a failure to convert Value from Source to Target.
type ConversionError struct {
	Value  any
	Source reflect.Type
	Target reflect.Type
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert: cannot convert %#v from %v to %v: %v", e.Value, e.Source, e.Target, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
