package model

import "fmt"

// KindMismatchError is returned when two nodes share an identity key but are of
// different concrete kinds, e.g. a view state and a decision state both named "review".
type KindMismatchError struct {
	Key         string
	BaseKind    Kind
	OverlayKind Kind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("cannot merge %s %q with %s %q: node kinds differ", e.BaseKind, e.Key, e.OverlayKind, e.Key)
}
