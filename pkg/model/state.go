package model

import "fmt"

// State is a node of the flow's navigation graph.
type State interface {
	Node
	// StateID returns the identifier of the state within its flow.
	StateID() string
	state()
}

// StateBase carries the elements shared by every state kind.
type StateBase struct {
	ID                string
	Attributes        []*Attribute
	Secured           *Secured
	OnEntry           []Action
	ExceptionHandlers []*ExceptionHandler
}

// StateID returns the state identifier.
func (s *StateBase) StateID() string { return s.ID }

func (s *StateBase) state() {}

// AddOnEntryAction appends an entry action, ignoring nil.
func (s *StateBase) AddOnEntryAction(a Action) {
	if a == nil {
		return
	}
	s.OnEntry = append(s.OnEntry, a)
}

// mergeBase applies the merge rules common to all states, in order:
// attributes (additive), secured (override), entry actions (replace),
// exception handlers (additive).
func (s *StateBase) mergeBase(overlay *StateBase) {
	s.Attributes = MergeList(s.Attributes, overlay.Attributes)
	s.Secured = mergeSecured(s.Secured, overlay.Secured)
	s.OnEntry = ReplaceList(s.OnEntry, overlay.OnEntry)
	s.ExceptionHandlers = MergeList(s.ExceptionHandlers, overlay.ExceptionHandlers)
}

// Transitionable is implemented by states that leave through explicit transitions.
type Transitionable interface {
	State
	StateTransitions() []*Transition
}

// notMergeable builds the panic message for a Merge call whose caller skipped
// the IsMergeableWith check.
func notMergeable[T interface {
	State
	comparable
}](base State, overlay T) string {
	var zero T
	if overlay == zero {
		return fmt.Sprintf("model: cannot merge %s %q with a nil state", base.Kind(), base.StateID())
	}
	return fmt.Sprintf("model: %s %q is not mergeable with %s %q", base.Kind(), base.StateID(), overlay.Kind(), overlay.StateID())
}
