package model

import (
	"fmt"
	"strings"
)

// Flow is the root of a flow definition.
type Flow struct {
	ID string
	// Parents lists the flows this flow inherits from, in merge order.
	Parents    []string
	StartState string
	// Abstract flows may only be used as parents.
	Abstract bool

	Attributes        []*Attribute
	Secured           *Secured
	Inputs            []*Input
	Outputs           []*Output
	OnStart           []Action
	States            []State
	GlobalTransitions []*Transition
	OnEnd             []Action
	ExceptionHandlers []*ExceptionHandler
}

// NewFlow creates an empty flow definition.
func NewFlow(id string) *Flow {
	return &Flow{ID: id}
}

func (f *Flow) Kind() Kind { return KindFlow }
func (f *Flow) node()      {}

// AddState appends a state, ignoring nil.
func (f *Flow) AddState(s State) {
	if s == nil {
		return
	}
	f.States = append(f.States, s)
}

// State looks up a state by identifier.
func (f *Flow) State(id string) (State, bool) {
	for _, s := range f.States {
		if s.StateID() == id {
			return s, true
		}
	}
	return nil, false
}

// StartStateID returns the declared start state, or the first state when none
// is declared.
func (f *Flow) StartStateID() string {
	if f.StartState != "" {
		return f.StartState
	}
	if len(f.States) > 0 {
		return f.States[0].StateID()
	}
	return ""
}

// ParseParents splits a comma separated parent attribute into flow identifiers.
func ParseParents(attr string) []string {
	var parents []string
	for _, p := range strings.Split(attr, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parents = append(parents, p)
		}
	}
	return parents
}

// Merge folds overlay (typically a child flow) into f (its parent).
//
// Identity, parents and the abstract marker are taken from overlay since they
// describe the flow being assembled rather than the one inherited from. States
// are merged by identifier; a state declared with different kinds on each side
// yields a *KindMismatchError and leaves f partially merged, so callers must
// discard f on error.
func (f *Flow) Merge(overlay *Flow) error {
	if overlay == nil {
		return nil
	}

	states, err := MergeStates(f.States, overlay.States)
	if err != nil {
		return fmt.Errorf("merge flow %q into %q: %w", overlay.ID, f.ID, err)
	}

	f.ID = override(f.ID, overlay.ID)
	f.Parents = overlay.Parents
	f.Abstract = overlay.Abstract
	f.StartState = override(f.StartState, overlay.StartState)
	f.Attributes = MergeList(f.Attributes, overlay.Attributes)
	f.Secured = mergeSecured(f.Secured, overlay.Secured)
	f.Inputs = MergeList(f.Inputs, overlay.Inputs)
	f.Outputs = MergeList(f.Outputs, overlay.Outputs)
	f.OnStart = ReplaceList(f.OnStart, overlay.OnStart)
	f.States = states
	f.GlobalTransitions = MergeList(f.GlobalTransitions, overlay.GlobalTransitions)
	f.OnEnd = ReplaceList(f.OnEnd, overlay.OnEnd)
	f.ExceptionHandlers = MergeList(f.ExceptionHandlers, overlay.ExceptionHandlers)
	return nil
}
