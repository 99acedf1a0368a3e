package dsl

import (
	"fmt"

	"github.com/mpoindexter/spring-webflow/pkg/adapters/memory"
	"github.com/mpoindexter/spring-webflow/pkg/model"
)

// Builder manages the construction of one flow.
type Builder struct {
	flow   *model.Flow
	states map[string]model.State
}

// New creates a new flow builder.
func New(id string) *Builder {
	return &Builder{
		flow:   model.NewFlow(id),
		states: make(map[string]model.State),
	}
}

// Parent appends parent flows, merged in the order given.
func (b *Builder) Parent(ids ...string) *Builder {
	b.flow.Parents = append(b.flow.Parents, ids...)
	return b
}

// Abstract marks the flow as usable only as a parent.
func (b *Builder) Abstract() *Builder {
	b.flow.Abstract = true
	return b
}

// Start sets the start state.
func (b *Builder) Start(stateID string) *Builder {
	b.flow.StartState = stateID
	return b
}

// Attribute adds a flow attribute.
func (b *Builder) Attribute(name, value string) *Builder {
	b.flow.Attributes = append(b.flow.Attributes, model.NewAttribute(name, value))
	return b
}

// Secured restricts the flow to the given security attributes.
func (b *Builder) Secured(attributes string) *Builder {
	b.flow.Secured = &model.Secured{Attributes: attributes}
	return b
}

// Input declares a flow input.
func (b *Builder) Input(name string, required bool) *Builder {
	b.flow.Inputs = append(b.flow.Inputs, &model.Input{Mapping: model.Mapping{Name: name, Required: &required}})
	return b
}

// OnStart adds an action run when the flow starts.
func (b *Builder) OnStart(a model.Action) *Builder {
	b.flow.OnStart = append(b.flow.OnStart, a)
	return b
}

// Global adds a transition available in every state.
func (b *Builder) Global(event, target string) *Builder {
	b.flow.GlobalTransitions = append(b.flow.GlobalTransitions, &model.Transition{On: event, To: target})
	return b
}

// Action adds an action state, or returns the existing one.
func (b *Builder) Action(id string) *ActionBuilder {
	return &ActionBuilder{state: lookup(b, id, model.NewActionState)}
}

// View adds a view state, or returns the existing one.
func (b *Builder) View(id string) *ViewBuilder {
	return &ViewBuilder{state: lookup(b, id, model.NewViewState)}
}

// Decision adds a decision state, or returns the existing one.
func (b *Builder) Decision(id string) *DecisionBuilder {
	return &DecisionBuilder{state: lookup(b, id, model.NewDecisionState)}
}

// End adds an end state, or returns the existing one.
func (b *Builder) End(id string) *EndBuilder {
	return &EndBuilder{state: lookup(b, id, model.NewEndState)}
}

// lookup panics when id was already added as another kind of state.
func lookup[T model.State](b *Builder, id string, create func(string) T) T {
	if existing, ok := b.states[id]; ok {
		s, ok := existing.(T)
		if !ok {
			panic(fmt.Sprintf("dsl: state %q already declared as %s", id, existing.Kind()))
		}
		return s
	}
	s := create(id)
	b.states[id] = s
	b.flow.AddState(s)
	return s
}

// Flow returns the flow under construction.
func (b *Builder) Flow() *model.Flow {
	return b.flow
}

// Build compiles the flows into an in-memory loader.
func Build(builders ...*Builder) (*memory.Loader, error) {
	flows := make([]*model.Flow, 0, len(builders))
	for _, b := range builders {
		flows = append(flows, b.flow)
	}

	loader, err := memory.NewFromFlows(flows...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}

	return loader, nil
}
