package dsl

import "github.com/mpoindexter/spring-webflow/pkg/model"

// ActionBuilder provides a fluent API for configuring an action state.
type ActionBuilder struct {
	state *model.ActionState
}

// Evaluate adds an expression to run.
func (a *ActionBuilder) Evaluate(expression string) *ActionBuilder {
	a.state.Actions = append(a.state.Actions, &model.Evaluate{Expression: expression})
	return a
}

// Set adds an assignment.
func (a *ActionBuilder) Set(name, value string) *ActionBuilder {
	a.state.Actions = append(a.state.Actions, &model.Set{Name: name, Value: value})
	return a
}

// On adds a transition taken on event.
func (a *ActionBuilder) On(event, target string) *ActionBuilder {
	a.state.AddTransition(&model.Transition{On: event, To: target})
	return a
}

// OnException adds a transition taken when the named error is raised.
func (a *ActionBuilder) OnException(errorName, target string) *ActionBuilder {
	a.state.AddTransition(&model.Transition{OnException: errorName, To: target})
	return a
}

// Entry adds an entry action.
func (a *ActionBuilder) Entry(action model.Action) *ActionBuilder {
	a.state.AddOnEntryAction(action)
	return a
}

// Build returns the underlying state.
func (a *ActionBuilder) Build() *model.ActionState { return a.state }

// ViewBuilder provides a fluent API for configuring a view state.
type ViewBuilder struct {
	state *model.ViewState
}

// Render sets the view to render.
func (v *ViewBuilder) Render(view string) *ViewBuilder {
	v.state.View = view
	return v
}

// Model names the object bound to the view.
func (v *ViewBuilder) Model(expression string) *ViewBuilder {
	v.state.Model = expression
	return v
}

// Redirect sets whether the view is rendered after a redirect.
func (v *ViewBuilder) Redirect(redirect bool) *ViewBuilder {
	v.state.Redirect = &redirect
	return v
}

// On adds a transition taken on event.
func (v *ViewBuilder) On(event, target string) *ViewBuilder {
	v.state.AddTransition(&model.Transition{On: event, To: target})
	return v
}

// Entry adds an entry action.
func (v *ViewBuilder) Entry(action model.Action) *ViewBuilder {
	v.state.AddOnEntryAction(action)
	return v
}

// Build returns the underlying state.
func (v *ViewBuilder) Build() *model.ViewState { return v.state }

// DecisionBuilder provides a fluent API for configuring a decision state.
type DecisionBuilder struct {
	state *model.DecisionState
}

// If adds a condition; otherwise may be empty.
func (d *DecisionBuilder) If(test, then, otherwise string) *DecisionBuilder {
	d.state.AddIf(model.NewIf(test, then, otherwise))
	return d
}

// Exit adds an exit action.
func (d *DecisionBuilder) Exit(action model.Action) *DecisionBuilder {
	d.state.AddOnExitAction(action)
	return d
}

// Build returns the underlying state.
func (d *DecisionBuilder) Build() *model.DecisionState { return d.state }

// EndBuilder provides a fluent API for configuring an end state.
type EndBuilder struct {
	state *model.EndState
}

// Render sets the final view.
func (e *EndBuilder) Render(view string) *EndBuilder {
	e.state.View = view
	return e
}

// Commit sets whether the flow's persistence context is committed on end.
func (e *EndBuilder) Commit(commit bool) *EndBuilder {
	e.state.Commit = &commit
	return e
}

// Output declares an output mapping.
func (e *EndBuilder) Output(name, value string) *EndBuilder {
	e.state.Outputs = append(e.state.Outputs, &model.Output{Mapping: model.Mapping{Name: name, Value: value}})
	return e
}

// Build returns the underlying state.
func (e *EndBuilder) Build() *model.EndState { return e.state }
