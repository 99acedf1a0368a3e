package model

// Transition moves the flow from one state to another in response to an event
// (On) or an error (OnException).
type Transition struct {
	On          string
	OnException string
	To          string
	Bind        *bool
	Validate    *bool
	History     string
	Attributes  []*Attribute
	Secured     *Secured
	Actions     []Action
}

func (t *Transition) Kind() Kind { return KindTransition }
func (t *Transition) node()      {}

// IsMergeableWith reports whether both transitions fire on the same event and exception.
func (t *Transition) IsMergeableWith(other *Transition) bool {
	return other != nil && t.On == other.On && t.OnException == other.OnException
}

// Merge composes overlay into the transition.
func (t *Transition) Merge(overlay *Transition) {
	t.To = override(t.To, overlay.To)
	t.Bind = override(t.Bind, overlay.Bind)
	t.Validate = override(t.Validate, overlay.Validate)
	t.History = override(t.History, overlay.History)
	t.Attributes = MergeList(t.Attributes, overlay.Attributes)
	t.Secured = mergeSecured(t.Secured, overlay.Secured)
	t.Actions = ReplaceList(t.Actions, overlay.Actions)
}
