package model

// ViewState renders a view and pauses the flow until the user signals an event.
type ViewState struct {
	StateBase
	View        string
	Redirect    *bool
	Popup       *bool
	Model       string
	OnRender    []Action
	Transitions []*Transition
	OnExit      []Action
}

// NewViewState creates a view state with the given identifier.
func NewViewState(id string) *ViewState {
	return &ViewState{StateBase: StateBase{ID: id}}
}

func (s *ViewState) Kind() Kind { return KindViewState }
func (s *ViewState) node()      {}

// StateTransitions returns the outgoing transitions.
func (s *ViewState) StateTransitions() []*Transition { return s.Transitions }

// AddTransition appends a transition, ignoring nil.
func (s *ViewState) AddTransition(t *Transition) {
	if t == nil {
		return
	}
	s.Transitions = append(s.Transitions, t)
}

func (s *ViewState) IsMergeableWith(other *ViewState) bool {
	return other != nil && s.ID == other.ID
}

// Merge folds overlay into s.
func (s *ViewState) Merge(overlay *ViewState) {
	if !s.IsMergeableWith(overlay) {
		panic(notMergeable(s, overlay))
	}
	s.mergeBase(&overlay.StateBase)
	s.View = override(s.View, overlay.View)
	s.Redirect = override(s.Redirect, overlay.Redirect)
	s.Popup = override(s.Popup, overlay.Popup)
	s.Model = override(s.Model, overlay.Model)
	s.OnRender = ReplaceList(s.OnRender, overlay.OnRender)
	s.Transitions = MergeList(s.Transitions, overlay.Transitions)
	s.OnExit = ReplaceList(s.OnExit, overlay.OnExit)
}
