package model

// ActionState executes its actions and transitions on the outcome.
type ActionState struct {
	StateBase
	Actions     []Action
	Transitions []*Transition
	OnExit      []Action
}

// NewActionState creates an action state with the given identifier.
func NewActionState(id string) *ActionState {
	return &ActionState{StateBase: StateBase{ID: id}}
}

func (s *ActionState) Kind() Kind { return KindActionState }
func (s *ActionState) node()      {}

// StateTransitions returns the outgoing transitions.
func (s *ActionState) StateTransitions() []*Transition { return s.Transitions }

// AddTransition appends a transition, ignoring nil.
func (s *ActionState) AddTransition(t *Transition) {
	if t == nil {
		return
	}
	s.Transitions = append(s.Transitions, t)
}

func (s *ActionState) IsMergeableWith(other *ActionState) bool {
	return other != nil && s.ID == other.ID
}

// Merge folds overlay into s.
func (s *ActionState) Merge(overlay *ActionState) {
	if !s.IsMergeableWith(overlay) {
		panic(notMergeable(s, overlay))
	}
	s.mergeBase(&overlay.StateBase)
	s.Actions = ReplaceList(s.Actions, overlay.Actions)
	s.Transitions = MergeList(s.Transitions, overlay.Transitions)
	s.OnExit = ReplaceList(s.OnExit, overlay.OnExit)
}
