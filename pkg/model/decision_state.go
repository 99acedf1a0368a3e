package model

// DecisionState is an idempotent routing state: it evaluates its conditional
// branches in order and the first matching branch selects the next state.
type DecisionState struct {
	StateBase
	// Ifs are evaluated in declaration order by the execution engine.
	Ifs    []*If
	OnExit []Action
}

// NewDecisionState creates a decision state with the given identifier.
func NewDecisionState(id string) *DecisionState {
	return &DecisionState{StateBase: StateBase{ID: id}}
}

func (s *DecisionState) Kind() Kind { return KindDecisionState }
func (s *DecisionState) node()      {}

// AddIf appends a conditional branch, ignoring nil.
func (s *DecisionState) AddIf(conditional *If) {
	if conditional == nil {
		return
	}
	s.Ifs = append(s.Ifs, conditional)
}

// AddIfs appends the given branches in order.
func (s *DecisionState) AddIfs(ifs ...*If) {
	for _, i := range ifs {
		s.AddIf(i)
	}
}

// AddOnExitAction appends an exit action, ignoring nil.
func (s *DecisionState) AddOnExitAction(a Action) {
	if a == nil {
		return
	}
	s.OnExit = append(s.OnExit, a)
}

// AddOnExitActions appends the given exit actions in order.
func (s *DecisionState) AddOnExitActions(actions ...Action) {
	for _, a := range actions {
		s.AddOnExitAction(a)
	}
}

// IsMergeableWith reports whether other is a decision state with the same
// identifier. Two states without an identifier are mergeable.
func (s *DecisionState) IsMergeableWith(other *DecisionState) bool {
	return other != nil && s.ID == other.ID
}

// Merge folds overlay into s. Branches and exception handlers are merged
// additively, entry and exit actions are replaced and the security constraint
// is overridden when overlay declares one.
//
// Merging a state that is not mergeable with s is a programming error and panics.
func (s *DecisionState) Merge(overlay *DecisionState) {
	if !s.IsMergeableWith(overlay) {
		panic(notMergeable(s, overlay))
	}
	s.mergeBase(&overlay.StateBase)
	s.Ifs = MergeList(s.Ifs, overlay.Ifs)
	s.OnExit = ReplaceList(s.OnExit, overlay.OnExit)
}
