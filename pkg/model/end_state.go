package model

// EndState terminates the flow, optionally rendering a final view.
type EndState struct {
	StateBase
	View    string
	Commit  *bool
	Outputs []*Output
}

// NewEndState creates an end state with the given identifier.
func NewEndState(id string) *EndState {
	return &EndState{StateBase: StateBase{ID: id}}
}

func (s *EndState) Kind() Kind { return KindEndState }
func (s *EndState) node()      {}

func (s *EndState) IsMergeableWith(other *EndState) bool {
	return other != nil && s.ID == other.ID
}

// Merge folds overlay into s.
func (s *EndState) Merge(overlay *EndState) {
	if !s.IsMergeableWith(overlay) {
		panic(notMergeable(s, overlay))
	}
	s.mergeBase(&overlay.StateBase)
	s.View = override(s.View, overlay.View)
	s.Commit = override(s.Commit, overlay.Commit)
	s.Outputs = MergeList(s.Outputs, overlay.Outputs)
}
