package model

// If is a conditional branch of a decision state. When Test evaluates to true
// the flow moves to Then, otherwise to Else (if set) or on to the next branch.
type If struct {
	Test string
	Then string
	Else string
}

// NewIf creates a conditional branch.
func NewIf(test, then, els string) *If {
	return &If{Test: test, Then: then, Else: els}
}

func (i *If) Kind() Kind { return KindIf }
func (i *If) node()      {}

// IsMergeableWith reports whether both branches test the same expression.
func (i *If) IsMergeableWith(other *If) bool {
	return other != nil && i.Test != "" && i.Test == other.Test
}

// Merge overrides the branch targets with those set on overlay.
func (i *If) Merge(overlay *If) {
	i.Then = override(i.Then, overlay.Then)
	i.Else = override(i.Else, overlay.Else)
}
