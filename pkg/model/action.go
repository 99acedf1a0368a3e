package model

// Action is an executable step attached to a flow, state or transition.
// Action lists are never merged element-wise; they are replaced as a whole.
type Action interface {
	Node
	action()
}

// Evaluate evaluates an expression and optionally stores its result.
type Evaluate struct {
	Expression string
	Result     string
	ResultType string
	Attributes []*Attribute
}

func (e *Evaluate) Kind() Kind { return KindEvaluate }
func (e *Evaluate) node()      {}
func (e *Evaluate) action()    {}

// Set assigns the result of an expression to a named target.
type Set struct {
	Name       string
	Value      string
	Type       string
	Attributes []*Attribute
}

func (s *Set) Kind() Kind { return KindSet }
func (s *Set) node()      {}
func (s *Set) action()    {}

// Render requests partial re-rendering of view fragments.
type Render struct {
	Fragments  string
	Attributes []*Attribute
}

func (r *Render) Kind() Kind { return KindRender }
func (r *Render) node()      {}
func (r *Render) action()    {}
