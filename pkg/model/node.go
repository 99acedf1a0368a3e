package model

// Kind identifies the concrete variant of a flow model node.
type Kind string

// Node kinds. The set is closed: every Node implementation lives in this package.
const (
	KindFlow             Kind = "flow"
	KindAttribute        Kind = "attribute"
	KindSecured          Kind = "secured"
	KindInput            Kind = "input"
	KindOutput           Kind = "output"
	KindEvaluate         Kind = "evaluate"
	KindSet              Kind = "set"
	KindRender           Kind = "render"
	KindExceptionHandler Kind = "exception-handler"
	KindIf               Kind = "if"
	KindTransition       Kind = "transition"
	KindActionState      Kind = "action-state"
	KindViewState        Kind = "view-state"
	KindDecisionState    Kind = "decision-state"
	KindEndState         Kind = "end-state"
)

// Node is a single element of a flow definition.
type Node interface {
	Kind() Kind

	// node seals the interface to the kinds declared in this package.
	node()
}

// Mergeable is implemented by node kinds whose instances can be composed
// with an overlay of the same kind.
type Mergeable[T any] interface {
	Node
	// IsMergeableWith reports whether other denotes the same structural element.
	IsMergeableWith(other T) bool
	// Merge folds overlay into the receiver. The caller must have checked
	// IsMergeableWith first.
	Merge(overlay T)
}
