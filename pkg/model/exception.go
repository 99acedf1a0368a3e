package model

// ExceptionHandler references a handler that recovers from errors raised while
// executing a flow or state.
type ExceptionHandler struct {
	Bean string
}

func (h *ExceptionHandler) Kind() Kind { return KindExceptionHandler }
func (h *ExceptionHandler) node()      {}

// IsMergeableWith reports whether both handlers reference the same bean.
func (h *ExceptionHandler) IsMergeableWith(other *ExceptionHandler) bool {
	return other != nil && h.Bean != "" && h.Bean == other.Bean
}

// Merge is a no-op: a handler carries nothing besides its identity.
func (h *ExceptionHandler) Merge(overlay *ExceptionHandler) {}
