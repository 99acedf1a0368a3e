package model

// Attribute is a named, optionally typed, metadata value attached to a node.
type Attribute struct {
	Name  string
	Type  string
	Value string
}

// NewAttribute creates an untyped attribute.
func NewAttribute(name, value string) *Attribute {
	return &Attribute{Name: name, Value: value}
}

func (a *Attribute) Kind() Kind { return KindAttribute }
func (a *Attribute) node()      {}

// IsMergeableWith reports whether both attributes carry the same non-empty name.
func (a *Attribute) IsMergeableWith(other *Attribute) bool {
	return other != nil && a.Name != "" && a.Name == other.Name
}

// Merge overrides the type and value with those set on overlay.
func (a *Attribute) Merge(overlay *Attribute) {
	a.Type = override(a.Type, overlay.Type)
	a.Value = override(a.Value, overlay.Value)
}

// Secured holds the security constraint of a flow, state or transition.
type Secured struct {
	// Attributes is the comma separated list of required security attributes.
	Attributes string
	// Match is either "any" or "all".
	Match string
}

func (s *Secured) Kind() Kind { return KindSecured }
func (s *Secured) node()      {}

// mergeSecured is a single-value override: the overlay wins whenever present.
func mergeSecured(base, overlay *Secured) *Secured {
	return override(base, overlay)
}
