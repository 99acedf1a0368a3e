package model

// Mapping describes how a value flows into or out of a flow.
type Mapping struct {
	Name     string
	Value    string
	Type     string
	// Required is nil when the document leaves it unset.
	Required *bool
}

func (m *Mapping) mergeable(other *Mapping) bool {
	return m.Name != "" && m.Name == other.Name
}

func (m *Mapping) merge(overlay *Mapping) {
	m.Value = override(m.Value, overlay.Value)
	m.Type = override(m.Type, overlay.Type)
	m.Required = override(m.Required, overlay.Required)
}

// IsRequired reports whether the mapping must produce a value.
func (m *Mapping) IsRequired() bool {
	return m.Required != nil && *m.Required
}

// Input maps a value into the flow on start.
type Input struct {
	Mapping
}

func (i *Input) Kind() Kind { return KindInput }
func (i *Input) node()      {}

func (i *Input) IsMergeableWith(other *Input) bool {
	return other != nil && i.mergeable(&other.Mapping)
}

func (i *Input) Merge(overlay *Input) { i.merge(&overlay.Mapping) }

// Output maps a value out of the flow (or an end state) on completion.
type Output struct {
	Mapping
}

func (o *Output) Kind() Kind { return KindOutput }
func (o *Output) node()      {}

func (o *Output) IsMergeableWith(other *Output) bool {
	return other != nil && o.mergeable(&other.Mapping)
}

func (o *Output) Merge(overlay *Output) { o.merge(&overlay.Mapping) }
