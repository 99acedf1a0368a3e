package validator

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/mpoindexter/spring-webflow/pkg/convert"
	"github.com/mpoindexter/spring-webflow/pkg/model"
)

type config struct {
	registry     *convert.Registry
	reachability bool
}

// Option configures Validate.
type Option func(*config)

// WithRegistry sets the editor registry used to check typed attribute values.
// Without one, a registry with the default editors is used.
func WithRegistry(r *convert.Registry) Option {
	return func(c *config) {
		c.registry = r
	}
}

// WithReachability reports states that cannot be reached from the start state.
func WithReachability() Option {
	return func(c *config) {
		c.reachability = true
	}
}

// Validate checks an assembled flow for structural problems. It returns nil or
// an *AggregateError listing every *ValidationError found.
func Validate(flow *model.Flow, opts ...Option) error {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.registry == nil {
		cfg.registry = convert.NewRegistry()
		if err := convert.RegisterDefaults(cfg.registry); err != nil {
			return fmt.Errorf("failed to register default editors: %w", err)
		}
	}

	v := &walker{cfg: cfg, ids: make(map[string]bool)}
	v.flow(flow)

	if len(v.errs) > 0 {
		return &AggregateError{Flow: flow.ID, Errors: v.errs}
	}
	return nil
}

type walker struct {
	cfg  *config
	ids  map[string]bool
	errs []error
}

func (w *walker) fail(key, reason string, value any) {
	w.errs = append(w.errs, &ValidationError{Key: key, Reason: reason, Value: value})
}

func (w *walker) flow(f *model.Flow) {
	if len(f.States) == 0 {
		w.fail("states", "flow declares no states", nil)
		return
	}

	for i, s := range f.States {
		id := s.StateID()
		if id == "" {
			w.fail(fmt.Sprintf("states[%d].id", i), "state id is required", nil)
			continue
		}
		if w.ids[id] {
			w.fail(fmt.Sprintf("states[%s]", id), "duplicate state id", nil)
		}
		w.ids[id] = true
	}

	if start := f.StartState; start != "" && !w.ids[start] {
		w.fail("start-state", "names no state", start)
	}

	w.attributes("attributes", f.Attributes)
	checkMappings(w, "inputs", f.Inputs, func(in *model.Input) model.Mapping { return in.Mapping })
	checkMappings(w, "outputs", f.Outputs, func(out *model.Output) model.Mapping { return out.Mapping })
	w.actions("on-start", f.OnStart)
	w.actions("on-end", f.OnEnd)
	w.transitions("global-transitions", f.GlobalTransitions)

	for _, s := range f.States {
		w.state(s)
	}

	if w.cfg.reachability {
		w.reachable(f)
	}
}

func (w *walker) state(s model.State) {
	prefix := fmt.Sprintf("states[%s]", s.StateID())

	switch st := s.(type) {
	case *model.ActionState:
		w.base(prefix, &st.StateBase)
		w.actions(prefix+".actions", st.Actions)
		w.transitions(prefix+".transitions", st.Transitions)
		w.actions(prefix+".on-exit", st.OnExit)
	case *model.ViewState:
		w.base(prefix, &st.StateBase)
		w.actions(prefix+".on-render", st.OnRender)
		w.transitions(prefix+".transitions", st.Transitions)
		w.actions(prefix+".on-exit", st.OnExit)
	case *model.DecisionState:
		w.base(prefix, &st.StateBase)
		if len(st.Ifs) == 0 {
			w.fail(prefix+".if", "decision state has no conditions", nil)
		}
		for i, cond := range st.Ifs {
			w.conditional(fmt.Sprintf("%s.if[%d]", prefix, i), cond)
		}
		w.actions(prefix+".on-exit", st.OnExit)
	case *model.EndState:
		w.base(prefix, &st.StateBase)
		checkMappings(w, prefix+".outputs", st.Outputs, func(out *model.Output) model.Mapping { return out.Mapping })
	}
}

func (w *walker) base(prefix string, b *model.StateBase) {
	w.attributes(prefix+".attributes", b.Attributes)
	w.actions(prefix+".on-entry", b.OnEntry)
}

func (w *walker) conditional(key string, cond *model.If) {
	if strings.TrimSpace(cond.Test) == "" {
		w.fail(key+".test", "test is required", nil)
	} else if _, err := expr.Compile(cond.Test, expr.AllowUndefinedVariables()); err != nil {
		w.fail(key+".test", "does not compile: "+firstLine(err.Error()), cond.Test)
	}
	if cond.Then == "" {
		w.fail(key+".then", "target is required", nil)
	} else {
		w.target(key+".then", cond.Then)
	}
	if cond.Else != "" {
		w.target(key+".else", cond.Else)
	}
}

func (w *walker) transitions(prefix string, ts []*model.Transition) {
	for i, t := range ts {
		key := fmt.Sprintf("%s[%d]", prefix, i)
		if t.To != "" {
			w.target(key+".to", t.To)
		}
		w.attributes(key+".attributes", t.Attributes)
		w.actions(key+".actions", t.Actions)
	}
}

// target reports a reference to an undeclared state. Expression targets are
// resolved at runtime and are not checked.
func (w *walker) target(key, id string) {
	if isExpression(id) {
		return
	}
	if !w.ids[id] {
		w.fail(key, "names no state", id)
	}
}

func (w *walker) attributes(prefix string, attrs []*model.Attribute) {
	for _, a := range attrs {
		key := fmt.Sprintf("%s[%s]", prefix, a.Name)
		if a.Name == "" {
			w.fail(prefix, "attribute name is required", nil)
			continue
		}
		if a.Type == "" {
			continue
		}
		target, ok := convert.LookupType(a.Type)
		if !ok {
			w.fail(key+".type", "unknown type", a.Type)
			continue
		}
		if _, registered := w.cfg.registry.FindCustomEditor(target); !registered {
			// Strings and other types without an editor are taken as-is.
			continue
		}
		if _, err := w.cfg.registry.ParseAs(target, a.Value); err != nil {
			w.fail(key+".value", fmt.Sprintf("is not a valid %s", a.Type), a.Value)
		}
	}
}

func checkMappings[T any](w *walker, prefix string, items []T, get func(T) model.Mapping) {
	for _, item := range items {
		m := get(item)
		if m.Name == "" {
			w.fail(prefix, "name is required", nil)
			continue
		}
		if m.Type != "" {
			if _, ok := convert.LookupType(m.Type); !ok {
				w.fail(fmt.Sprintf("%s[%s].type", prefix, m.Name), "unknown type", m.Type)
			}
		}
	}
}

func (w *walker) actions(prefix string, actions []model.Action) {
	for i, a := range actions {
		key := fmt.Sprintf("%s[%d]", prefix, i)
		switch act := a.(type) {
		case *model.Evaluate:
			if strings.TrimSpace(act.Expression) == "" {
				w.fail(key+".expression", "expression is required", nil)
			}
			w.attributes(key+".attributes", act.Attributes)
		case *model.Set:
			if act.Name == "" {
				w.fail(key+".name", "name is required", nil)
			}
			if act.Type != "" {
				if _, ok := convert.LookupType(act.Type); !ok {
					w.fail(key+".type", "unknown type", act.Type)
				}
			}
			w.attributes(key+".attributes", act.Attributes)
		case *model.Render:
			if strings.TrimSpace(act.Fragments) == "" {
				w.fail(key+".fragments", "fragments are required", nil)
			}
			w.attributes(key+".attributes", act.Attributes)
		}
	}
}

// reachable walks transitions breadth-first from the start state.
func (w *walker) reachable(f *model.Flow) {
	start := f.StartStateID()
	if !w.ids[start] {
		return
	}

	// Global transitions apply in every state.
	var global []string
	for _, t := range f.GlobalTransitions {
		global = append(global, t.To)
	}

	visited := make(map[string]bool)
	queue := []string{start}
	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		s, ok := f.State(currentID)
		if !ok {
			continue
		}
		next := append(successors(s), global...)
		for _, target := range next {
			if target != "" && !visited[target] && w.ids[target] {
				queue = append(queue, target)
			}
		}
	}

	for _, s := range f.States {
		if id := s.StateID(); id != "" && !visited[id] {
			w.fail(fmt.Sprintf("states[%s]", id), "unreachable from start state", start)
		}
	}
}

func successors(s model.State) []string {
	var out []string
	switch st := s.(type) {
	case model.Transitionable:
		for _, t := range st.StateTransitions() {
			out = append(out, t.To)
		}
	case *model.DecisionState:
		for _, cond := range st.Ifs {
			out = append(out, cond.Then, cond.Else)
		}
	}
	return out
}

func isExpression(target string) bool {
	return strings.Contains(target, "${") || strings.Contains(target, "#{")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
