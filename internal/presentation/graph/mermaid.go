package graph

import (
	"fmt"
	"strings"

	"github.com/mpoindexter/spring-webflow/pkg/model"
)

// GraphOverlay marks states for highlighting on the graph.
type GraphOverlay struct {
	// Inherited lists states that came from a parent flow.
	Inherited []string
	// Focus is a single state to emphasize.
	Focus string
}

// GenerateMermaid produces a Mermaid flowchart for a flow.
// It applies semantic styling:
// - Start: ((Circle))
// - Action: [[Subroutine]]
// - View: [/Parallelogram/]
// - Decision: {Rhombus}
// - End: ([Stadium])
// Transitions into expressions (${...}) are drawn to a shared "dynamic" node.
func GenerateMermaid(flow *model.Flow, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	start := flow.StartStateID()
	dynamic := false

	edge := func(from, label, to string, dotted bool) {
		if isExpression(to) {
			dynamic = true
			to = "dynamic"
		}
		arrow := "-->"
		if dotted {
			arrow = "-.->"
		}
		if label != "" {
			safeLabel := strings.ReplaceAll(label, "\"", "'")
			arrow = fmt.Sprintf("-- \"%s\" -->", safeLabel)
			if dotted {
				arrow = fmt.Sprintf("-. \"%s\" .->", safeLabel)
			}
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(from), arrow, sanitizeMermaidID(to))
	}

	for _, s := range flow.States {
		id := s.StateID()
		safeID := sanitizeMermaidID(id)

		opener, closer := "[", "]"
		switch s.(type) {
		case *model.ActionState:
			opener, closer = "[[", "]]"
		case *model.ViewState:
			opener, closer = "[/", "/]"
		case *model.DecisionState:
			opener, closer = "{", "}"
		case *model.EndState:
			opener, closer = "([", "])"
		}
		if id == start {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, id, closer)

		switch st := s.(type) {
		case model.Transitionable:
			for _, t := range st.StateTransitions() {
				if t.To == "" {
					continue
				}
				if t.OnException != "" {
					edge(id, "⚠ "+t.OnException, t.To, true)
					continue
				}
				edge(id, t.On, t.To, false)
			}
		case *model.DecisionState:
			for _, cond := range st.Ifs {
				if cond.Then != "" {
					edge(id, cond.Test, cond.Then, false)
				}
				if cond.Else != "" {
					edge(id, "else", cond.Else, false)
				}
			}
		}
	}

	// Global transitions apply in any state; draw them from a single marker.
	if len(flow.GlobalTransitions) > 0 {
		sb.WriteString("    global((\"*\"))\n")
		for _, t := range flow.GlobalTransitions {
			if t.To == "" {
				continue
			}
			label := t.On
			if t.OnException != "" {
				label = "⚠ " + t.OnException
			}
			edge("global", label, t.To, true)
		}
	}

	if dynamic {
		sb.WriteString("    dynamic{{\"${...}\"}}\n")
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast regardless of theme.
		sb.WriteString("    classDef inherited fill:#e1f5fe,stroke:#01579b,stroke-dasharray:4 2,color:#000;\n")
		sb.WriteString("    classDef focus fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Inherited {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s inherited;\n", safeID)
			}
		}

		if overlay.Focus != "" {
			fmt.Fprintf(&sb, "    class %s focus;\n", sanitizeMermaidID(overlay.Focus))
		}
	}

	return sb.String()
}

// InheritedStates lists the states of assembled that own does not declare.
func InheritedStates(assembled, own *model.Flow) []string {
	var ids []string
	for _, s := range assembled.States {
		if _, declared := own.State(s.StateID()); !declared {
			ids = append(ids, s.StateID())
		}
	}
	return ids
}

func isExpression(target string) bool {
	return strings.Contains(target, "${") || strings.Contains(target, "#{")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
