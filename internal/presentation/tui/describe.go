package tui

import (
	"fmt"
	"strings"

	"github.com/mpoindexter/spring-webflow/pkg/model"
)

// Describe summarizes a flow as markdown.
func Describe(flow *model.Flow) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", flow.ID)
	if len(flow.Parents) > 0 {
		fmt.Fprintf(&sb, "Inherits from %s.\n\n", codeList(flow.Parents))
	}
	fmt.Fprintf(&sb, "Starts in `%s`.\n\n", flow.StartStateID())
	if flow.Secured != nil {
		fmt.Fprintf(&sb, "Secured by `%s`", flow.Secured.Attributes)
		if flow.Secured.Match != "" {
			fmt.Fprintf(&sb, " (match %s)", flow.Secured.Match)
		}
		sb.WriteString(".\n\n")
	}

	if len(flow.Attributes) > 0 {
		sb.WriteString("## Attributes\n\n| Name | Type | Value |\n|---|---|---|\n")
		for _, a := range flow.Attributes {
			fmt.Fprintf(&sb, "| %s | %s | %s |\n", a.Name, orDash(a.Type), cell(a.Value))
		}
		sb.WriteString("\n")
	}

	if len(flow.Inputs) > 0 || len(flow.Outputs) > 0 {
		sb.WriteString("## Mappings\n\n| Direction | Name | Value | Required |\n|---|---|---|---|\n")
		for _, in := range flow.Inputs {
			fmt.Fprintf(&sb, "| input | %s | %s | %t |\n", in.Name, cell(in.Value), in.IsRequired())
		}
		for _, out := range flow.Outputs {
			fmt.Fprintf(&sb, "| output | %s | %s | %t |\n", out.Name, cell(out.Value), out.IsRequired())
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## States\n\n| State | Kind | Leads to |\n|---|---|---|\n")
	for _, s := range flow.States {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", s.StateID(), s.Kind(), cell(strings.Join(exits(s), ", ")))
	}

	if len(flow.GlobalTransitions) > 0 {
		sb.WriteString("\n## Global transitions\n\n")
		for _, t := range flow.GlobalTransitions {
			fmt.Fprintf(&sb, "- %s\n", describeTransition(t))
		}
	}

	return sb.String()
}

func exits(s model.State) []string {
	var out []string
	switch st := s.(type) {
	case model.Transitionable:
		for _, t := range st.StateTransitions() {
			out = append(out, describeTransition(t))
		}
	case *model.DecisionState:
		for _, cond := range st.Ifs {
			out = append(out, fmt.Sprintf("`%s` ? %s", cond.Test, cond.Then))
			if cond.Else != "" {
				out = append(out, "else "+cond.Else)
			}
		}
	}
	return out
}

func describeTransition(t *model.Transition) string {
	event := t.On
	if t.OnException != "" {
		event = "on " + t.OnException
	}
	if event == "" {
		event = "*"
	}
	if t.To == "" {
		return event
	}
	return event + " → " + t.To
}

func codeList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + s + "`"
	}
	return strings.Join(quoted, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func cell(s string) string {
	return orDash(strings.ReplaceAll(s, "|", "\\|"))
}
