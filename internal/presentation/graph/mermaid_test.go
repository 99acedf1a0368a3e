package graph_test

import (
	"strings"
	"testing"

	"github.com/mpoindexter/spring-webflow/internal/presentation/graph"
	"github.com/mpoindexter/spring-webflow/pkg/model"
)

func sampleFlow() *model.Flow {
	flow := model.NewFlow("checkout")

	cart := model.NewViewState("cart")
	cart.AddTransition(&model.Transition{On: "next", To: "route"})
	cart.AddTransition(&model.Transition{On: "jump", To: "${flowScope.target}"})
	flow.AddState(cart)

	route := model.NewDecisionState("route")
	route.AddIf(model.NewIf(`total > 1000`, "review", "pay-now"))
	flow.AddState(route)

	review := model.NewActionState("review")
	review.AddTransition(&model.Transition{On: "success", To: "pay-now"})
	review.AddTransition(&model.Transition{OnException: "FraudError", To: "cart"})
	flow.AddState(review)

	flow.AddState(model.NewEndState("pay-now"))
	flow.GlobalTransitions = []*model.Transition{{On: "cancel", To: "pay-now"}}
	return flow
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "State Shapes",
			contains: []string{
				"graph TD\n",
				`cart(("cart"))`,
				`route{"route"}`,
				`review[["review"]]`,
				`pay_now(["pay-now"])`,
			},
		},
		{
			name: "Transitions",
			contains: []string{
				`cart -- "next" --> route`,
				`route -- "total > 1000" --> review`,
				`route -- "else" --> pay_now`,
				`review -. "⚠ FraudError" .-> cart`,
				`global -. "cancel" .-> pay_now`,
				`cart -- "jump" --> dynamic`,
				`dynamic{{"${...}"}}`,
			},
		},
		{
			name:     "No Overlay",
			excludes: []string{"classDef"},
		},
		{
			name:    "Overlay",
			overlay: &graph.GraphOverlay{Inherited: []string{"pay-now", "pay-now"}, Focus: "route"},
			contains: []string{
				"classDef inherited",
				"class pay_now inherited;",
				"class route focus;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(sampleFlow(), tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q\ngot:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("expected output not to contain %q\ngot:\n%s", unwanted, got)
				}
			}
			if tt.overlay != nil && strings.Count(got, "class pay_now inherited;") != 1 {
				t.Errorf("expected inherited class to be applied once\ngot:\n%s", got)
			}
		})
	}
}

func TestInheritedStates(t *testing.T) {
	own := model.NewFlow("booking")
	own.AddState(model.NewViewState("enter"))

	assembled := model.NewFlow("booking")
	assembled.AddState(model.NewEndState("cancelled"))
	assembled.AddState(model.NewViewState("enter"))
	assembled.AddState(model.NewEndState("help"))

	got := graph.InheritedStates(assembled, own)
	if strings.Join(got, ",") != "cancelled,help" {
		t.Errorf("Expected inherited [cancelled help], got %v", got)
	}
	if got := graph.InheritedStates(own, own); len(got) != 0 {
		t.Errorf("Expected no inherited states, got %v", got)
	}
}
