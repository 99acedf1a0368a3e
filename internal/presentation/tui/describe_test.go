package tui

import (
	"bytes"
	"testing"

	"github.com/mpoindexter/spring-webflow/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	flow := model.NewFlow("booking")
	flow.Parents = []string{"base", "audited"}
	flow.Secured = &model.Secured{Attributes: "ROLE_USER", Match: "any"}
	flow.Attributes = []*model.Attribute{{Name: "timeout", Type: "duration", Value: "10m"}, model.NewAttribute("caption", "a|b")}

	enter := model.NewViewState("enter")
	enter.AddTransition(&model.Transition{On: "submit", To: "route"})
	flow.AddState(enter)

	route := model.NewDecisionState("route")
	route.AddIf(model.NewIf("vip", "done", "enter"))
	flow.AddState(route)
	flow.AddState(model.NewEndState("done"))
	flow.GlobalTransitions = []*model.Transition{{OnException: "TimeoutError", To: "done"}}

	md := Describe(flow)

	assert.Contains(t, md, "# booking\n")
	assert.Contains(t, md, "Inherits from `base`, `audited`.")
	assert.Contains(t, md, "Starts in `enter`.")
	assert.Contains(t, md, "Secured by `ROLE_USER` (match any).")
	assert.Contains(t, md, "| timeout | duration | 10m |")
	assert.Contains(t, md, "| caption | - | a\\|b |")
	assert.Contains(t, md, "| enter | view-state | submit → route |")
	assert.Contains(t, md, "| route | decision-state | `vip` ? done, else enter |")
	assert.Contains(t, md, "| done | end-state | - |")
	assert.Contains(t, md, "- on TimeoutError → done")
}

func TestNewRenderer_PlainWithoutTTY(t *testing.T) {
	render := NewRenderer(false)
	out, err := render("# title")
	require.NoError(t, err)
	assert.Equal(t, "# title", out)
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_.__/")
}
