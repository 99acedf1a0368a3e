package webflow_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	webflow "github.com/mpoindexter/spring-webflow"
	"github.com/mpoindexter/spring-webflow/internal/testutils"
	"github.com/mpoindexter/spring-webflow/pkg/adapters/memory"
	"github.com/mpoindexter/spring-webflow/pkg/model"
	"github.com/mpoindexter/spring-webflow/pkg/observability"
	"github.com/mpoindexter/spring-webflow/pkg/ports"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseFlow = `
id: base
abstract: true
attributes:
  - name: caption
    value: Base
  - name: timeout
    type: duration
    value: 10m
states:
  - id: enter
    type: view
    view: base.html
    on-entry:
      - evaluate: audit.enter()
    transitions:
      - on: submit
        to: done
  - id: done
    type: end
global-transitions:
  - on: cancel
    to: done
`

const bookingFlow = `
id: booking
parent: base
attributes:
  - name: caption
    value: Booking
states:
  - id: enter
    type: view
    view: booking.html
    transitions:
      - on: review
        to: review
  - id: review
    type: action
    actions:
      - evaluate: bookingService.review(booking)
    transitions:
      - on: success
        to: done
`

func newAssembler(t *testing.T, flows map[string]string, opts ...webflow.Option) *webflow.Assembler {
	t.Helper()
	opts = append([]webflow.Option{webflow.WithLoader(memory.NewLoader(flows))}, opts...)
	asm, err := webflow.New("", opts...)
	require.NoError(t, err)
	return asm
}

func TestAssemble_MergesParent(t *testing.T) {
	asm := newAssembler(t, map[string]string{"base": baseFlow, "booking": bookingFlow})

	flow, err := asm.Assemble(context.Background(), "booking")
	require.NoError(t, err)

	assert.Equal(t, "booking", flow.ID)
	assert.False(t, flow.Abstract)
	assert.Equal(t, []string{"base"}, flow.Parents)

	require.Len(t, flow.Attributes, 2)
	assert.Equal(t, "Booking", flow.Attributes[0].Value)
	assert.Equal(t, "timeout", flow.Attributes[1].Name)

	ids := make([]string, 0, len(flow.States))
	for _, s := range flow.States {
		ids = append(ids, s.StateID())
	}
	assert.Equal(t, []string{"enter", "done", "review"}, ids)

	enter, ok := flow.States[0].(*model.ViewState)
	require.True(t, ok)
	assert.Equal(t, "booking.html", enter.View)
	require.Len(t, enter.Transitions, 2)
	assert.Equal(t, "submit", enter.Transitions[0].On)
	assert.Equal(t, "review", enter.Transitions[1].On)
	// Entry actions come from the parent since the child declares none.
	assert.Len(t, enter.OnEntry, 1)

	assert.Len(t, flow.GlobalTransitions, 1)
}

func TestAssemble_IsRepeatable(t *testing.T) {
	asm := newAssembler(t, map[string]string{"base": baseFlow, "booking": bookingFlow})
	ctx := context.Background()

	first, err := asm.Assemble(ctx, "booking")
	require.NoError(t, err)
	second, err := asm.Assemble(ctx, "booking")
	require.NoError(t, err)

	assert.Equal(t, len(first.States), len(second.States))
	assert.Len(t, second.States[0].(*model.ViewState).Transitions, 2)
}

func TestAssemble_MultipleParentsLeftToRight(t *testing.T) {
	asm := newAssembler(t, map[string]string{
		"a": `
id: a
abstract: true
attributes:
  - name: owner
    value: a
states:
  - id: done
    type: end
    view: a.html
`,
		"b": `
id: b
abstract: true
attributes:
  - name: owner
    value: b
states:
  - id: done
    type: end
    view: b.html
`,
		"child": `
id: child
parent: a, b
states:
  - id: start
    type: action
    transitions:
      - on: ok
        to: done
start-state: start
`,
	})

	flow, err := asm.Assemble(context.Background(), "child")
	require.NoError(t, err)

	require.Len(t, flow.Attributes, 1)
	assert.Equal(t, "b", flow.Attributes[0].Value)

	done, ok := flow.State("done")
	require.True(t, ok)
	assert.Equal(t, "b.html", done.(*model.EndState).View)
	assert.Equal(t, "start", flow.StartStateID())
}

func TestAssemble_Errors(t *testing.T) {
	flows := map[string]string{
		"base":    baseFlow,
		"booking": bookingFlow,
		"loop-a":  "id: loop-a\nparent: loop-b\n",
		"loop-b":  "id: loop-b\nparent: loop-a\n",
		"self":    "id: self\nparent: self\n",
		"orphan":  "id: orphan\nparent: ghost\nstates:\n  - id: done\n    type: end\n",
		"clash":   "id: clash\nparent: base\nstates:\n  - id: done\n    type: action\n",
		"invalid": "id: invalid\nstart-state: nowhere\nstates:\n  - id: done\n    type: end\n",
	}
	asm := newAssembler(t, flows)
	ctx := context.Background()

	t.Run("cycle", func(t *testing.T) {
		_, err := asm.Assemble(ctx, "loop-a")
		var cycle *webflow.InheritanceCycleError
		require.True(t, errors.As(err, &cycle))
		assert.Equal(t, []string{"loop-a", "loop-b", "loop-a"}, cycle.Chain)
		assert.Equal(t, "inheritance cycle: loop-a -> loop-b -> loop-a", cycle.Error())
	})

	t.Run("self parent", func(t *testing.T) {
		_, err := asm.Assemble(ctx, "self")
		var cycle *webflow.InheritanceCycleError
		require.True(t, errors.As(err, &cycle))
		assert.Equal(t, []string{"self", "self"}, cycle.Chain)
	})

	t.Run("abstract", func(t *testing.T) {
		_, err := asm.Assemble(ctx, "base")
		assert.ErrorIs(t, err, webflow.ErrAbstractFlow)
	})

	t.Run("missing flow", func(t *testing.T) {
		_, err := asm.Assemble(ctx, "nope")
		assert.ErrorIs(t, err, ports.ErrFlowNotFound)
	})

	t.Run("missing parent", func(t *testing.T) {
		_, err := asm.Assemble(ctx, "orphan")
		assert.ErrorIs(t, err, ports.ErrFlowNotFound)
	})

	t.Run("kind mismatch", func(t *testing.T) {
		flow, err := asm.Assemble(ctx, "clash")
		assert.Nil(t, flow)
		var mismatch *model.KindMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, "done", mismatch.Key)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := asm.Assemble(ctx, "invalid")
		var aggr *webflow.AggregateError
		require.True(t, errors.As(err, &aggr))
		problems := webflow.ValidationErrors(err)
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0].Error(), "start-state")
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := asm.Assemble(cctx, "booking")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestAssemble_RecordsMetrics(t *testing.T) {
	metrics := observability.NewMetrics()
	asm := newAssembler(t, map[string]string{
		"base":    baseFlow,
		"booking": bookingFlow,
		"invalid": "id: invalid\nstart-state: nowhere\nstates:\n  - id: done\n    type: end\n",
	}, webflow.WithMetrics(metrics))
	ctx := context.Background()

	_, err := asm.Assemble(ctx, "booking")
	require.NoError(t, err)
	_, err = asm.Assemble(ctx, "invalid")
	require.Error(t, err)

	count, err := testutil.GatherAndCount(metrics.Registry(), "webflow_assemblies_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(metrics.Registry(), "webflow_validation_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAssemble_UnknownIDsShareOneLabel(t *testing.T) {
	metrics := observability.NewMetrics()
	asm := newAssembler(t, map[string]string{
		"base":    baseFlow,
		"booking": bookingFlow,
		"orphan":  "id: orphan\nparent: ghost\nstates:\n  - id: done\n    type: end\n",
	}, webflow.WithMetrics(metrics))
	ctx := context.Background()

	for _, id := range []string{"x1", "x2", "x3"} {
		_, err := asm.Assemble(ctx, id)
		require.ErrorIs(t, err, ports.ErrFlowNotFound)
	}
	// A missing parent still counts against the flow that names it.
	_, err := asm.Assemble(ctx, "orphan")
	require.ErrorIs(t, err, ports.ErrFlowNotFound)

	count, err := testutil.GatherAndCount(metrics.Registry(), "webflow_assemblies_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `webflow_assemblies_total{flow="unknown",result="error"} 3`)
	assert.Contains(t, body, `webflow_assemblies_total{flow="orphan",result="error"} 1`)
	assert.NotContains(t, body, `flow="x1"`)
}

func TestNew_DefaultsToLoam(t *testing.T) {
	repoPath := t.TempDir()
	testutils.WriteFlows(t, repoPath, map[string]string{
		"base.yaml":    baseFlow,
		"booking.yaml": bookingFlow,
		"thanks.md":    "---\nid: thanks\nstates:\n  - id: bye\n    type: end\n---\nSays goodbye.",
	})

	asm, err := webflow.New(repoPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(repoPath), asm.Name)

	ctx := context.Background()
	ids, err := asm.Inspect(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "booking", "thanks"}, ids)

	flow, err := asm.Assemble(ctx, "booking")
	require.NoError(t, err)
	assert.Len(t, flow.States, 3)

	flow, err = asm.Assemble(ctx, "thanks")
	require.NoError(t, err)
	assert.Equal(t, "bye", flow.StartStateID())
}

func TestNew_RequiresPathWithoutLoader(t *testing.T) {
	_, err := webflow.New("")
	assert.Error(t, err)
}

func TestAssembler_Watch_UnsupportedLoader(t *testing.T) {
	asm := newAssembler(t, nil)
	_, err := asm.Watch(context.Background())
	assert.Error(t, err)
}
