package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"

	"github.com/mpoindexter/spring-webflow/internal/compiler"
	"github.com/mpoindexter/spring-webflow/internal/dto"
	"github.com/mpoindexter/spring-webflow/internal/testutils"
	"github.com/mpoindexter/spring-webflow/pkg/model"
	"github.com/mpoindexter/spring-webflow/pkg/ports"
	"github.com/mpoindexter/spring-webflow/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Contract(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	setupData := map[string][]byte{
		"base":    []byte(`{"id":"base","abstract":true}`),
		"booking": []byte(`{"id":"booking","parent":"base","start-state":"done"}`),
	}

	docs := []core.Document{
		{
			ID: "base.md",
			Content: `---
id: base
abstract: true
---
Shared states for booking flows`,
		},
		{
			ID: "booking.md",
			Content: `---
id: booking
parent: base
start-state: done
---
Booking flow`,
		},
	}
	for _, doc := range docs {
		require.NoError(t, repo.Save(ctx, doc))
	}

	loader := New(loam.NewTypedRepository[dto.Flow](repo))

	tests.FlowLoaderContractTest(t, loader, setupData)
}

func TestLoader_GetFlow_ParsesStates(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	content := `---
id: checkout
states:
  - id: pay
    type: action
    actions:
      - evaluate: paymentService.charge(order)
    transitions:
      - on: success
        to: done
  - id: done
    type: end
---
Checkout`
	testutils.WriteFlows(t, tmpDir, map[string]string{"checkout.md": content})

	loader := New(loam.NewTypedRepository[dto.Flow](repo))

	data, err := loader.GetFlow(context.Background(), "checkout")
	require.NoError(t, err)

	flow, err := compiler.NewParser().Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "checkout", flow.ID)
	require.Len(t, flow.States, 2)

	pay, ok := flow.States[0].(*model.ActionState)
	require.True(t, ok)
	require.Len(t, pay.Actions, 1)
	assert.Equal(t, "paymentService.charge(order)", pay.Actions[0].(*model.Evaluate).Expression)
	assert.Equal(t, "done", pay.Transitions[0].To)
}

func TestLoader_ListFlows_NormalizesIDs(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"start.md": `---
id: start.md
---
Hello`,
		"choice.json": `{
  "id": "choice.json"
}`,
		"implicit.md": `---
abstract: true
---
ID is implied from filename`,
	}

	testutils.WriteFlows(t, tmpDir, files)

	loader := New(loam.NewTypedRepository[dto.Flow](repo))

	ids, err := loader.ListFlows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"choice", "implicit", "start"}, ids)
}

func TestLoader_ListFlows_DetectsCollisions(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"foo.md": `---
id: foo
---
Explicit ID`,
		"foo.json": `{
  "id": "foo"
}`,
	}

	testutils.WriteFlows(t, tmpDir, files)

	loader := New(loam.NewTypedRepository[dto.Flow](repo))

	_, err := loader.ListFlows(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "foo")
}

func TestLoader_GetFlow_NormalizesID(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	testutils.WriteFlows(t, tmpDir, map[string]string{"flow.json": `{ "id": "flow.json" }`})

	loader := New(loam.NewTypedRepository[dto.Flow](repo))

	data, err := loader.GetFlow(context.Background(), "flow")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":"flow"`)
	assert.NotContains(t, string(data), `"id":"flow.json"`)
}

func TestLoader_GetFlow_NotFound(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	loader := New(loam.NewTypedRepository[dto.Flow](repo))

	_, err := loader.GetFlow(context.Background(), "missing")
	assert.ErrorIs(t, err, ports.ErrFlowNotFound)
}
