package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunFlowStoreContract runs a suite of tests to verify that a FlowStore implementation
// adheres to the defined interface contract.
func RunFlowStoreContract(t *testing.T, store FlowStore) {
	ctx := context.Background()
	flowID := "contract-test-flow-" + time.Now().Format("20060102150405")
	data := []byte("id: " + flowID + "\nstates:\n  - id: end\n    type: end\n")

	t.Run("Save and Get", func(t *testing.T) {
		err := store.SaveFlow(ctx, flowID, data)
		require.NoError(t, err, "SaveFlow should not return error")

		loaded, err := store.GetFlow(ctx, flowID)
		require.NoError(t, err, "GetFlow should not return error")
		assert.Equal(t, string(data), string(loaded))
	})

	t.Run("Overwrite", func(t *testing.T) {
		updated := append([]byte{}, data...)
		updated = append(updated, []byte("start-state: end\n")...)
		require.NoError(t, store.SaveFlow(ctx, flowID, updated))

		loaded, err := store.GetFlow(ctx, flowID)
		require.NoError(t, err)
		assert.Equal(t, string(updated), string(loaded))
	})

	t.Run("List", func(t *testing.T) {
		ids, err := store.ListFlows(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, flowID)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.GetFlow(ctx, "non-existent-flow")
		assert.ErrorIs(t, err, ErrFlowNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.DeleteFlow(ctx, flowID))

		_, err := store.GetFlow(ctx, flowID)
		assert.ErrorIs(t, err, ErrFlowNotFound)

		ids, err := store.ListFlows(ctx)
		require.NoError(t, err)
		assert.NotContains(t, ids, flowID)

		assert.ErrorIs(t, store.DeleteFlow(ctx, flowID), ErrFlowNotFound)
	})
}
