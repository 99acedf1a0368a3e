package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/mpoindexter/spring-webflow/pkg/ports"
)

// FlowLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.FlowLoader.
func FlowLoaderContractTest(t *testing.T, loader ports.FlowLoader, setupData map[string][]byte) {
	t.Helper()
	ctx := context.Background()

	// 1. Test GetFlow (Success)
	t.Run("GetFlow_Success", func(t *testing.T) {
		for id, expectedContent := range setupData {
			content, err := loader.GetFlow(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error getting flow %s: %v", id, err)
			}
			if string(content) != string(expectedContent) {
				t.Errorf("content mismatch for %s. got %q, want %q", id, content, expectedContent)
			}
		}
	})

	// 2. Test GetFlow (NotFound)
	t.Run("GetFlow_NotFound", func(t *testing.T) {
		_, err := loader.GetFlow(ctx, "non-existent-flow")
		if err == nil {
			t.Fatal("expected error for non-existent flow, got nil")
		}
		if !errors.Is(err, ports.ErrFlowNotFound) {
			t.Errorf("expected ErrFlowNotFound, got %v", err)
		}
	})

	// 3. Test ListFlows
	t.Run("ListFlows", func(t *testing.T) {
		ids, err := loader.ListFlows(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing flows: %v", err)
		}

		if len(ids) != len(setupData) {
			t.Errorf("expected %d flows, got %d", len(setupData), len(ids))
		}

		for i := 1; i < len(ids); i++ {
			if ids[i-1] > ids[i] {
				t.Errorf("flows not sorted: %v", ids)
				break
			}
		}

		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}
		for id := range setupData {
			if !lookup[id] {
				t.Errorf("flow %s missing from list", id)
			}
		}
	})
}
