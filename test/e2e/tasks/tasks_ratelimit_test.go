//go:build e2e

package tasks_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/taskboard/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLogin verifies that login is cut off once the per-address
// credential limit is spent.
func TestRateLimitLogin(t *testing.T) {
	baseURL, cleanup := setupTasksContainerWithTightLogin(t)
	defer cleanup()

	client := tasksdk.NewClient(baseURL)
	ctx := context.Background()

	var lastErr error
	for i := range 11 {
		_, err := client.Login(ctx, "wronguser", "wrongpass")
		if i < 10 {
			require.True(t, tasksdk.IsUnauthorized(err), "request %d should fail authentication", i+1)
			continue
		}
		lastErr = err
	}

	require.Error(t, lastErr)
	require.Contains(t, lastErr.Error(), "429")
}
