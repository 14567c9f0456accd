// Package testutil holds shared test gating helpers.
package testutil

import (
	"os"
	"testing"
)

// SkipIfShort skips tests that need real infrastructure when running in
// short mode.
func SkipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

// RequireIntegration skips the test unless integration tests are enabled.
// In CI, set INTEGRATION_TESTS=1 to run container-backed tests.
func RequireIntegration(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if os.Getenv("INTEGRATION_TESTS") == "" && os.Getenv("CI") != "" {
		t.Skip("skipping integration test (set INTEGRATION_TESTS=1 to run)")
	}
}
