// Package testutil provides utilities for testing modpack components.
//
// Key components:
//   - File and directory helpers that fail the test on error
//   - TestProject: declarative mod project setup on a temp directory
//
// All test data should be defined inline, not in external files, and
// each test should be completely isolated with no shared state.
package testutil
