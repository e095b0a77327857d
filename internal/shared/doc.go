// Package shared holds helpers used across packages that belong to no single
// layer. Today that is the testutil subpackage.
//
// # Test Utilities
//
// testutil provides:
//
//	- BufferedSlogHandler for asserting on structured log output
//	- sample variable sheet, chart sheet and template fixtures
//	- WriteReportInputs, which writes the fixtures into t.TempDir()
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    inputs := testutil.WriteReportInputs(t)
//	    ...
//	    testutil.AssertLogContains(t, logs, slog.LevelInfo, "report generated")
//	}
package shared
