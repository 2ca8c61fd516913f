// Package preflight checks that a compilation can run before it touches
// the output:
//   - the source directory exists and can be listed
//   - the output directory accepts new files
//   - the output file system has room for the document
//
// Use the Checker type to run all validations:
//
//	checker := preflight.New()
//	results := checker.RunAll(ctx, preflight.Target{SourceDir: src, OutputPath: out})
//	if checker.HasCriticalFailures(results) {
//	    // Handle failures
//	}
package preflight
