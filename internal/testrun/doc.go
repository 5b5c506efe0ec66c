// Package testrun invokes the external test runner for the stack's
// integration suite.
//
// stackctl is not a test framework: it resolves the configured runner
// binary on PATH, launches it with its verbosity arguments against the
// test directory, streams output to the terminal, and exits with the
// runner's own status. Result parsing, reporting, and retries belong
// to the runner.
package testrun
