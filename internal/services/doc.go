// Package services provides shared infrastructure for the external
// collaborators the pipeline talks to: error classification markers, error
// wrapping helpers, and context annotations for structured logging.
//
// Every stage failure is wrapped with one of the exported sentinel errors so
// the top-level run controller can classify what went wrong without string
// matching. None of the failures are recovered locally; they unwind to the
// CLI, which logs them and exits non-zero.
package services
