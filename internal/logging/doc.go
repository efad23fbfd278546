// Package logging wraps log/slog with the handlers and attribute helpers used
// across quizreel. It provides a human-oriented console format for interactive
// runs and a JSON format for captured logs, plus context-derived fields so
// every line during a run carries the run ID, stage, and question ordinal.
package logging
