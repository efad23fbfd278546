// Package groq wraps the Groq OpenAI-compatible chat completions API used for
// narrative generation. Requests ask for a JSON-only response and the caller
// decodes the returned content. Pacing is the caller's responsibility; the
// client itself performs no retries.
package groq
