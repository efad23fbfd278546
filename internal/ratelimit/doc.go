// Package ratelimit enforces the minimum spacing between outbound calls to
// the narrative generation service. One limiter instance is shared by every
// narrative call in a run; there is no per-question bucket.
package ratelimit
