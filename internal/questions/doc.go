// Package questions loads the ordered quiz question list from a remote
// endpoint or a local file. Questions are identified by their 1-based position
// in the list for the lifetime of a run and are immutable once loaded.
package questions
