// Package renderer wraps the Remotion render runner. The project is bundled
// once per run into a servable location; each question then resolves a
// composition against that bundle and renders to its own output file.
//
// The default implementation shells out to the runner binary and reads
// JSON-line events from its stdout.
package renderer
