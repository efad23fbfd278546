package renderer

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Composition describes a resolved composition instance.
type Composition struct {
	ID               string `json:"id"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	FPS              int    `json:"fps"`
	DurationInFrames int    `json:"durationInFrames"`
}

// ProgressUpdate captures render progress events.
type ProgressUpdate struct {
	Percent float64
	Message string
}

// Service defines render collaborator behaviour.
type Service interface {
	Bundle(ctx context.Context) (string, error)
	SelectComposition(ctx context.Context, serveURL, compositionID string, props any) (Composition, error)
	Render(ctx context.Context, comp Composition, serveURL, outputPath string, props any, progress func(ProgressUpdate)) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default runner binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithEntryPoint sets the project entry point passed to bundle.
func WithEntryPoint(entryPoint string) Option {
	return func(c *CLI) {
		if entryPoint != "" {
			c.entryPoint = entryPoint
		}
	}
}

// WithPublicDir sets the static assets directory served with the bundle.
func WithPublicDir(dir string) Option {
	return func(c *CLI) {
		if dir != "" {
			c.publicDir = dir
		}
	}
}

// CLI wraps the render runner command-line tool.
type CLI struct {
	binary     string
	entryPoint string
	publicDir  string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "remotion", entryPoint: "src/index.ts"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// runnerEvent is the JSON-line schema emitted by the runner on stdout.
type runnerEvent struct {
	ServeURL    string       `json:"serveUrl"`
	Composition *Composition `json:"composition"`
	Percent     *float64     `json:"percent"`
	Message     string       `json:"message"`
	Error       string       `json:"error"`
}

// Bundle produces the reusable serve location for the render project.
func (c *CLI) Bundle(ctx context.Context) (string, error) {
	args := []string{"bundle", "--entry-point", c.entryPoint}
	if c.publicDir != "" {
		args = append(args, "--public-dir", c.publicDir)
	}
	var serveURL string
	err := c.run(ctx, args, func(event runnerEvent) {
		if event.ServeURL != "" {
			serveURL = event.ServeURL
		}
	})
	if err != nil {
		return "", err
	}
	if serveURL == "" {
		return "", errors.New("bundle produced no serve location")
	}
	return serveURL, nil
}

// SelectComposition resolves the named composition against the bundle and the
// given input props.
func (c *CLI) SelectComposition(ctx context.Context, serveURL, compositionID string, props any) (Composition, error) {
	var empty Composition
	if serveURL == "" {
		return empty, errors.New("serve location required")
	}
	if compositionID == "" {
		return empty, errors.New("composition id required")
	}
	encoded, err := json.Marshal(props)
	if err != nil {
		return empty, fmt.Errorf("encode props: %w", err)
	}

	args := []string{"compositions", serveURL, "--composition", compositionID, "--props", string(encoded)}
	var resolved *Composition
	if err := c.run(ctx, args, func(event runnerEvent) {
		if event.Composition != nil {
			resolved = event.Composition
		}
	}); err != nil {
		return empty, err
	}
	if resolved == nil {
		return empty, fmt.Errorf("composition %s not resolved", compositionID)
	}
	return *resolved, nil
}

// Render writes one video file for the resolved composition.
func (c *CLI) Render(ctx context.Context, comp Composition, serveURL, outputPath string, props any, progress func(ProgressUpdate)) error {
	if serveURL == "" {
		return errors.New("serve location required")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}
	encoded, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("encode props: %w", err)
	}

	args := []string{
		"render", serveURL,
		"--composition", comp.ID,
		"--codec", "h264",
		"--output", outputPath,
		"--props", string(encoded),
	}
	return c.run(ctx, args, func(event runnerEvent) {
		if event.Percent != nil && progress != nil {
			progress(ProgressUpdate{Percent: *event.Percent, Message: event.Message})
		}
	})
}

func (c *CLI) run(ctx context.Context, args []string, onEvent func(runnerEvent)) error {
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", c.binary, err)
	}

	var runnerErr string
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var event runnerEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			continue
		}
		if event.Error != "" {
			runnerErr = event.Error
		}
		if onEvent != nil {
			onEvent(event)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s output: %w", c.binary, err)
	}

	if err := cmd.Wait(); err != nil {
		if runnerErr != "" {
			return fmt.Errorf("%s %s failed: %s: %w", c.binary, args[0], runnerErr, err)
		}
		return fmt.Errorf("%s %s failed: %w", c.binary, args[0], err)
	}
	return nil
}

var _ Service = (*CLI)(nil)
