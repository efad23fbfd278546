// Package ffmpeg wraps the ffmpeg and ffprobe command-line tools for the
// join step: rendered question videos are concatenated into one final video,
// with an optional luma-matte blob overlaid across each cut.
package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

const (
	defaultBinary      = "ffmpeg"
	defaultProbeBinary = "ffprobe"

	// maxTransition caps how long the matte covers the cut; coverLead is how
	// far before the cut the overlay starts. Both shrink for short mattes.
	maxTransition = 2500 * time.Millisecond
	coverLead     = time.Second
)

// Client shells out to ffmpeg/ffprobe.
type Client struct {
	binary      string
	probeBinary string
}

// Option customizes the client.
type Option func(*Client)

// WithBinary overrides the ffmpeg binary path.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithProbeBinary overrides the ffprobe binary path.
func WithProbeBinary(binary string) Option {
	return func(c *Client) {
		if binary != "" {
			c.probeBinary = binary
		}
	}
}

// NewClient constructs a client using defaults.
func NewClient(opts ...Option) *Client {
	client := &Client{binary: defaultBinary, probeBinary: defaultProbeBinary}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe returns the container duration of a media file.
func (c *Client) Probe(ctx context.Context, path string) (time.Duration, error) {
	if path == "" {
		return 0, errors.New("probe: path required")
	}
	cmd := commandContext(ctx, c.probeBinary, "-v", "error", "-print_format", "json", "-show_format", path) //nolint:gosec
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}
	var parsed probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &parsed); err != nil {
		return 0, fmt.Errorf("probe %s: decode output: %w", path, err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(parsed.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("probe %s: bad duration %q", path, parsed.Format.Duration)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// JoinRequest describes one join operation. Clips are concatenated in order;
// when MattePath is set the matte video is overlaid across each cut. The
// matte must match the clip resolution.
type JoinRequest struct {
	Clips      []string
	OutputPath string
	MattePath  string
	Transition time.Duration
}

// Join concatenates the request's clips into a single output file. A single
// clip is remuxed without re-encoding.
func (c *Client) Join(ctx context.Context, req JoinRequest) error {
	if len(req.Clips) == 0 {
		return errors.New("join: no clips")
	}
	if req.OutputPath == "" {
		return errors.New("join: output path required")
	}

	if len(req.Clips) == 1 {
		return c.run(ctx, []string{"-y", "-i", req.Clips[0], "-c", "copy", "-movflags", "+faststart", req.OutputPath})
	}

	durations := make([]time.Duration, len(req.Clips))
	for i, clip := range req.Clips {
		d, err := c.Probe(ctx, clip)
		if err != nil {
			return err
		}
		durations[i] = d
	}

	transition := req.Transition
	if transition <= 0 || transition > maxTransition {
		transition = maxTransition
	}
	if req.MattePath != "" {
		matteDur, err := c.Probe(ctx, req.MattePath)
		if err != nil {
			return err
		}
		if matteDur < transition {
			transition = matteDur
		}
	}

	args := []string{"-y"}
	for _, clip := range req.Clips {
		args = append(args, "-i", clip)
	}
	if req.MattePath != "" {
		args = append(args, "-i", req.MattePath)
	}

	graph, videoLabel, audioLabel := buildFilterGraph(durations, req.MattePath != "", transition)
	args = append(args,
		"-filter_complex", graph,
		"-map", videoLabel,
		"-map", audioLabel,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-c:a", "aac",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		req.OutputPath,
	)
	return c.run(ctx, args)
}

// buildFilterGraph produces the filter_complex for joining clips. Clips are
// hard-cut concatenated; with a matte, a white liquid blob (the matte with
// its own luma as alpha) is overlaid across each boundary so the cut lands
// while the frame is covered.
func buildFilterGraph(durations []time.Duration, withMatte bool, transition time.Duration) (graph, videoLabel, audioLabel string) {
	n := len(durations)
	var b strings.Builder

	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "[%d:v][%d:a]", i, i)
	}
	fmt.Fprintf(&b, "concat=n=%d:v=1:a=1[vcat][aout]", n)

	if !withMatte || n < 2 {
		return b.String(), "[vcat]", "[aout]"
	}

	cuts := n - 1
	cover := coverLead
	if half := transition / 2; half < cover {
		cover = half
	}

	fmt.Fprintf(&b, ";[%d:v]split=2[mw][mg0];[mg0]format=gray[mg];[mw][mg]alphamerge[blob];[blob]split=%d", n, cuts)
	for i := 0; i < cuts; i++ {
		fmt.Fprintf(&b, "[b%d]", i)
	}

	boundary := time.Duration(0)
	current := "[vcat]"
	for i := 0; i < cuts; i++ {
		boundary += durations[i]
		start := boundary - cover
		if start < 0 {
			start = 0
		}
		out := fmt.Sprintf("[v%d]", i+1)
		fmt.Fprintf(&b, ";[b%d]setpts=PTS-STARTPTS+%s/TB[b%dt];%s[b%dt]overlay=eof_action=pass%s",
			i, formatSeconds(start), i, current, i, out)
		current = out
	}
	return b.String(), current, "[aout]"
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func (c *Client) run(ctx context.Context, args []string) error {
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			if idx := strings.LastIndexByte(detail, '\n'); idx >= 0 {
				detail = strings.TrimSpace(detail[idx+1:])
			}
			return fmt.Errorf("%s failed: %s: %w", c.binary, detail, err)
		}
		return fmt.Errorf("%s failed: %w", c.binary, err)
	}
	return nil
}
