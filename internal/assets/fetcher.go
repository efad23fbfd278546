package assets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"quizreel/internal/logging"
	"quizreel/internal/services"
)

// Synthesizer converts text into binary audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// Fetcher downloads images and synthesizes speech for one question at a
// time. Both operations overwrite existing files on rerun.
type Fetcher struct {
	httpClient  *http.Client
	synthesizer Synthesizer
	logger      *slog.Logger
}

// Option customizes the fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the HTTP client used for image downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// WithLogger attaches a logger for progress output.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher constructs a fetcher backed by the given synthesizer.
func NewFetcher(synthesizer Synthesizer, opts ...Option) *Fetcher {
	fetcher := &Fetcher{
		httpClient:  http.DefaultClient,
		synthesizer: synthesizer,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(fetcher)
	}
	return fetcher
}

// DownloadImage issues a GET for the URL and writes the body verbatim to the
// destination path. Image content is not validated.
func (f *Fetcher) DownloadImage(ctx context.Context, imageURL, destination string) error {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return services.Wrap(services.ErrInput, "assets", "download-image", "image url required", nil)
	}
	if destination == "" {
		return services.Wrap(services.ErrInput, "assets", "download-image", "destination path required", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return services.Wrap(services.ErrNetwork, "assets", "download-image", "build request", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrNetwork, "assets", "download-image", "request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return services.Wrap(services.ErrNetwork, "assets", "download-image",
			fmt.Sprintf("http %d from %s", resp.StatusCode, imageURL), nil)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return services.Wrap(services.ErrNetwork, "assets", "download-image", "read body", err)
	}

	if err := writeFile(destination, body); err != nil {
		return services.Wrap(services.ErrNetwork, "assets", "download-image", "write file", err)
	}
	f.logger.Info("image downloaded",
		logging.String("url", imageURL),
		logging.String("path", destination),
		logging.Int("bytes", len(body)))
	return nil
}

// SynthesizeSpeech converts text into audio and writes it to the destination
// path. An empty voice uses the synthesizer's configured default.
func (f *Fetcher) SynthesizeSpeech(ctx context.Context, text, destination, voice string) error {
	if strings.TrimSpace(text) == "" {
		return services.Wrap(services.ErrInput, "assets", "synthesize-speech", "text required", nil)
	}
	if destination == "" {
		return services.Wrap(services.ErrInput, "assets", "synthesize-speech", "destination path required", nil)
	}
	if f.synthesizer == nil {
		return services.Wrap(services.ErrConfiguration, "assets", "synthesize-speech", "synthesizer not configured", nil)
	}

	audio, err := f.synthesizer.Synthesize(ctx, text, voice)
	if err != nil {
		return services.Wrap(services.ErrSynthesis, "assets", "synthesize-speech", "synthesis failed", err)
	}
	if err := writeFile(destination, audio); err != nil {
		return services.Wrap(services.ErrSynthesis, "assets", "synthesize-speech", "write file", err)
	}
	f.logger.Info("speech synthesized",
		logging.String("path", destination),
		logging.Int("bytes", len(audio)))
	return nil
}

func writeFile(destination string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return err
	}
	return os.WriteFile(destination, data, 0o644)
}
