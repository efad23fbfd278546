package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"quizreel/internal/logging"
	"quizreel/internal/services"
)

const defaultHTTPTimeout = 30 * time.Second

// IsRemote reports whether the source specifier names a remote endpoint.
func IsRemote(specifier string) bool {
	return strings.HasPrefix(specifier, "http://") || strings.HasPrefix(specifier, "https://")
}

// Source loads question lists from remote endpoints or local files.
type Source struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes the source.
type Option func(*Source)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Source) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithLogger sets the logger used for load progress.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		if logger != nil {
			s.logger = logging.NewComponentLogger(logger, "questions")
		}
	}
}

// NewSource constructs a question source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the ordered question list named by the specifier. A specifier
// with an http or https scheme is fetched remotely; anything else is read as
// a local file. Failures abort the run; there are no retries at this layer.
func (s *Source) Load(ctx context.Context, specifier string) ([]Question, error) {
	specifier = strings.TrimSpace(specifier)
	if specifier == "" {
		return nil, services.Wrap(services.ErrInput, "questions", "load", "source specifier is required", nil)
	}
	if IsRemote(specifier) {
		return s.fetchRemote(ctx, specifier)
	}
	return s.readLocal(specifier)
}

// apiEnvelope is the remote response shape: a success marker plus a payload
// that is either the question list directly or a quiz object with a nested
// questions field.
type apiEnvelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt string          `json:"updatedAt"`
}

type quizPayload struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

func (s *Source) fetchRemote(ctx context.Context, url string) ([]Question, error) {
	s.logger.Info("fetching questions", logging.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "questions", "build request", url, err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "questions", "http get", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "questions", "read body", url, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, services.Wrap(services.ErrFetch, "questions", "http get", fmt.Sprintf("status %d from %s", resp.StatusCode, url), nil)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, services.Wrap(services.ErrFormat, "questions", "decode response", url, err)
	}
	if !envelope.Success || len(envelope.Data) == 0 {
		return nil, services.Wrap(services.ErrFormat, "questions", "decode response", "missing success marker or data payload", nil)
	}

	list, quizName, err := decodePayload(envelope.Data)
	if err != nil {
		return nil, err
	}
	if err := validateAll(list); err != nil {
		return nil, services.Wrap(services.ErrFormat, "questions", "validate", "", err)
	}

	attrs := []logging.Attr{logging.Int("count", len(list))}
	if quizName != "" {
		attrs = append(attrs, logging.String("quiz", quizName))
	}
	if envelope.UpdatedAt != "" {
		attrs = append(attrs, logging.String("updated_at", envelope.UpdatedAt))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "questions fetched", attrs...)
	return list, nil
}

// decodePayload accepts the two supported payload shapes: a question array or
// a quiz object with a questions field. Anything else is a format error.
func decodePayload(data json.RawMessage) ([]Question, string, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []Question
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, "", services.Wrap(services.ErrFormat, "questions", "decode payload", "question array", err)
		}
		return list, "", nil
	}
	var quiz quizPayload
	if err := json.Unmarshal(data, &quiz); err != nil {
		return nil, "", services.Wrap(services.ErrFormat, "questions", "decode payload", "quiz object", err)
	}
	if quiz.Questions == nil {
		return nil, "", services.Wrap(services.ErrFormat, "questions", "decode payload", "payload is neither a question array nor a quiz object with questions", nil)
	}
	return quiz.Questions, quiz.Name, nil
}

func (s *Source) readLocal(path string) ([]Question, error) {
	s.logger.Info("loading questions from file", logging.String("path", path))

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "questions", "read file", path, err)
	}

	var list []Question
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(body, &list); err != nil {
			return nil, services.Wrap(services.ErrFormat, "questions", "parse yaml", path, err)
		}
	default:
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, services.Wrap(services.ErrFormat, "questions", "parse json", path, err)
		}
	}
	if err := validateAll(list); err != nil {
		return nil, services.Wrap(services.ErrFormat, "questions", "validate", path, err)
	}

	s.logger.Info("questions loaded", logging.Int("count", len(list)))
	return list, nil
}
