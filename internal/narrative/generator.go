// Package narrative turns a question's correct answer into a short spoken
// reveal phrase. The question side of the pair is always the question text
// itself; only the answer phrase is model-generated.
package narrative

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"quizreel/internal/logging"
	"quizreel/internal/services"
	"quizreel/internal/services/groq"
)

// Pair is the spoken-form text for a question and its answer reveal.
type Pair struct {
	Question string
	Answer   string
}

// Completer issues a structured chat completion and returns the raw JSON
// content produced by the model.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Waiter paces outbound generation calls.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Generator produces narrative pairs through a rate-limited completer.
type Generator struct {
	completer Completer
	limiter   Waiter
	logger    *slog.Logger
}

// Option customizes the generator.
type Option func(*Generator)

// WithLogger attaches a logger for progress output.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator constructs a generator. The limiter is optional; when nil,
// calls are not paced.
func NewGenerator(completer Completer, limiter Waiter, opts ...Option) *Generator {
	gen := &Generator{
		completer: completer,
		limiter:   limiter,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(gen)
	}
	return gen
}

type narrativeResponse struct {
	AnswerNarrative string `json:"answerNarrative"`
}

// Generate waits out the rate limit, then asks the completer for a reveal
// phrase for the correct answer. The returned pair's Question is always
// exactly the input question text.
func (g *Generator) Generate(ctx context.Context, questionText, correctAnswer string) (Pair, error) {
	if strings.TrimSpace(questionText) == "" {
		return Pair{}, services.Wrap(services.ErrInput, "narrative", "generate", "question text required", nil)
	}
	if strings.TrimSpace(correctAnswer) == "" {
		return Pair{}, services.Wrap(services.ErrInput, "narrative", "generate", "correct answer required", nil)
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return Pair{}, services.Wrap(services.ErrGeneration, "narrative", "generate", "rate limit wait interrupted", err)
		}
	}

	g.logger.Info("generating answer narrative", logging.String("answer", correctAnswer))

	content, err := g.completer.CompleteJSON(ctx, groq.NarrativeSystemPrompt, groq.NarrativeUserPrompt(correctAnswer))
	if err != nil {
		if errors.Is(err, groq.ErrDecode) {
			return Pair{}, services.Wrap(services.ErrFormat, "narrative", "generate", "completion payload malformed", err)
		}
		return Pair{}, services.Wrap(services.ErrGeneration, "narrative", "generate", "completion request failed", err)
	}

	var parsed narrativeResponse
	if err := groq.DecodeJSON(content, &parsed); err != nil {
		return Pair{}, services.Wrap(services.ErrFormat, "narrative", "generate", "completion payload malformed", err)
	}
	phrase := strings.TrimSpace(parsed.AnswerNarrative)
	if phrase == "" {
		return Pair{}, services.Wrap(services.ErrFormat, "narrative", "generate", "completion missing answer narrative", nil)
	}

	return Pair{Question: questionText, Answer: phrase}, nil
}
