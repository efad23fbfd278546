package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"quizreel/internal/services"
	"quizreel/internal/services/groq"
)

type fakeCompleter struct {
	content string
	err     error
	calls   int
	prompts []string
}

func (f *fakeCompleter) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, userPrompt)
	return f.content, f.err
}

type fakeWaiter struct {
	calls int
	err   error
}

func (f *fakeWaiter) Wait(ctx context.Context) error {
	f.calls++
	return f.err
}

func TestGenerateReturnsPair(t *testing.T) {
	completer := &fakeCompleter{content: `{"answerNarrative": "It's the Sahara Desert"}`}
	waiter := &fakeWaiter{}
	gen := NewGenerator(completer, waiter)

	pair, err := gen.Generate(context.Background(), "What is the largest desert?", "Sahara Desert")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if pair.Question != "What is the largest desert?" {
		t.Fatalf("question narrative must equal input text, got %q", pair.Question)
	}
	if pair.Answer != "It's the Sahara Desert" {
		t.Fatalf("unexpected answer narrative %q", pair.Answer)
	}
	if waiter.calls != 1 {
		t.Fatalf("expected one rate limit wait, got %d", waiter.calls)
	}
	if completer.calls != 1 {
		t.Fatalf("expected one completion call, got %d", completer.calls)
	}
}

func TestGenerateWaitsBeforeCompleting(t *testing.T) {
	var order []string
	completer := &orderedCompleter{order: &order}
	waiter := &orderedWaiter{order: &order}
	gen := NewGenerator(completer, waiter)

	if _, err := gen.Generate(context.Background(), "q", "a"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(order) != 2 || order[0] != "wait" || order[1] != "complete" {
		t.Fatalf("expected wait before completion, got %v", order)
	}
}

type orderedCompleter struct{ order *[]string }

func (o *orderedCompleter) CompleteJSON(context.Context, string, string) (string, error) {
	*o.order = append(*o.order, "complete")
	return `{"answerNarrative": "Yes"}`, nil
}

type orderedWaiter struct{ order *[]string }

func (o *orderedWaiter) Wait(context.Context) error {
	*o.order = append(*o.order, "wait")
	return nil
}

func TestGeneratePromptCarriesAnswer(t *testing.T) {
	completer := &fakeCompleter{content: `{"answerNarrative": "It's Paris"}`}
	gen := NewGenerator(completer, nil)

	if _, err := gen.Generate(context.Background(), "Capital of France?", "Paris"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(completer.prompts) != 1 || !strings.Contains(completer.prompts[0], "Paris") {
		t.Fatalf("prompt missing correct answer: %q", completer.prompts)
	}
}

func TestGenerateTransportFailureIsGenerationError(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("http 500")}
	gen := NewGenerator(completer, &fakeWaiter{})

	_, err := gen.Generate(context.Background(), "q", "a")
	if !errors.Is(err, services.ErrGeneration) {
		t.Fatalf("expected generation error, got %v", err)
	}
}

func TestGenerateMalformedPayloadIsFormatError(t *testing.T) {
	cases := map[string]*fakeCompleter{
		"decode sentinel":   {err: fmt.Errorf("%w: truncated", groq.ErrDecode)},
		"invalid json":      {content: "not json at all"},
		"missing narrative": {content: `{"other": "field"}`},
		"empty narrative":   {content: `{"answerNarrative": "  "}`},
	}
	for name, completer := range cases {
		t.Run(name, func(t *testing.T) {
			gen := NewGenerator(completer, &fakeWaiter{})
			_, err := gen.Generate(context.Background(), "q", "a")
			if !errors.Is(err, services.ErrFormat) {
				t.Fatalf("expected format error, got %v", err)
			}
		})
	}
}

func TestGenerateValidatesInput(t *testing.T) {
	gen := NewGenerator(&fakeCompleter{}, &fakeWaiter{})
	if _, err := gen.Generate(context.Background(), " ", "a"); !errors.Is(err, services.ErrInput) {
		t.Fatalf("expected input error for empty question, got %v", err)
	}
	if _, err := gen.Generate(context.Background(), "q", ""); !errors.Is(err, services.ErrInput) {
		t.Fatalf("expected input error for empty answer, got %v", err)
	}
}

func TestGenerateCanceledWaitAborts(t *testing.T) {
	waiter := &fakeWaiter{err: context.Canceled}
	completer := &fakeCompleter{content: `{"answerNarrative": "Yes"}`}
	gen := NewGenerator(completer, waiter)

	if _, err := gen.Generate(context.Background(), "q", "a"); err == nil {
		t.Fatal("expected error when wait is interrupted")
	}
	if completer.calls != 0 {
		t.Fatalf("completion must not run after interrupted wait, got %d calls", completer.calls)
	}
}
