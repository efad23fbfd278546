package questions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"quizreel/internal/services"
)

const sampleQuestionJSON = `{
	"question": "What is the largest desert?",
	"answers": ["Gobi", "Sahara Desert"],
	"correctAnswerIndex": 1,
	"questionImage": "https://img.example/q1.jpg",
	"answerImage": "https://img.example/a1.jpg"
}`

func TestLoadRemoteDirectList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": [` + sampleQuestionJSON + `]}`))
	}))
	defer server.Close()

	list, err := NewSource().Load(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 question, got %d", len(list))
	}
	if list[0].CorrectAnswer() != "Sahara Desert" {
		t.Fatalf("unexpected correct answer %q", list[0].CorrectAnswer())
	}
}

func TestLoadRemoteNestedQuestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "updatedAt": "2026-01-02", "data": {"name": "gk50", "questions": [` + sampleQuestionJSON + `]}}`))
	}))
	defer server.Close()

	list, err := NewSource().Load(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 question, got %d", len(list))
	}
}

func TestLoadRemoteHTTPErrorIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewSource().Load(context.Background(), server.URL)
	if !errors.Is(err, services.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestLoadRemoteMissingSuccessMarker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [` + sampleQuestionJSON + `]}`))
	}))
	defer server.Close()

	_, err := NewSource().Load(context.Background(), server.URL)
	if !errors.Is(err, services.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestLoadRemoteUnexpectedPayloadShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {"name": "no questions here"}}`))
	}))
	defer server.Close()

	_, err := NewSource().Load(context.Background(), server.URL)
	if !errors.Is(err, services.ErrFormat) {
		t.Fatalf("expected ErrFormat for unknown payload shape, got %v", err)
	}
}

func TestLoadLocalJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.json")
	if err := os.WriteFile(path, []byte(`[`+sampleQuestionJSON+`]`), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	list, err := NewSource().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 question, got %d", len(list))
	}
}

func TestLoadLocalYAMLFile(t *testing.T) {
	content := `
- question: "What is the capital of France?"
  answers: ["London", "Paris"]
  correctAnswerIndex: 1
  questionImage: "https://img.example/q.jpg"
  answerImage: "https://img.example/a.jpg"
`
	path := filepath.Join(t.TempDir(), "quiz.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	list, err := NewSource().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if list[0].CorrectAnswer() != "Paris" {
		t.Fatalf("unexpected correct answer %q", list[0].CorrectAnswer())
	}
}

func TestLoadLocalParseFailureIsFormatError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	_, err := NewSource().Load(context.Background(), path)
	if !errors.Is(err, services.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestLoadEmptySpecifierIsInputError(t *testing.T) {
	_, err := NewSource().Load(context.Background(), "  ")
	if !errors.Is(err, services.ErrInput) {
		t.Fatalf("expected ErrInput, got %v", err)
	}
}

func TestValidateRejectsBadQuestions(t *testing.T) {
	cases := []struct {
		name string
		q    Question
	}{
		{"empty text", Question{Answers: []string{"a", "b"}, QuestionImage: "q", AnswerImage: "a"}},
		{"single answer", Question{Question: "?", Answers: []string{"a"}, QuestionImage: "q", AnswerImage: "a"}},
		{"index out of range", Question{Question: "?", Answers: []string{"a", "b"}, CorrectAnswerIndex: 5, QuestionImage: "q", AnswerImage: "a"}},
		{"missing image", Question{Question: "?", Answers: []string{"a", "b"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.q.Validate(1); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestIsRemote(t *testing.T) {
	if !IsRemote("https://quiz-db.example/api/quiz/gk50") {
		t.Fatal("https URL should be remote")
	}
	if !IsRemote("http://quiz-db.example/api") {
		t.Fatal("http URL should be remote")
	}
	if IsRemote("questions.json") {
		t.Fatal("bare path should not be remote")
	}
}
