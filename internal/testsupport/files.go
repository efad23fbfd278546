package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"quizreel/internal/questions"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteQuestionsFile marshals a question list to a JSON file under dir and
// returns its path.
func WriteQuestionsFile(t testing.TB, dir string, list []questions.Question) string {
	t.Helper()

	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("marshal questions: %v", err)
	}
	path := filepath.Join(dir, "questions.json")
	WriteFile(t, path, data)
	return path
}

// Questions builds a valid question list of the requested length, with
// deterministic text and image URLs.
func Questions(n int) []questions.Question {
	list := make([]questions.Question, 0, n)
	for i := 1; i <= n; i++ {
		list = append(list, questions.Question{
			Question:           fmt.Sprintf("Test question %d?", i),
			Answers:            []string{"Alpha", "Beta", "Gamma"},
			CorrectAnswerIndex: 0,
			QuestionImage:      fmt.Sprintf("https://images.test/question-%d.jpg", i),
			AnswerImage:        fmt.Sprintf("https://images.test/answer-%d.jpg", i),
		})
	}
	return list
}
