package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	cfgPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
assets_dir = %q
videos_dir = %q
log_dir = %q
`, filepath.Join(base, "assets"), filepath.Join(base, "videos"), filepath.Join(base, "logs"))
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesSampleFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "quizreel", "config.toml")
	output, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(output, "Wrote sample configuration") {
		t.Fatalf("unexpected output %q", output)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("sample config missing: %v", err)
	}
	if !strings.Contains(string(data), "[groq]") {
		t.Fatalf("sample config missing groq section: %q", data)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if _, err := runCommand(t, "config", "init", "--path", target); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestQuestionsCommandPreviewsLocalFile(t *testing.T) {
	cfgPath := writeTestConfig(t)
	questionsPath := filepath.Join(t.TempDir(), "questions.json")
	payload := `[
  {"question": "What is the largest desert?", "answers": ["Gobi", "Sahara Desert"], "correctAnswerIndex": 1,
   "questionImage": "https://img.example/q1.jpg", "answerImage": "https://img.example/a1.jpg"},
  {"question": "Capital of France?", "answers": ["Paris", "Lyon"], "correctAnswerIndex": 0,
   "questionImage": "https://img.example/q2.jpg", "answerImage": "https://img.example/a2.jpg"}
]`
	if err := os.WriteFile(questionsPath, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	output, err := runCommand(t, "--config", cfgPath, "questions", questionsPath)
	if err != nil {
		t.Fatalf("questions command: %v", err)
	}
	if !strings.Contains(output, "Sahara Desert") || !strings.Contains(output, "2 questions, all valid") {
		t.Fatalf("unexpected output:\n%s", output)
	}
}

func TestQuestionsCommandRejectsInvalidFile(t *testing.T) {
	cfgPath := writeTestConfig(t)
	questionsPath := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(questionsPath, []byte(`{"not": "a list"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, "--config", cfgPath, "questions", questionsPath); err == nil {
		t.Fatal("expected error for malformed question file")
	}
}

func TestRenderCommandRequiresAPIKeys(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("GOOGLE_TTS_API_KEY", "")
	cfgPath := writeTestConfig(t)

	_, err := runCommand(t, "--config", cfgPath, "render", "questions.json", "--name", "Quiz")
	if err == nil || !strings.Contains(err.Error(), "api_key") {
		t.Fatalf("expected api key error, got %v", err)
	}
}

func TestPromptLineFailsWithoutTerminal(t *testing.T) {
	original := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = original })

	cmd := newRootCommand()
	if _, err := promptLine(cmd, "quiz name"); err == nil {
		t.Fatal("expected error when stdin is not a terminal")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate(short) = %q", got)
	}
	if got := truncate("a very long question text", 10); got != "a very ..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	if len(truncate("a very long question text", 10)) != 10 {
		t.Fatal("truncated length mismatch")
	}
}
