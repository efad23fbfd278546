package questions

import (
	"fmt"
	"strings"
)

// Question is one quiz item: prompt, answer options, correct-answer index,
// and two image references.
type Question struct {
	Question           string   `json:"question" yaml:"question"`
	Answers            []string `json:"answers" yaml:"answers"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex" yaml:"correctAnswerIndex"`
	QuestionImage      string   `json:"questionImage" yaml:"questionImage"`
	AnswerImage        string   `json:"answerImage" yaml:"answerImage"`
}

// CorrectAnswer returns the answer text selected by CorrectAnswerIndex.
func (q Question) CorrectAnswer() string {
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Answers) {
		return ""
	}
	return q.Answers[q.CorrectAnswerIndex]
}

// Validate checks a single question for structural problems. The ordinal is
// 1-based and used only for error messages.
func (q Question) Validate(ordinal int) error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question %d: text is empty", ordinal)
	}
	if len(q.Answers) < 2 {
		return fmt.Errorf("question %d: needs at least 2 answers, has %d", ordinal, len(q.Answers))
	}
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Answers) {
		return fmt.Errorf("question %d: correctAnswerIndex %d out of range", ordinal, q.CorrectAnswerIndex)
	}
	if strings.TrimSpace(q.QuestionImage) == "" {
		return fmt.Errorf("question %d: questionImage is empty", ordinal)
	}
	if strings.TrimSpace(q.AnswerImage) == "" {
		return fmt.Errorf("question %d: answerImage is empty", ordinal)
	}
	return nil
}

func validateAll(list []Question) error {
	if len(list) == 0 {
		return fmt.Errorf("question list is empty")
	}
	for i, q := range list {
		if err := q.Validate(i + 1); err != nil {
			return err
		}
	}
	return nil
}
