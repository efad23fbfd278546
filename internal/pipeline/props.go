package pipeline

import (
	"quizreel/internal/assets"
	"quizreel/internal/questions"
)

// palette holds the rotating background colors. Selection is deterministic:
// the 1-based question ordinal modulo the palette size.
var palette = [...]string{"#239df3", "#de60a3", "#1daa88", "#f78f6e"}

// BackgroundColor returns the background color for a question ordinal.
func BackgroundColor(ordinal int) string {
	return palette[ordinal%len(palette)]
}

// RenderInputProps is the value object handed opaquely to the render
// collaborator for one question. Media paths are relative to the bundle's
// static asset directory.
type RenderInputProps struct {
	QuestionNumber   int    `json:"questionNumber"`
	QuestionText     string `json:"questionText"`
	QuestionImageSrc string `json:"questionImageSrc"`
	AnswerImageSrc   string `json:"answerImageSrc"`
	Answer           string `json:"answer"`
	QuestionAudioSrc string `json:"questionAudioSrc"`
	AnswerAudioSrc   string `json:"answerAudioSrc"`
	BGColor          string `json:"bgColor"`
}

// buildProps assembles the render props for one question. The asset set must
// be fully populated before this is called. Answer is the raw correct answer
// text; the narrative reveal phrase exists only in the answer audio.
func buildProps(ordinal int, q questions.Question, set assets.Set) RenderInputProps {
	return RenderInputProps{
		QuestionNumber:   ordinal,
		QuestionText:     q.Question,
		QuestionImageSrc: set.RelQuestionImage(),
		AnswerImageSrc:   set.RelAnswerImage(),
		Answer:           q.CorrectAnswer(),
		QuestionAudioSrc: set.RelQuestionAudio(),
		AnswerAudioSrc:   set.RelAnswerAudio(),
		BGColor:          BackgroundColor(ordinal),
	}
}
