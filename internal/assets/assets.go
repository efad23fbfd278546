// Package assets prepares the per-question media files: two downloaded
// images and two synthesized audio clips, laid out under a quiz-specific
// asset directory.
package assets

import (
	"fmt"
	"path"
	"path/filepath"
)

// Set names the four file artifacts for one question. Absolute paths are
// used for writing; the Rel variants are slug-relative with forward slashes,
// matching what the render compositions expect in their input props.
type Set struct {
	Slug    string
	Ordinal int
	Dir     string
}

// NewSet derives the asset set for a question ordinal (1-based) under the
// given assets root.
func NewSet(assetsRoot, slug string, ordinal int) Set {
	return Set{
		Slug:    slug,
		Ordinal: ordinal,
		Dir:     filepath.Join(assetsRoot, slug),
	}
}

func (s Set) QuestionImage() string {
	return filepath.Join(s.Dir, fmt.Sprintf("question-%d.jpg", s.Ordinal))
}

func (s Set) AnswerImage() string {
	return filepath.Join(s.Dir, fmt.Sprintf("answer-%d.jpg", s.Ordinal))
}

func (s Set) QuestionAudio() string {
	return filepath.Join(s.Dir, fmt.Sprintf("question-%d.mp3", s.Ordinal))
}

func (s Set) AnswerAudio() string {
	return filepath.Join(s.Dir, fmt.Sprintf("answer-%d.mp3", s.Ordinal))
}

func (s Set) RelQuestionImage() string {
	return path.Join(s.Slug, fmt.Sprintf("question-%d.jpg", s.Ordinal))
}

func (s Set) RelAnswerImage() string {
	return path.Join(s.Slug, fmt.Sprintf("answer-%d.jpg", s.Ordinal))
}

func (s Set) RelQuestionAudio() string {
	return path.Join(s.Slug, fmt.Sprintf("question-%d.mp3", s.Ordinal))
}

func (s Set) RelAnswerAudio() string {
	return path.Join(s.Slug, fmt.Sprintf("answer-%d.mp3", s.Ordinal))
}

// Paths returns the four absolute paths in creation order.
func (s Set) Paths() []string {
	return []string{s.QuestionImage(), s.AnswerImage(), s.QuestionAudio(), s.AnswerAudio()}
}
