package groq

import "fmt"

// NarrativeSystemPrompt instructs the model to answer with JSON only. Keep
// updates centralized here so it is easy to tweak without hunting through
// call sites.
const NarrativeSystemPrompt = `You are a helpful assistant that generates short, friendly answer phrases for quiz videos. Always respond with valid JSON only.`

const narrativeUserPromptFormat = `Generate a very short answer reveal phrase for a quiz video. Keep it under 5 words.

Correct Answer: %s

Examples:
- If answer is "Sahara Desert" -> "It's the Sahara Desert"
- If answer is "India" -> "Correct, it's India"
- If answer is "Mount Everest" -> "Yes, Mount Everest"
- If answer is "Paris" -> "It's Paris"

Generate ONLY the short phrase for: %s

Return ONLY a JSON object with this format:
{"answerNarrative": "your short phrase here"}`

// NarrativeUserPrompt builds the few-shot reveal-phrase prompt for the given
// correct answer.
func NarrativeUserPrompt(correctAnswer string) string {
	return fmt.Sprintf(narrativeUserPromptFormat, correctAnswer, correctAnswer)
}
