package generation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// promptSchema is embedded verbatim into every prompt so the model
// returns options keyed by the canonical labels. The extractor still
// tolerates prose and fencing around it.
const promptSchema = `{
  "questions": [
    {
      "question": "Question based on the content",
      "options": {
        "A": "Correct answer",
        "B": "Incorrect option",
        "C": "Incorrect option",
        "D": "Incorrect option"
      },
      "correctAnswer": "A"
    }
  ]
}`

// BuildPrompt assembles the generation prompt from extracted source
// text. The source is truncated to maxChars (on a rune boundary) so one
// oversized document cannot blow the model's context window.
func BuildPrompt(source string, numQuestions, maxChars int) string {
	source = truncate(source, maxChars)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Based on this content, generate %d multiple choice questions:\n\n", numQuestions))
	sb.WriteString(source)
	sb.WriteString("\n\nRequirements:\n")
	sb.WriteString("- Each question must have exactly 4 options labeled A, B, C and D\n")
	sb.WriteString("- Exactly one option is correct and no two options may have identical text\n")
	sb.WriteString("- Incorrect options should be plausible but clearly wrong\n")
	sb.WriteString("\nReturn only a JSON object with this structure:\n")
	sb.WriteString(promptSchema)
	return sb.String()
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := s[:max]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
