package generation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_ContainsSchemaAndCount(t *testing.T) {
	prompt := BuildPrompt("The mitochondria is the powerhouse of the cell.", 5, 15000)

	assert.Contains(t, prompt, "generate 5 multiple choice questions")
	assert.Contains(t, prompt, "mitochondria")
	assert.Contains(t, prompt, `"correctAnswer": "A"`)
	assert.Contains(t, prompt, "Return only a JSON object")
}

func TestBuildPrompt_TruncatesSource(t *testing.T) {
	long := strings.Repeat("abcdefghij", 2000) // 20000 bytes

	prompt := BuildPrompt(long, 3, 15000)

	assert.NotContains(t, prompt, long)
	assert.Contains(t, prompt, long[:15000])
}

func TestTruncate_RuneBoundary(t *testing.T) {
	// Multi-byte runes must not be split in half.
	s := strings.Repeat("é", 100)

	cut := truncate(s, 13)
	assert.True(t, utf8.ValidString(cut))
	assert.LessOrEqual(t, len(cut), 13)
	assert.NotEmpty(t, cut)
}
