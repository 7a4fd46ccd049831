package quizgen

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPayload_FencedObject(t *testing.T) {
	raw := "Sure! Here is your quiz:\n```json\n" +
		`{"questions":[{"question":"2+2?","options":{"A":"4","B":"3","C":"5","D":"6"},"correctAnswer":"A"}]}` +
		"\n```\nLet me know if you need more."

	payload, err := ExtractPayload(raw)
	require.NoError(t, err)
	require.Len(t, payload.Questions, 1)

	q := payload.Questions[0]
	assert.Equal(t, "2+2?", q.Prompt)
	assert.Equal(t, "A", q.CorrectLabel)
	require.Len(t, q.Options, 4)
	assert.Equal(t, Option{Label: "A", Text: "4"}, q.Options[0])
	assert.Equal(t, Option{Label: "D", Text: "6"}, q.Options[3])
}

func TestExtractPayload_BareArray(t *testing.T) {
	raw := `[{"question":"Capital of France?","options":{"A":"Paris","B":"Lyon","C":"Nice","D":"Lille"},"correctAnswer":"A"}]`

	payload, err := ExtractPayload(raw)
	require.NoError(t, err)
	require.Len(t, payload.Questions, 1)
	assert.Equal(t, "Capital of France?", payload.Questions[0].Prompt)
}

func TestExtractPayload_LegacyArrayOptions(t *testing.T) {
	raw := `{"questions":[{"question":"Pick one","options":["w","x","y","z"],"correctAnswer":"C"}]}`

	payload, err := ExtractPayload(raw)
	require.NoError(t, err)

	q := payload.Questions[0]
	require.Len(t, q.Options, 4)
	assert.Equal(t, Option{Label: "C", Text: "y"}, q.Options[2])
	text, ok := q.OptionText("C")
	require.True(t, ok)
	assert.Equal(t, "y", text)
}

func TestExtractPayload_RoundTrip(t *testing.T) {
	original := Payload{Questions: []Question{
		{
			Prompt: "Largest planet?",
			Options: []Option{
				{Label: "A", Text: "Jupiter"},
				{Label: "B", Text: "Saturn"},
				{Label: "C", Text: "Earth"},
				{Label: "D", Text: "Mars"},
			},
			CorrectLabel: "A",
		},
	}}

	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	wrapped := "Here you go:\n```json\n" + string(encoded) + "\n```"
	recovered, err := ExtractPayload(wrapped)
	require.NoError(t, err)
	assert.Equal(t, original.Questions, recovered.Questions)
}

func TestExtractPayload_Garbage(t *testing.T) {
	payload, err := ExtractPayload("no json here")
	assert.Nil(t, payload)

	var malformed *MalformedOutputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "no json here", malformed.Raw)
}

func TestExtractPayload_Empty(t *testing.T) {
	_, err := ExtractPayload("")
	var malformed *MalformedOutputError
	assert.ErrorAs(t, err, &malformed)
}

func TestExtractPayload_TrailingComma(t *testing.T) {
	// Strict parse only; no lenient repair.
	_, err := ExtractPayload(`{"questions":[{"question":"q","options":{"A":"1","B":"2","C":"3","D":"4"},"correctAnswer":"A"},]}`)
	var malformed *MalformedOutputError
	assert.ErrorAs(t, err, &malformed)
}

func TestExtractPayload_MissingQuestionsField(t *testing.T) {
	_, err := ExtractPayload(`{"items": 3}`)
	var malformed *MalformedOutputError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Reason, "questions")
}

func TestExtractPayload_BracketsInsideStrings(t *testing.T) {
	raw := `{"questions":[{"question":"What does arr[0] mean?","options":{"A":"first element","B":"last element","C":"length","D":"type"},"correctAnswer":"A"}]}`

	payload, err := ExtractPayload(raw)
	require.NoError(t, err)
	assert.Equal(t, "What does arr[0] mean?", payload.Questions[0].Prompt)
}

func TestExtractPayload_ErrorIsTyped(t *testing.T) {
	_, err := ExtractPayload("nothing")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidPayload), "extraction failures carry their own type")
}
